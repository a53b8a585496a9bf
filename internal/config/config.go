package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE" envDefault:"false"`

	DiscordToken  string `env:"DISCORD_TOKEN,required"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqDelayedExchange  string `env:"RABBITMQ_DELAYED_EXCHANGE" envDefault:"reminders-delayed"`
	RabbitmqReminderDueQueue string `env:"RABBITMQ_REMINDER_DUE_QUEUE" envDefault:"reminder-due"`

	HTTPAddress    string   `env:"HTTP_ADDRESS" envDefault:"0.0.0.0:9090"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	SchedulingPeriod time.Duration `env:"SCHEDULING_PERIOD" envDefault:"1m"`
	RequeueAfter     time.Duration `env:"REQUEUE_AFTER" envDefault:"10m"`
	FiredRetention   time.Duration `env:"FIRED_RETENTION" envDefault:"168h"`

	CreateRateLimitPerMinute uint16 `env:"CREATE_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
