package deps

import (
	"context"
	"remindbot/internal/config"
	dl "remindbot/internal/core/domain/logging"
	drl "remindbot/internal/core/domain/rate_limiter"
	"remindbot/internal/core/domain/reminder"
	dbreminder "remindbot/internal/db/reminder"
	"remindbot/internal/implementations/logging"
	ratelimiter "remindbot/internal/implementations/rate_limiter"
	reminderparser "remindbot/internal/implementations/reminder_parser"
	remindersender "remindbot/internal/implementations/reminder_sender"
	"remindbot/internal/rabbitmq"
	reminderscheduler "remindbot/internal/rabbitmq/publishers/reminder_scheduler"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/r3labs/sse/v2"
	"github.com/rabbitmq/amqp091-go"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB        *pgxpool.Pool
	Redis     *redis.Client
	Rabbitmq  *rabbitmq.Connection
	SseServer *sse.Server
	Discord   *discordgo.Session

	Now func() time.Time

	ReminderRepository reminder.ReminderRepository

	RateLimiter drl.RateLimiter

	ReminderScheduler   reminder.Scheduler
	ReminderSender      reminder.Sender
	ReminderQueryParser reminder.NaturalLanguageQueryParser
	SnoozeQueryParser   reminder.SnoozeQueryParser
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()
	closeSseServer := deps.initSseServer()
	closeDiscordSession := deps.initDiscordSession()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.ReminderRepository = dbreminder.NewPgxReminderRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	closeReminderScheduler := deps.initRabbitmqReminderScheduler()

	deps.ReminderSender = remindersender.New(
		deps.Logger,
		remindersender.NewDiscord(deps.Discord),
		remindersender.NewSSE(deps.SseServer),
	)

	parser := reminderparser.New()
	deps.ReminderQueryParser = parser
	deps.SnoozeQueryParser = parser

	return deps, func() {
		closeFuncs := []func(){
			closeDiscordSession,
			closeSseServer,
			closeReminderScheduler,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initSseServer() func() {
	deps.SseServer = sse.New()
	deps.SseServer.AutoStream = true
	deps.SseServer.AutoReplay = false
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down SSE server.")
		deps.SseServer.Close()
		deps.Logger.Info(context.Background(), "SSE server shut down.")
	}
}

// The session is created here but not opened, REST calls work without a
// gateway connection. The bot binary opens it after registering handlers.
func (deps *Deps) initDiscordSession() func() {
	session, err := discordgo.New("Bot " + deps.Config.DiscordToken)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create Discord session.", dl.Entry("err", err))
		panic(err)
	}
	deps.Discord = session
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Discord session.")
		session.Close()
		deps.Logger.Info(context.Background(), "Discord session shut down.")
	}
}

func (deps *Deps) initRabbitmqReminderScheduler() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.RabbitmqDelayedExchange,
		"x-delayed-message",
		true,
		false,
		false,
		false,
		amqp091.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exhange.", dl.Entry("err", err))
		panic(err)
	}
	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqReminderDueQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}
	if err := rabbitmqChannel.QueueBind(
		deps.Config.RabbitmqReminderDueQueue,
		deps.Config.RabbitmqReminderDueQueue,
		deps.Config.RabbitmqDelayedExchange,
		false,
		nil,
	); err != nil {
		deps.Logger.Error(context.Background(), "Could not bind queue to RabbitMQ exhange.", dl.Entry("err", err))
		panic(err)
	}

	deps.ReminderScheduler = reminderscheduler.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.RabbitmqDelayedExchange,
		deps.Config.RabbitmqReminderDueQueue,
		deps.Now,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down reminder scheduller.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Reminder scheduller shut down.")
	}
}
