package consumers

import (
	"context"
	"remindbot/internal/app/deps"
	"remindbot/internal/app/services"
	dl "remindbot/internal/core/domain/logging"
	reminderdue "remindbot/internal/rabbitmq/consumers/reminder_due"
)

func initReminderDueConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqReminderDueQueue
	reminderDueConsumer := reminderdue.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.SendReminder,
	)
	if err = reminderDueConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownReminderDueConsumer := initReminderDueConsumer(deps, services)

	return func() {
		shutdownReminderDueConsumer()
	}
}
