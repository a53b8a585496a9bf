package reminderscheduler

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/rabbitmq"
	"remindbot/internal/rabbitmq/schema"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RabbitMQ publishes reminders to a delayed-message exchange. The x-delay
// header holds off delivery until the reminder is due.
type RabbitMQ struct {
	log        logging.Logger
	channel    *rabbitmq.Channel
	exchange   string
	routingKey string
	now        func() time.Time
}

func NewRabbitMQ(
	log logging.Logger,
	channel *rabbitmq.Channel,
	exchange string,
	routingKey string,
	now func() time.Time,
) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, routingKey: routingKey, now: now}
}

func (s *RabbitMQ) ScheduleReminder(ctx context.Context, r reminder.Reminder) error {
	body, err := (&schema.Reminder{ID: int64(r.ID), At: r.At}).Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", r.ID))
		return err
	}

	delay := r.At.Sub(s.now()).Milliseconds()
	if delay < 0 {
		delay = 0
	}

	err = s.channel.PublishWithContext(ctx, s.exchange, s.routingKey, false, false, amqp091.Publishing{
		Headers:     amqp091.Table{"x-delay": delay},
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("RK", s.routingKey),
		logging.Entry("reminderID", r.ID),
		logging.Entry("delayMs", delay),
	)
	return nil
}
