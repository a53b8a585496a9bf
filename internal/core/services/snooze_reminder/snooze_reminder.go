package snoozereminder

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
	"time"
)

type Input struct {
	UserID user.ID
	Query  string
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	parser             reminder.SnoozeQueryParser
	scheduler          reminder.Scheduler
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	parser reminder.SnoozeQueryParser,
	scheduler reminder.Scheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if parser == nil {
		panic(e.NewNilArgumentError("parser"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		parser:             parser,
		scheduler:          scheduler,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	at, err := s.parser.ParseSnooze(ctx, input.Query, now)
	if err != nil {
		return result, err
	}
	if !at.After(now) {
		return result, reminder.ErrQueryParsing
	}

	latest, err := s.reminderRepository.GetLatestFired(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			return result, reminder.ErrNothingToSnooze
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	update := reminder.UpdateInput{
		ID:                  latest.ID,
		DoAtUpdate:          true,
		At:                  at,
		DoStatusUpdate:      true,
		Status:              reminder.StatusPending,
		DoScheduledAtUpdate: true,
		// Conditioned on the read view so a concurrent cancel or duplicate
		// snooze cannot resurrect a record deleted in between.
		ExpectStatus:  c.NewOptional(reminder.StatusFired, true),
		ExpectFiredAt: c.NewOptional(latest.FiredAt.Value, true),
	}
	if at.Sub(now) < reminder.DURATION_FOR_SCHEDULING {
		update.ScheduledAt = c.NewOptional(now, true)
	}

	updatedReminder, err := s.reminderRepository.Update(ctx, update)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			return result, reminder.ErrNothingToSnooze
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if updatedReminder.ScheduledAt.IsPresent {
		if err := s.scheduler.ScheduleReminder(ctx, updatedReminder); err != nil {
			s.log.Warning(
				ctx,
				"Could not hand snoozed reminder to the delivery queue, the next scan will pick it up.",
				logging.Entry("reminderID", updatedReminder.ID),
				logging.Entry("err", err),
			)
		}
	}

	s.log.Info(
		ctx,
		"Reminder successfully snoozed.",
		logging.Entry("reminderID", updatedReminder.ID),
		logging.Entry("userID", updatedReminder.UserID),
		logging.Entry("at", updatedReminder.At),
	)
	result.Reminder = updatedReminder
	return result, nil
}
