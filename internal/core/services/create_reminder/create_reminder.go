package createreminder

import (
	"context"
	"fmt"
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

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("create-reminder::%s", i.UserID)
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	parser             reminder.NaturalLanguageQueryParser
	scheduler          reminder.Scheduler
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	parser reminder.NaturalLanguageQueryParser,
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
	parsed, err := s.parser.Parse(ctx, input.Query, now)
	if err != nil {
		return result, err
	}
	if parsed.Message == "" || !parsed.At.After(now) {
		return result, reminder.ErrQueryParsing
	}

	createInput := reminder.CreateInput{
		UserID:    input.UserID,
		Message:   parsed.Message,
		CreatedAt: now,
		At:        parsed.At,
		Status:    reminder.StatusPending,
	}
	if parsed.At.Sub(now) < reminder.DURATION_FOR_SCHEDULING {
		createInput.ScheduledAt = c.NewOptional(now, true)
	}

	createdReminder, err := s.reminderRepository.Create(ctx, createInput)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if createdReminder.ScheduledAt.IsPresent {
		// The horizon scan re-claims the reminder if this hand-off is lost,
		// so a queue failure must not fail the command.
		if err := s.scheduler.ScheduleReminder(ctx, createdReminder); err != nil {
			s.log.Warning(
				ctx,
				"Could not hand reminder to the delivery queue, the next scan will pick it up.",
				logging.Entry("reminderID", createdReminder.ID),
				logging.Entry("err", err),
			)
		}
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("userID", createdReminder.UserID),
		logging.Entry("at", createdReminder.At),
	)
	result.Reminder = createdReminder
	return result, nil
}
