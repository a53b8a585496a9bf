package cancelreminder

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/user"
	"remindbot/internal/core/services"
)

type Input struct {
	UserID user.ID
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	return &service{log: log, reminderRepository: reminderRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	latest, err := s.reminderRepository.GetLatestFired(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			return result, reminder.ErrNothingToCancel
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	err = s.reminderRepository.Delete(ctx, reminder.DeleteInput{
		ID:            latest.ID,
		ExpectStatus:  c.NewOptional(reminder.StatusFired, true),
		ExpectFiredAt: c.NewOptional(latest.FiredAt.Value, true),
	})
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			return result, reminder.ErrNothingToCancel
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("reminderID", latest.ID))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully canceled.",
		logging.Entry("reminderID", latest.ID),
		logging.Entry("userID", latest.UserID),
	)
	result.Reminder = latest
	return result, nil
}
