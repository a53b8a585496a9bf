package clearreminders

import (
	"context"
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
	Count uint
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
	count, err := s.reminderRepository.DeleteByUserID(ctx, input.UserID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"User reminders cleared.",
		logging.Entry("userID", input.UserID),
		logging.Entry("count", count),
	)
	result.Count = count
	return result, nil
}
