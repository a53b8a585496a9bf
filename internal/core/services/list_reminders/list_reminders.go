package listreminders

import (
	"context"
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
	Reminders []reminder.Reminder
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
	reminders, err := s.reminderRepository.Read(
		ctx,
		reminder.ReadOptions{
			UserIDEquals: c.NewOptional(input.UserID, true),
			StatusEquals: c.NewOptional(reminder.StatusPending, true),
			OrderBy:      reminder.OrderByAtAsc,
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminders = reminders
	return result, nil
}
