package sendreminder

import (
	"context"
	"errors"
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/services"
	"time"
)

// Allowance for clock drift between the queue and the store when checking
// that a claimed reminder is actually due.
const DUE_TOLERANCE = 5 * time.Second

type Input struct {
	ReminderID reminder.ID
}

type Result struct {
	Reminder reminder.Reminder
	Sent     bool
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	sender             reminder.Sender
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	sender reminder.Sender,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		sender:             sender,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()

	// The claim grants exactly one delivery attempt: conditioned on the
	// record still being pending and due, so a concurrent claimer, a
	// cancellation, or a snooze that moved the due time wins the race and
	// this attempt drops out harmlessly.
	claimed, err := s.reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                  input.ReminderID,
		DoStatusUpdate:      true,
		Status:              reminder.StatusFired,
		DoFiredAtUpdate:     true,
		FiredAt:             c.NewOptional(now, true),
		DoScheduledAtUpdate: true,
		ExpectStatus:        c.NewOptional(reminder.StatusPending, true),
		ExpectDueBy:         c.NewOptional(now.Add(DUE_TOLERANCE), true),
	})
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(
				ctx,
				"Reminder claim lost, skipping delivery.",
				logging.Entry("reminderID", input.ReminderID),
			)
			return result, nil
		}
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Reminder = claimed

	if err := s.sender.SendReminder(ctx, claimed); err != nil {
		// Best effort past this point: the claim already happened and is
		// not rolled back, the reminder stays fired without a retry.
		logging.Error(
			ctx,
			s.log,
			err,
			logging.Entry("reminderID", claimed.ID),
			logging.Entry("userID", claimed.UserID),
		)
		return result, nil
	}

	s.log.Info(
		ctx,
		"Reminder delivered.",
		logging.Entry("reminderID", claimed.ID),
		logging.Entry("userID", claimed.UserID),
	)
	result.Sent = true
	return result, nil
}
