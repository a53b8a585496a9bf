package remindersender

import (
	"context"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
)

// Sender delivers a fired reminder to the user's DM channel and mirrors
// it onto the live event stream. The DM is the delivery that counts;
// stream publishing never fails a send.
type Sender struct {
	log           logging.Logger
	discordSender reminder.Sender
	sseSender     reminder.Sender
}

func New(log logging.Logger, discordSender reminder.Sender, sseSender reminder.Sender) *Sender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if discordSender == nil {
		panic(e.NewNilArgumentError("discordSender"))
	}
	if sseSender == nil {
		panic(e.NewNilArgumentError("sseSender"))
	}
	return &Sender{log: log, discordSender: discordSender, sseSender: sseSender}
}

func (s *Sender) SendReminder(ctx context.Context, rem reminder.Reminder) error {
	if err := s.sseSender.SendReminder(ctx, rem); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID))
	}

	if err := s.discordSender.SendReminder(ctx, rem); err != nil {
		s.log.Error(
			ctx,
			"Could not send reminder.",
			logging.Entry("err", err),
			logging.Entry("reminderID", rem.ID),
			logging.Entry("userID", rem.UserID),
		)
		return err
	}

	s.log.Info(ctx, "Reminder has been sent.", logging.Entry("reminderID", rem.ID))
	return nil
}
