package remindersender

import (
	"context"
	"encoding/json"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/reminder"
	"time"

	"github.com/r3labs/sse/v2"
)

type firedReminderEvent struct {
	ID      int64     `json:"id"`
	UserID  string    `json:"user_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// SSESender publishes fired reminders to the per-user event stream.
// Streams exist only while somebody is subscribed, so a publish for an
// offline user is a no-op.
type SSESender struct {
	sseServer *sse.Server
}

func NewSSE(sseServer *sse.Server) *SSESender {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SSESender{sseServer: sseServer}
}

func (s *SSESender) SendReminder(ctx context.Context, rem reminder.Reminder) error {
	streamID := rem.UserID.String()
	if !s.sseServer.StreamExists(streamID) {
		return nil
	}

	data, err := json.Marshal(firedReminderEvent{
		ID:      int64(rem.ID),
		UserID:  rem.UserID.String(),
		Message: rem.Message,
		At:      rem.At,
	})
	if err != nil {
		return err
	}

	s.sseServer.Publish(streamID, &sse.Event{Data: data})
	return nil
}
