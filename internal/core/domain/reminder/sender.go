package reminder

import "context"

// Sender delivers a fired reminder directly to its user, independent of
// the channel the original command came from.
type Sender interface {
	SendReminder(ctx context.Context, r Reminder) error
}
