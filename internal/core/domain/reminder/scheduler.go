package reminder

import "context"

// Scheduler hands a claimed reminder to the delivery queue. Delivery timing
// beyond the queue delay is the horizon scan's responsibility.
type Scheduler interface {
	ScheduleReminder(ctx context.Context, r Reminder) error
}
