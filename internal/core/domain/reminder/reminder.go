package reminder

import (
	c "remindbot/internal/core/domain/common"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/user"
	"time"
)

type ID int64

// DURATION_FOR_SCHEDULING is the window within which a newly created
// reminder is handed to the delivery queue immediately instead of waiting
// for the next horizon scan.
const DURATION_FOR_SCHEDULING = 5 * time.Minute

type Reminder struct {
	ID        ID
	UserID    user.ID
	Message   string
	CreatedAt time.Time
	At        time.Time
	// ScheduledAt marks the moment the reminder was handed to the delivery
	// queue. A stale marker means the hand-off was lost and the horizon
	// scan claims the reminder again.
	ScheduledAt c.Optional[time.Time]
	FiredAt     c.Optional[time.Time]
	Status      Status
}

func (r *Reminder) Validate() error {
	if r.UserID == "" {
		return e.NewInvalidStateError("reminder must belong to a user")
	}
	if r.Message == "" {
		return e.NewInvalidStateError("reminder message must not be empty")
	}
	if r.Status == StatusUnknown {
		return e.NewInvalidStateError("reminder status is not set")
	}
	if r.Status == StatusFired && !r.FiredAt.IsPresent {
		return e.NewInvalidStateError("FiredAt must be set for fired reminders")
	}
	return nil
}
