package reminder

import (
	"context"
	c "remindbot/internal/core/domain/common"
	"remindbot/internal/core/domain/user"
	"time"
)

type CreateInput struct {
	UserID      user.ID
	Message     string
	CreatedAt   time.Time
	At          time.Time
	ScheduledAt c.Optional[time.Time]
	Status      Status
}

type ReadOptions struct {
	UserIDEquals c.Optional[user.ID]
	StatusEquals c.Optional[Status]
	OrderBy      OrderBy
	Limit        c.Optional[uint]
}

// UpdateInput describes a conditioned point update. The Expect* fields are
// the optimistic precondition taken from the read view immediately before
// the write; when any of them no longer matches, Update reports
// ErrReminderDoesNotExist and nothing is written.
type UpdateInput struct {
	ID                  ID
	DoAtUpdate          bool
	At                  time.Time
	DoStatusUpdate      bool
	Status              Status
	DoFiredAtUpdate     bool
	FiredAt             c.Optional[time.Time]
	DoScheduledAtUpdate bool
	ScheduledAt         c.Optional[time.Time]

	ExpectStatus   c.Optional[Status]
	ExpectFiredAt  c.Optional[time.Time]
	ExpectDueBy    c.Optional[time.Time]
}

type DeleteInput struct {
	ID            ID
	ExpectStatus  c.Optional[Status]
	ExpectFiredAt c.Optional[time.Time]
}

// ScheduleInput selects due pending reminders for hand-off to the delivery
// queue. Rows already carrying a hand-off marker newer than RequeueBefore
// are left alone so overlapping scans do not double-publish.
type ScheduleInput struct {
	AtBefore      time.Time
	ScheduledAt   time.Time
	RequeueBefore time.Time
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	// GetLatestFired returns the reminder with the greatest FiredAt among
	// the user's fired reminders, or ErrReminderDoesNotExist.
	GetLatestFired(ctx context.Context, userID user.ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Schedule(ctx context.Context, input ScheduleInput) ([]Reminder, error)
	Delete(ctx context.Context, input DeleteInput) error
	DeleteByUserID(ctx context.Context, userID user.ID) (uint, error)
	DeleteFiredBefore(ctx context.Context, firedBefore time.Time) (uint, error)
}
