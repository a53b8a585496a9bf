package response

import (
	"remindbot/internal/core/domain/reminder"
	"time"
)

type Reminder struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"created_at"`
	At          time.Time  `json:"at"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	FiredAt     *time.Time `json:"fired_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.UserID = dr.UserID.String()
	r.Message = dr.Message
	r.CreatedAt = dr.CreatedAt
	r.At = dr.At
	r.Status = dr.Status.String()
	if dr.ScheduledAt.IsPresent {
		r.ScheduledAt = &dr.ScheduledAt.Value
	}
	if dr.FiredAt.IsPresent {
		r.FiredAt = &dr.FiredAt.Value
	}
}
