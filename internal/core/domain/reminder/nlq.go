package reminder

import (
	"context"
	"time"
)

// ParsedQuery is the outcome of extracting a time expression from free
// text: the absolute due time and whatever text remains as the message.
type ParsedQuery struct {
	Message string
	At      time.Time
}

type NaturalLanguageQueryParser interface {
	Parse(ctx context.Context, query string, now time.Time) (ParsedQuery, error)
}

// SnoozeQueryParser resolves snooze phrases, either a relative duration
// ("for 20 minutes") or a deadline ("until 5pm"), to an absolute time.
type SnoozeQueryParser interface {
	ParseSnooze(ctx context.Context, query string, now time.Time) (time.Time, error)
}
