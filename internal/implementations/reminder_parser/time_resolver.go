package reminderparser

import (
	"fmt"
	"remindbot/internal/core/domain/reminder"
	"time"

	"github.com/golang-module/carbon/v2"
)

func resolveTime(node node, now time.Time) (at time.Time, err error) {
	resolver := newTimeResolver(carbon.Time2Carbon(now))
	if err := node.accept(resolver); err != nil {
		return at, err
	}
	return resolver.at.Carbon2Time(), nil
}

type timeResolver struct {
	now      carbon.Carbon
	at       carbon.Carbon
	dayFixed bool
}

func newTimeResolver(now carbon.Carbon) *timeResolver {
	return &timeResolver{now: now, at: now}
}

func (r *timeResolver) visitClock(clock clock) error {
	if clock.hour > 24 {
		return fmt.Errorf("invalid clock hour, %w", reminder.ErrQueryParsing)
	}
	if clock.hour == 24 {
		clock.hour = 0
	}
	if clock.minute > 59 {
		return fmt.Errorf("invalid clock minute, %w", reminder.ErrQueryParsing)
	}

	r.at = r.at.SetTimeMicro(int(clock.hour), int(clock.minute), 0, 0)
	if !r.dayFixed && r.at.Lte(r.now) {
		r.at = r.at.AddDay()
	}

	return nil
}

func (r *timeResolver) visitOn(on on) error {
	d := r.now.DayOfWeek()
	if d == 0 {
		return fmt.Errorf("could not define day of week, %w", reminder.ErrQueryParsing)
	}

	var addDayCount int
	switch on.day {
	case today:
		// do nothing
	case tomorrow:
		addDayCount = 1
	case monday:
		addDayCount = 1 - d
	case tuesday:
		addDayCount = 2 - d
	case wednesday:
		addDayCount = 3 - d
	case thursday:
		addDayCount = 4 - d
	case friday:
		addDayCount = 5 - d
	case saturday:
		addDayCount = 6 - d
	case sunday:
		addDayCount = 7 - d
	default:
		return fmt.Errorf("on day is invalid, %w", reminder.ErrQueryParsing)
	}
	switch on.day {
	case today, tomorrow:
	default:
		if addDayCount <= 0 {
			addDayCount += 7
		}
	}

	r.at = r.at.AddDays(addDayCount)
	r.dayFixed = true
	if on.clock != nil {
		return on.clock.accept(r)
	}

	// A bare day without a time reads as midday, the way people say
	// "remind me tomorrow" and mean lunchtime rather than 00:00.
	r.at = r.at.SetTimeMicro(12, 0, 0, 0)
	return nil
}

func (r *timeResolver) visitIn(in in) error {
	switch in.p {
	case second:
		r.at = r.at.AddSeconds(int(in.n))
	case minute:
		r.at = r.at.AddMinutes(int(in.n))
	case hour:
		r.at = r.at.AddHours(int(in.n))
	case day:
		r.at = r.at.AddDays(int(in.n))
	case week:
		r.at = r.at.AddWeeks(int(in.n))
	default:
		return fmt.Errorf("in period is invalid, %w", reminder.ErrQueryParsing)
	}

	return nil
}
