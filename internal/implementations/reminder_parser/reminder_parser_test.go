package reminderparser

import (
	"context"
	"remindbot/internal/core/domain/reminder"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2023-02-28 is a Tuesday.
var now = time.Date(2023, 2, 28, 15, 0, 0, 0, time.UTC)

func TestQueryParsedSuccessfully(t *testing.T) {
	cases := []struct {
		query    string
		now      time.Time
		expected reminder.ParsedQuery
	}{
		{
			query: "feed the cat in 10 minutes",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "feed the cat",
				At:      time.Date(2023, 2, 28, 15, 10, 0, 0, time.UTC),
			},
		},
		{
			query: "in 2 hours call mum",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "call mum",
				At:      time.Date(2023, 2, 28, 17, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "renew passport in 3 days",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "renew passport",
				At:      time.Date(2023, 3, 3, 15, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "stretch in 90s",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "stretch",
				At:      time.Date(2023, 2, 28, 15, 1, 30, 0, time.UTC),
			},
		},
		{
			query: "after 45 mins check the oven",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "check the oven",
				At:      time.Date(2023, 2, 28, 15, 45, 0, 0, time.UTC),
			},
		},
		{
			query: "feed the cat tomorrow at noon",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "feed the cat",
				At:      time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "pay rent tomorrow",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "pay rent",
				At:      time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "submit report on friday at 17:30",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "submit report",
				At:      time.Date(2023, 3, 3, 17, 30, 0, 0, time.UTC),
			},
		},
		{
			query: "call dad sunday",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "call dad",
				At:      time.Date(2023, 3, 5, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "standup tmr 9:15am",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "standup",
				At:      time.Date(2023, 3, 1, 9, 15, 0, 0, time.UTC),
			},
		},
		{
			query: "on monday ship the release",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "ship the release",
				At:      time.Date(2023, 3, 6, 12, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "water plants at 8pm",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "water plants",
				At:      time.Date(2023, 2, 28, 20, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "water plants at 2pm",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "water plants",
				At:      time.Date(2023, 3, 1, 14, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "take pills at 7:45",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "take pills",
				At:      time.Date(2023, 3, 1, 7, 45, 0, 0, time.UTC),
			},
		},
		{
			query: "backup the database at midnight",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "backup the database",
				At:      time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "TEAM SYNC TOMORROW AT 10AM",
			now:   now,
			expected: reminder.ParsedQuery{
				Message: "TEAM SYNC",
				At:      time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC),
			},
		},
		{
			query: "call home at 6pm",
			now:   time.Date(2023, 2, 28, 15, 0, 0, 0, tz("Europe/Kaliningrad")),
			expected: reminder.ParsedQuery{
				Message: "call home",
				At:      time.Date(2023, 2, 28, 18, 0, 0, 0, tz("Europe/Kaliningrad")),
			},
		},
	}

	parser := New()
	for _, testcase := range cases {
		id := testcase.query
		t.Run(id, func(t *testing.T) {
			parsed, err := parser.Parse(context.Background(), testcase.query, testcase.now)

			require.NoError(t, err)
			require.Equal(t, testcase.expected, parsed)
		})
	}
}

func TestQueryParsingError(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"feed the cat",
		"in 10 minutes",
		"at 8pm",
		"tomorrow",
		"lunch at 25:10",
		"pills at 13pm",
		"tea 23:60",
		"nap today at 2pm",
	}

	parser := New()
	for _, query := range cases {
		id := query
		t.Run(id, func(t *testing.T) {
			_, err := parser.Parse(context.Background(), query, now)

			require.ErrorIs(t, err, reminder.ErrQueryParsing)
		})
	}
}

func TestSnoozeParsedSuccessfully(t *testing.T) {
	cases := []struct {
		query    string
		expected time.Time
	}{
		{query: "for 20 minutes", expected: time.Date(2023, 2, 28, 15, 20, 0, 0, time.UTC)},
		{query: "20 minutes", expected: time.Date(2023, 2, 28, 15, 20, 0, 0, time.UTC)},
		{query: "for 2h", expected: time.Date(2023, 2, 28, 17, 0, 0, 0, time.UTC)},
		{query: "45m", expected: time.Date(2023, 2, 28, 15, 45, 0, 0, time.UTC)},
		{query: "until 5pm", expected: time.Date(2023, 2, 28, 17, 0, 0, 0, time.UTC)},
		{query: "until 9am", expected: time.Date(2023, 3, 1, 9, 0, 0, 0, time.UTC)},
		{query: "until noon", expected: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)},
		{query: "until tomorrow", expected: time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)},
		{query: "until monday at 8am", expected: time.Date(2023, 3, 6, 8, 0, 0, 0, time.UTC)},
	}

	parser := New()
	for _, testcase := range cases {
		id := testcase.query
		t.Run(id, func(t *testing.T) {
			at, err := parser.ParseSnooze(context.Background(), testcase.query, now)

			require.NoError(t, err)
			require.Equal(t, testcase.expected, at)
		})
	}
}

func TestSnoozeParsingError(t *testing.T) {
	cases := []string{
		"",
		"whenever",
		"for 20",
		"for 0 minutes",
		"until",
		"until the cows come home",
	}

	parser := New()
	for _, query := range cases {
		id := query
		t.Run(id, func(t *testing.T) {
			_, err := parser.ParseSnooze(context.Background(), query, now)

			require.ErrorIs(t, err, reminder.ErrQueryParsing)
		})
	}
}

func tz(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return location
}
