package reminderparser

import (
	"context"
	"fmt"
	"regexp"
	"remindbot/internal/core/domain/reminder"
	"strconv"
	"strings"
	"sync"
	"time"
)

var once sync.Once

var (
	reIn = regexp.MustCompile(
		`(?i)\b(in|after)\s+(\d{1,3})\s*` +
			`(seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w)\b`,
	)
	reOn = regexp.MustCompile(
		`(?i)\b(?:on\s+)?(` + strings.Join(
			[]string{
				"today",
				"tomorrow|tmrw|tmr",
				"sunday|sun",
				"monday|mon",
				"tuesday|tues|tue|tu",
				"wednesday|weds|wed",
				"thursday|thurs|thur|thu|th",
				"friday|fri",
				"saturday|sat",
			},
			"|",
		) + `)\b`,
	)
	reClock = regexp.MustCompile(
		`(?i)` + strings.Join(
			[]string{
				`((?:\bat\s+)?\b(noon|midday|midnight)\b)`,
				`(\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b)`,
				`(\b(\d{1,2}):(\d{2})\s*(am|pm)?\b)`,
				`(\b(\d{1,2})\s*(am|pm)\b)`,
			},
			"|",
		),
	)
	reSnoozeFor = regexp.MustCompile(
		`(?i)^(?:for\s+)?(\d{1,3})\s*` +
			`(seconds?|secs?|s|minutes?|mins?|m|hours?|hrs?|h|days?|d|weeks?|w)$`,
	)
	reSnoozeUntil = regexp.MustCompile(`(?i)^until\s+(.+)$`)
)

// Parser extracts a time expression from free reminder text. The part of
// the text covered by the expression becomes the due time, everything
// else becomes the reminder message.
type Parser struct{}

func New() *Parser {
	once.Do(func() {
		reIn.Longest()
		reOn.Longest()
		reClock.Longest()
		reSnoozeFor.Longest()
	})
	return &Parser{}
}

func (p *Parser) Parse(
	ctx context.Context,
	query string,
	now time.Time,
) (parsed reminder.ParsedQuery, err error) {
	query = strings.TrimSpace(query)

	node, start, end, err := p.findTimeExpression(query)
	if err != nil {
		return parsed, err
	}

	message := strings.Join(strings.Fields(query[:start]+" "+query[end:]), " ")
	if message == "" {
		return parsed, fmt.Errorf("no message in query, %w", reminder.ErrQueryParsing)
	}

	at, err := resolveTime(node, now)
	if err != nil {
		return parsed, err
	}
	if !at.After(now) {
		return parsed, fmt.Errorf("time is not in the future, %w", reminder.ErrQueryParsing)
	}

	return reminder.ParsedQuery{Message: message, At: at}, nil
}

func (p *Parser) ParseSnooze(
	ctx context.Context,
	query string,
	now time.Time,
) (at time.Time, err error) {
	query = strings.TrimSpace(query)

	var node node
	if m := reSnoozeFor.FindStringSubmatch(query); m != nil {
		node, err = p.parseDuration(m[1], m[2])
		if err != nil {
			return at, err
		}
	} else if m := reSnoozeUntil.FindStringSubmatch(query); m != nil {
		deadline := m[1]
		n, start, end, err := p.findTimeExpression(deadline)
		if err != nil {
			return at, err
		}
		if strings.TrimSpace(deadline[:start]) != "" || strings.TrimSpace(deadline[end:]) != "" {
			return at, fmt.Errorf("invalid snooze deadline, %w", reminder.ErrQueryParsing)
		}
		node = n
	} else {
		return at, fmt.Errorf("invalid snooze query, %w", reminder.ErrQueryParsing)
	}

	at, err = resolveTime(node, now)
	if err != nil {
		return at, err
	}
	if !at.After(now) {
		return at, fmt.Errorf("snooze time is not in the future, %w", reminder.ErrQueryParsing)
	}
	return at, nil
}

func (p *Parser) findTimeExpression(query string) (node, int, int, error) {
	onMatch := reOn.FindStringSubmatchIndex(query)
	inMatch := reIn.FindStringSubmatchIndex(query)
	clockMatch := reClock.FindStringSubmatchIndex(query)

	if onMatch != nil &&
		(inMatch == nil || onMatch[0] <= inMatch[0]) &&
		(clockMatch == nil || onMatch[0] <= clockMatch[0]) {
		on, err := p.parseOn(onMatch, query)
		if err != nil {
			return nil, 0, 0, err
		}

		// A clock right after the day word belongs to the same
		// expression, as in "tomorrow at 9am".
		end := onMatch[1]
		rest := query[end:]
		restClock := reClock.FindStringSubmatchIndex(rest)
		if restClock != nil && strings.TrimSpace(rest[:restClock[0]]) == "" {
			clk, err := p.parseClock(restClock, rest)
			if err != nil {
				return nil, 0, 0, err
			}
			on.clock = &clk
			end += restClock[1]
		}
		return on, onMatch[0], end, nil
	}

	if inMatch != nil && (clockMatch == nil || inMatch[0] <= clockMatch[0]) {
		in, err := p.parseIn(inMatch, query)
		if err != nil {
			return nil, 0, 0, err
		}
		return in, inMatch[0], inMatch[1], nil
	}

	if clockMatch != nil {
		clk, err := p.parseClock(clockMatch, query)
		if err != nil {
			return nil, 0, 0, err
		}
		return clk, clockMatch[0], clockMatch[1], nil
	}

	return nil, 0, 0, fmt.Errorf("no time expression in query, %w", reminder.ErrQueryParsing)
}

func (p *Parser) parseClock(match []int, query string) (clock, error) {
	if len(match) != 28 {
		return clock{}, fmt.Errorf("invalid match for parseClock, %w", reminder.ErrQueryParsing)
	}

	if match[2] != -1 {
		switch strings.ToLower(query[match[4]:match[5]]) {
		case "midday", "noon":
			return clock{hour: 12, minute: 0}, nil
		case "midnight":
			return clock{}, nil
		}
		return clock{}, reminder.ErrQueryParsing
	}

	if match[6] != -1 {
		rawHour := query[match[8]:match[9]]
		var rawMinute, amOrPm string
		if match[10] != -1 {
			rawMinute = query[match[10]:match[11]]
		}
		if match[12] != -1 {
			amOrPm = strings.ToLower(query[match[12]:match[13]])
		}
		return p.parseRawClock(rawHour, rawMinute, amOrPm)
	}

	if match[14] != -1 {
		rawHour := query[match[16]:match[17]]
		rawMinute := query[match[18]:match[19]]
		var amOrPm string
		if match[20] != -1 {
			amOrPm = strings.ToLower(query[match[20]:match[21]])
		}
		return p.parseRawClock(rawHour, rawMinute, amOrPm)
	}

	if match[22] != -1 {
		rawHour := query[match[24]:match[25]]
		amOrPm := strings.ToLower(query[match[26]:match[27]])
		return p.parseRawClock(rawHour, "", amOrPm)
	}

	return clock{}, reminder.ErrQueryParsing
}

func (p *Parser) parseRawClock(rawHour string, rawMinute string, amOrPm string) (clock, error) {
	clockHour, err := strconv.ParseUint(rawHour, 10, 8)
	if err != nil {
		return clock{}, reminder.ErrQueryParsing
	}

	var clockMinute uint64
	if rawMinute != "" {
		clockMinute, err = strconv.ParseUint(rawMinute, 10, 8)
		if err != nil {
			return clock{}, reminder.ErrQueryParsing
		}
	}

	if amOrPm != "" && (clockHour < 1 || clockHour > 12) {
		return clock{}, reminder.ErrQueryParsing
	}
	if amOrPm == "am" && clockHour == 12 {
		clockHour = 0
	}
	if amOrPm == "pm" && clockHour != 12 {
		clockHour += 12
	}

	return clock{hour: uint(clockHour), minute: uint(clockMinute)}, nil
}

func (p *Parser) parseOn(match []int, query string) (on, error) {
	if len(match) != 4 {
		return on{}, fmt.Errorf("invalid match for parseOn, %w", reminder.ErrQueryParsing)
	}

	switch strings.ToLower(query[match[2]:match[3]]) {
	case "today":
		return on{day: today}, nil
	case "tomorrow", "tmrw", "tmr":
		return on{day: tomorrow}, nil
	case "sunday", "sun":
		return on{day: sunday}, nil
	case "monday", "mon":
		return on{day: monday}, nil
	case "tuesday", "tues", "tue", "tu":
		return on{day: tuesday}, nil
	case "wednesday", "weds", "wed":
		return on{day: wednesday}, nil
	case "thursday", "thurs", "thur", "thu", "th":
		return on{day: thursday}, nil
	case "friday", "fri":
		return on{day: friday}, nil
	case "saturday", "sat":
		return on{day: saturday}, nil
	default:
		return on{}, reminder.ErrQueryParsing
	}
}

func (p *Parser) parseIn(match []int, query string) (in, error) {
	if len(match) != 8 {
		return in{}, fmt.Errorf("invalid match for parseIn, %w", reminder.ErrQueryParsing)
	}
	return p.parseDuration(query[match[4]:match[5]], query[match[6]:match[7]])
}

func (p *Parser) parseDuration(rawN string, rawPeriod string) (in, error) {
	parsedN, err := strconv.ParseUint(rawN, 10, 16)
	if err != nil {
		return in{}, reminder.ErrQueryParsing
	}

	var period period
	switch strings.ToLower(rawPeriod) {
	case "s", "sec", "secs", "second", "seconds":
		period = second
	case "m", "min", "mins", "minute", "minutes":
		period = minute
	case "h", "hr", "hrs", "hour", "hours":
		period = hour
	case "d", "day", "days":
		period = day
	case "w", "week", "weeks":
		period = week
	}
	if period == invalid {
		return in{}, fmt.Errorf("invalid duration period, %w", reminder.ErrQueryParsing)
	}

	return in{n: uint(parsedN), p: period}, nil
}
