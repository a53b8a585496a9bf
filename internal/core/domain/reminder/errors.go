package reminder

import "errors"

var (
	ErrReminderDoesNotExist = errors.New("reminder does not exist")
	// ErrQueryParsing covers every way user input can be unusable: no time
	// expression, nothing left as the message, or a time that is not
	// strictly in the future.
	ErrQueryParsing    = errors.New("could not parse reminder query")
	ErrNothingToSnooze = errors.New("no recently fired reminder to snooze")
	ErrNothingToCancel = errors.New("no recently fired reminder to cancel")
)
