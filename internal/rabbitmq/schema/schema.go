package schema

import (
	"encoding/json"
	"time"
)

// Reminder is the wire form of a scheduled reminder hand-off between the
// scanning loop and the delivery consumer.
type Reminder struct {
	ID int64
	At time.Time
}

func (r *Reminder) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func (r *Reminder) Unmarshal(data []byte) error {
	return json.Unmarshal(data, r)
}
