package user

// ID is the chat-platform identifier of a user (a Discord snowflake).
// Users are not registered anywhere in this service, the chat platform is
// the source of truth for their existence.
type ID string

func (id ID) String() string {
	return string(id)
}
