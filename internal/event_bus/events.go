package event_bus

// CalendarEventCreated is published after a calendar event write has been
// confirmed by the store. Subscribers must treat it as informational: the
// event already exists regardless of what they do with it.
type CalendarEventCreated struct {
	Id         string
	OwnerUid   string
	OwnerEmail string
	Title      string
	DateKey    string
}

const CalendarEventCreatedType EventType = "calendar.event.created"

// UserDeleted is published after a user row and its cascaded events have been
// removed, so per-user in-memory state can be discarded.
type UserDeleted struct {
	Uid string
}

const UserDeletedType EventType = "user.deleted"
