package domain

// Operation identifies what a user is attempting against an event.
type Operation int

const (
	OpRead Operation = iota
	OpUpdate
	OpDelete
	OpRegister
)

// Allowed is the capability predicate for event access: reads and
// self-registration are open to any authenticated user, mutations only to
// the organizer.
func Allowed(userID string, event *Event, op Operation) bool {
	if userID == "" || event == nil {
		return false
	}
	switch op {
	case OpUpdate, OpDelete:
		return event.OrganizerID == userID
	default:
		return true
	}
}
