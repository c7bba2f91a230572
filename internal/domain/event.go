package domain

import (
	"context"
	"time"
)

// Event represents an event with its organizer and attendee set.
// Attendees holds user IDs; membership lives in the event_attendees relation.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	OrganizerID string    `json:"organizer"`
	Attendees   []string  `json:"attendees"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// repository on create.
func NewEvent(title, description, location, organizerID string, date, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		OrganizerID: organizerID,
		Attendees:   []string{},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventFilters narrows event listings. All zero-value fields are ignored;
// set fields combine with logical AND.
type EventFilters struct {
	// Invited restricts to events where UserID is (true) or is not (false)
	// in the attendee set.
	Invited *bool
	// UserID is the acting user the Invited filter applies to.
	UserID string
	// Date matches events on the same calendar day, ignoring time-of-day.
	Date *time.Time
	// Title is a case-insensitive substring match.
	Title string
}

// EventUpdate holds a partial update. Nil fields are left unchanged.
// Organizer and attendees are not settable through updates.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns a page of events matching the filters plus the total
	// count across all pages.
	List(ctx context.Context, filters EventFilters, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventAttendeeRepository defines storage for the event/user attendance
// relation. Add is idempotent: adding an existing pair is a no-op.
type EventAttendeeRepository interface {
	Add(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListUserIDs(ctx context.Context, eventID string) ([]string, error)
}

// CreateEventInput is the input for EventService.Create.
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	// Invitees are email addresses resolved best-effort to existing users.
	Invitees []string
}

// EventService defines the event CRUD contract and membership rules.
type EventService interface {
	// Create creates the event with actorID as organizer and resolves
	// invitee emails to attendees. Unresolved emails are returned, not
	// treated as an error.
	Create(ctx context.Context, input CreateEventInput, actorID string) (*Event, []string, error)
	List(ctx context.Context, filters EventFilters, actorID string, params PaginationParams) ([]*Event, int, error)
	GetByID(ctx context.Context, eventID, actorID string) (*Event, error)
	Update(ctx context.Context, eventID, actorID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, eventID, actorID string) error
	// Register adds actorID to the event's attendees. Idempotent: returns
	// added=false without error when already registered.
	Register(ctx context.Context, eventID, actorID string) (added bool, err error)
	ListInvitations(ctx context.Context, eventID, actorID string, params PaginationParams) ([]*EventInvitation, int, error)
}
