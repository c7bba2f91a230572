package domain

import (
	"context"
	"time"
)

// EventInvitation records an email invited at event creation, whether or
// not it resolved to an existing user.
// swagger:model EventInvitation
type EventInvitation struct {
	ID       string    `json:"id"`
	EventID  string    `json:"event_id"`
	Email    string    `json:"email"`
	Resolved bool      `json:"resolved"`
	SentAt   time.Time `json:"sent_at"`
}

// EventInvitationRepository defines storage operations for event invitations.
type EventInvitationRepository interface {
	Create(ctx context.Context, inv *EventInvitation) error
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*EventInvitation, int, error)
}
