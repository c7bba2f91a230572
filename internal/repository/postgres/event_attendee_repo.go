package postgres

import (
	"context"
	"database/sql"

	"eventsmanager/internal/domain"
)

type eventAttendeeRepository struct {
	DB *sql.DB
}

func NewEventAttendeeRepository(db *sql.DB) domain.EventAttendeeRepository {
	return &eventAttendeeRepository{DB: db}
}

// Add inserts the attendance pair. The unique constraint on
// (event_id, user_id) plus ON CONFLICT DO NOTHING makes repeated
// registrations a no-op even under concurrent requests.
func (r *eventAttendeeRepository) Add(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID)
	return err
}

func (r *eventAttendeeRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *eventAttendeeRepository) ListUserIDs(ctx context.Context, eventID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM event_attendees
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
