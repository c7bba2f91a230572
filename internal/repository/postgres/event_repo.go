package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"eventsmanager/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

// eventColumns is the select list shared by all event queries. Attendee user
// IDs are aggregated from the event_attendees relation so every returned
// event carries its full attendee set.
const eventColumns = `
	e.id, e.title, e.description, e.date, e.location, e.organizer_id, e.created_at, e.updated_at,
	COALESCE(ARRAY_AGG(a.user_id) FILTER (WHERE a.user_id IS NOT NULL), '{}') AS attendees
`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		LEFT JOIN event_attendees a ON a.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id
	`, eventColumns)
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

// buildFilterClauses translates EventFilters into WHERE clauses and
// positional args, starting the placeholder numbering at startArg.
func buildFilterClauses(f domain.EventFilters, startArg int) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}
	n := startArg
	if f.Invited != nil && f.UserID != "" {
		sub := fmt.Sprintf("EXISTS (SELECT 1 FROM event_attendees x WHERE x.event_id = e.id AND x.user_id = $%d)", n)
		if !*f.Invited {
			sub = "NOT " + sub
		}
		clauses = append(clauses, sub)
		args = append(args, f.UserID)
		n++
	}
	if f.Date != nil {
		clauses = append(clauses, fmt.Sprintf("e.date::date = $%d::date", n))
		args = append(args, *f.Date)
		n++
	}
	if f.Title != "" {
		clauses = append(clauses, fmt.Sprintf("e.title ILIKE '%%' || $%d || '%%'", n))
		args = append(args, f.Title)
		n++
	}
	return clauses, args
}

func (r *eventRepository) List(ctx context.Context, filters domain.EventFilters, params domain.PaginationParams) ([]*domain.Event, int, error) {
	clauses, args := buildFilterClauses(filters, 1)
	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events e %s`, where)
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		LEFT JOIN event_attendees a ON a.event_id = e.id
		%s
		GROUP BY e.id
		ORDER BY e.date ASC, e.id ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, where, n, n+1)
	listArgs := append(args, params.PageSize, params.Offset())

	rows, err := r.DB.QueryContext(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var attendees pq.StringArray
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
			&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt, &attendees); err != nil {
			return nil, 0, err
		}
		e.Attendees = attendees
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if upd.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *upd.Title)
		n++
	}
	if upd.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *upd.Description)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if upd.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *upd.Location)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, title, description, date, location, organizer_id, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// UPDATE ... RETURNING cannot aggregate the relation in the same
	// statement, so load the attendee set separately.
	attendees, err := r.listAttendees(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	e.Attendees = attendees
	return e, nil
}

func (r *eventRepository) listAttendees(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT user_id FROM event_attendees WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
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

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row *sql.Row) (*domain.Event, error) {
	e := &domain.Event{}
	var attendees pq.StringArray
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.OrganizerID, &e.CreatedAt, &e.UpdatedAt, &attendees)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Attendees = attendees
	return e, nil
}
