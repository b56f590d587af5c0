package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrEventNotFound is returned when an event lookup fails.
var ErrEventNotFound = errors.New("event not found")

// EventRepo provides CRUD access to the events table.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventCols = `id, name, date, venue_id, preview, deleted_at, created_at, updated_at`

func scanEvent(row interface {
	Scan(dest ...any) error
}) (*model.Event, error) {
	var (
		e         model.Event
		date      sql.NullTime
		venueID   sql.NullInt64
		preview   sql.NullString
		deletedAt sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Name, &date, &venueID, &preview, &deletedAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if date.Valid {
		t := date.Time
		e.Date = &t
	}
	if venueID.Valid {
		v := uint64(venueID.Int64)
		e.VenueID = &v
	}
	if preview.Valid {
		e.Preview = &preview.String
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		e.DeletedAt = &t
	}
	return &e, nil
}

// Create inserts a new event.  Date and venue may be nil until the card is
// finalised.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (name, date, venue_id, preview) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Date, e.VenueID, e.Preview)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	created, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*e = *created
	return nil
}

// GetByID retrieves a live event by ID.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	q := `SELECT ` + eventCols + ` FROM events WHERE id = ? AND deleted_at IS NULL`
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns all live events, scheduled ones first by date, then the
// unscheduled ones by name.
func (r *EventRepo) List(ctx context.Context) ([]*model.Event, error) {
	q := `SELECT ` + eventCols + ` FROM events WHERE deleted_at IS NULL
	      ORDER BY date IS NULL, date, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the fields of a live event.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET name = ?, date = ?, venue_id = ?, preview = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Date, e.VenueID, e.Preview, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// SoftDelete hides an event; Restore brings the row back.
func (r *EventRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE events SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *EventRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE events SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}
