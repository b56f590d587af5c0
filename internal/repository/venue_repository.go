package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrVenueNotFound is returned when a venue lookup fails.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo provides CRUD access to the venues table.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

const venueCols = `id, name, street_address, city, state, zipcode, deleted_at, created_at, updated_at`

func scanVenue(row interface {
	Scan(dest ...any) error
}) (*model.Venue, error) {
	var (
		v         model.Venue
		deletedAt sql.NullTime
	)
	err := row.Scan(&v.ID, &v.Name, &v.Street, &v.City, &v.State, &v.Zipcode, &deletedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		v.DeletedAt = &t
	}
	return &v, nil
}

// Create inserts a new venue.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, street_address, city, state, zipcode) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Street, v.City, v.State, v.Zipcode)
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
	*v = *created
	return nil
}

// GetByID retrieves a live venue by ID.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	q := `SELECT ` + venueCols + ` FROM venues WHERE id = ? AND deleted_at IS NULL`
	v, err := scanVenue(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// List returns all live venues ordered by name.
func (r *VenueRepo) List(ctx context.Context) ([]*model.Venue, error) {
	q := `SELECT ` + venueCols + ` FROM venues WHERE deleted_at IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the address fields of a live venue.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, street_address = ?, city = ?, state = ?, zipcode = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Street, v.City, v.State, v.Zipcode, v.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// SoftDelete hides a venue.  Venues still referenced by a live event
// cannot be deleted; ErrConflict is returned in that case.
func (r *VenueRepo) SoftDelete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	var inUse int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE venue_id = ? AND deleted_at IS NULL`, id).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse > 0 {
		err = ErrConflict
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE venues SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrVenueNotFound
		return err
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *VenueRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE venues SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
