package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrRefereeNotFound is returned when a referee lookup fails.
var ErrRefereeNotFound = errors.New("referee not found")

// RefereeRepo provides CRUD access to the referees table.
type RefereeRepo struct {
	db *sql.DB
}

// NewRefereeRepo constructs a RefereeRepo with the given DB handle.
func NewRefereeRepo(db *sql.DB) *RefereeRepo {
	return &RefereeRepo{db: db}
}

const refereeCols = `id, first_name, last_name, status, deleted_at, created_at, updated_at`

func scanReferee(row interface {
	Scan(dest ...any) error
}) (*model.Referee, error) {
	var (
		ref       model.Referee
		deletedAt sql.NullTime
	)
	err := row.Scan(&ref.ID, &ref.FirstName, &ref.LastName, &ref.Status, &deletedAt, &ref.CreatedAt, &ref.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		ref.DeletedAt = &t
	}
	return &ref, nil
}

// Create inserts a new referee starting UNEMPLOYED.
func (r *RefereeRepo) Create(ctx context.Context, ref *model.Referee) error {
	const q = `INSERT INTO referees (first_name, last_name, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, ref.FirstName, ref.LastName, model.StatusUnemployed)
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
	*ref = *created
	return nil
}

// GetByID retrieves a live referee by ID.
func (r *RefereeRepo) GetByID(ctx context.Context, id uint64) (*model.Referee, error) {
	q := `SELECT ` + refereeCols + ` FROM referees WHERE id = ? AND deleted_at IS NULL`
	ref, err := scanReferee(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRefereeNotFound
		}
		return nil, err
	}
	return ref, nil
}

// List returns all live referees, optionally filtered by status.
func (r *RefereeRepo) List(ctx context.Context, status *model.Status) ([]*model.Referee, error) {
	q := `SELECT ` + refereeCols + ` FROM referees WHERE deleted_at IS NULL`
	args := []any{}
	if status != nil {
		q += ` AND status = ?`
		args = append(args, *status)
	}
	q += ` ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Referee
	for rows.Next() {
		ref, err := scanReferee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the name fields of a live referee.
func (r *RefereeRepo) Update(ctx context.Context, ref *model.Referee) error {
	const q = `UPDATE referees SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, ref.FirstName, ref.LastName, ref.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefereeNotFound
	}
	return nil
}

// SoftDelete hides a referee; Restore brings the row back.
func (r *RefereeRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE referees SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefereeNotFound
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *RefereeRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE referees SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRefereeNotFound
	}
	return nil
}
