package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrWrestlerNotFound is returned when a wrestler lookup fails.
var ErrWrestlerNotFound = errors.New("wrestler not found")

// WrestlerRepo provides CRUD access to the wrestlers table.  Lifecycle
// status is never written here; transitions go through the lifecycle
// service so the cached status column stays in sync with the period
// ledger.
type WrestlerRepo struct {
	db *sql.DB
}

// NewWrestlerRepo constructs a WrestlerRepo with the given DB handle.
func NewWrestlerRepo(db *sql.DB) *WrestlerRepo {
	return &WrestlerRepo{db: db}
}

const wrestlerCols = `id, name, height_inches, weight_lbs, hometown, signature_move, status, deleted_at, created_at, updated_at`

func scanWrestler(row interface {
	Scan(dest ...any) error
}) (*model.Wrestler, error) {
	var (
		w         model.Wrestler
		signature sql.NullString
		deletedAt sql.NullTime
	)
	err := row.Scan(&w.ID, &w.Name, &w.Height, &w.Weight, &w.Hometown, &signature, &w.Status, &deletedAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if signature.Valid {
		w.Signature = &signature.String
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		w.DeletedAt = &t
	}
	return &w, nil
}

// Create inserts a new wrestler.  New wrestlers start UNEMPLOYED with an
// empty period ledger; employment is granted through a transition.  The
// record is read back after insert so timestamps are populated.
func (r *WrestlerRepo) Create(ctx context.Context, w *model.Wrestler) error {
	const qInsert = `INSERT INTO wrestlers (name, height_inches, weight_lbs, hometown, signature_move, status)
	                 VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, w.Name, w.Height, w.Weight, w.Hometown, w.Signature, model.StatusUnemployed)
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
	*w = *created
	return nil
}

// GetByID retrieves a live wrestler by ID.  Soft-deleted rows are treated
// as missing and return ErrWrestlerNotFound.
func (r *WrestlerRepo) GetByID(ctx context.Context, id uint64) (*model.Wrestler, error) {
	q := `SELECT ` + wrestlerCols + ` FROM wrestlers WHERE id = ? AND deleted_at IS NULL`
	w, err := scanWrestler(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWrestlerNotFound
		}
		return nil, err
	}
	return w, nil
}

// List returns all live wrestlers, optionally filtered by status.
func (r *WrestlerRepo) List(ctx context.Context, status *model.Status) ([]*model.Wrestler, error) {
	q := `SELECT ` + wrestlerCols + ` FROM wrestlers WHERE deleted_at IS NULL`
	args := []any{}
	if status != nil {
		q += ` AND status = ?`
		args = append(args, *status)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Wrestler
	for rows.Next() {
		w, err := scanWrestler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the profile fields of a live wrestler.  Status is
// deliberately excluded; it belongs to the lifecycle layer.
func (r *WrestlerRepo) Update(ctx context.Context, w *model.Wrestler) error {
	const q = `UPDATE wrestlers
	           SET name = ?, height_inches = ?, weight_lbs = ?, hometown = ?, signature_move = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, w.Name, w.Height, w.Weight, w.Hometown, w.Signature, w.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWrestlerNotFound
	}
	return nil
}

// SoftDelete hides a wrestler from every list and lookup.  Period history,
// reigns and memberships are kept; restore brings the row back untouched.
func (r *WrestlerRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE wrestlers SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWrestlerNotFound
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *WrestlerRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE wrestlers SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWrestlerNotFound
	}
	return nil
}
