package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrManagerNotFound is returned when a manager lookup fails.
var ErrManagerNotFound = errors.New("manager not found")

// ManagerRepo provides CRUD access to the managers table.
type ManagerRepo struct {
	db *sql.DB
}

// NewManagerRepo constructs a ManagerRepo with the given DB handle.
func NewManagerRepo(db *sql.DB) *ManagerRepo {
	return &ManagerRepo{db: db}
}

const managerCols = `id, first_name, last_name, status, deleted_at, created_at, updated_at`

func scanManager(row interface {
	Scan(dest ...any) error
}) (*model.Manager, error) {
	var (
		m         model.Manager
		deletedAt sql.NullTime
	)
	err := row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Status, &deletedAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		m.DeletedAt = &t
	}
	return &m, nil
}

// Create inserts a new manager starting UNEMPLOYED.
func (r *ManagerRepo) Create(ctx context.Context, m *model.Manager) error {
	const q = `INSERT INTO managers (first_name, last_name, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName, model.StatusUnemployed)
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
	*m = *created
	return nil
}

// GetByID retrieves a live manager by ID.
func (r *ManagerRepo) GetByID(ctx context.Context, id uint64) (*model.Manager, error) {
	q := `SELECT ` + managerCols + ` FROM managers WHERE id = ? AND deleted_at IS NULL`
	m, err := scanManager(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns all live managers, optionally filtered by status.
func (r *ManagerRepo) List(ctx context.Context, status *model.Status) ([]*model.Manager, error) {
	q := `SELECT ` + managerCols + ` FROM managers WHERE deleted_at IS NULL`
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

	var out []*model.Manager
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the name fields of a live manager.
func (r *ManagerRepo) Update(ctx context.Context, m *model.Manager) error {
	const q = `UPDATE managers SET first_name = ?, last_name = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrManagerNotFound
	}
	return nil
}

// SoftDelete hides a manager; Restore brings the row back.
func (r *ManagerRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE managers SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrManagerNotFound
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *ManagerRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE managers SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrManagerNotFound
	}
	return nil
}
