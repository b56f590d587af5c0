package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrStableNotFound is returned when a stable lookup fails.
var ErrStableNotFound = errors.New("stable not found")

// StableRepo provides CRUD access to the stables table and read access to
// the stable_members join table.  Attaching and detaching members goes
// through the lifecycle service.
type StableRepo struct {
	db *sql.DB
}

// NewStableRepo constructs a StableRepo with the given DB handle.
func NewStableRepo(db *sql.DB) *StableRepo {
	return &StableRepo{db: db}
}

const stableCols = `id, name, deleted_at, created_at, updated_at`

func scanStable(row interface {
	Scan(dest ...any) error
}) (*model.Stable, error) {
	var (
		s         model.Stable
		deletedAt sql.NullTime
	)
	err := row.Scan(&s.ID, &s.Name, &deletedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		s.DeletedAt = &t
	}
	return &s, nil
}

// Create inserts a new stable with no members.
func (r *StableRepo) Create(ctx context.Context, s *model.Stable) error {
	const q = `INSERT INTO stables (name) VALUES (?)`
	res, err := r.db.ExecContext(ctx, q, s.Name)
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
	*s = *created
	return nil
}

// GetByID retrieves a live stable by ID.
func (r *StableRepo) GetByID(ctx context.Context, id uint64) (*model.Stable, error) {
	q := `SELECT ` + stableCols + ` FROM stables WHERE id = ? AND deleted_at IS NULL`
	s, err := scanStable(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStableNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns all live stables ordered by name.
func (r *StableRepo) List(ctx context.Context) ([]*model.Stable, error) {
	q := `SELECT ` + stableCols + ` FROM stables WHERE deleted_at IS NULL ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Stable
	for rows.Next() {
		s, err := scanStable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a live stable.
func (r *StableRepo) Update(ctx context.Context, s *model.Stable) error {
	const q = `UPDATE stables SET name = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStableNotFound
	}
	return nil
}

// SoftDelete hides a stable and closes its open memberships in the same
// transaction so no member stays pinned to a hidden faction.
func (r *StableRepo) SoftDelete(ctx context.Context, id uint64) error {
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
	res, err := tx.ExecContext(ctx,
		`UPDATE stables SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrStableNotFound
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE stable_members SET left_at = UTC_TIMESTAMP() WHERE stable_id = ? AND left_at IS NULL`, id)
	return err
}

// Restore clears the soft-deletion marker.  Memberships closed by the
// delete stay closed; members rejoin explicitly.
func (r *StableRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE stables SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrStableNotFound
	}
	return nil
}

// CurrentMembers returns the stable's open memberships, oldest first.
func (r *StableRepo) CurrentMembers(ctx context.Context, stableID uint64) ([]model.StableMember, error) {
	q := `SELECT ` + stableMemberCols + ` FROM stable_members
	      WHERE stable_id = ? AND left_at IS NULL
	      ORDER BY joined_at, id`
	rows, err := r.db.QueryContext(ctx, q, stableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.StableMember
	for rows.Next() {
		m, err := scanStableMember(rows)
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
