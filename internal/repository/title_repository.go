package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrTitleNotFound is returned when a title lookup fails.
var ErrTitleNotFound = errors.New("title not found")

// TitleRepo provides CRUD access to the titles table and read access to
// championship history.  Crowning, vacating and status transitions go
// through the lifecycle service.
type TitleRepo struct {
	db *sql.DB
}

// NewTitleRepo constructs a TitleRepo with the given DB handle.
func NewTitleRepo(db *sql.DB) *TitleRepo {
	return &TitleRepo{db: db}
}

const titleCols = `id, name, status, deleted_at, created_at, updated_at`

func scanTitle(row interface {
	Scan(dest ...any) error
}) (*model.Title, error) {
	var (
		t         model.Title
		deletedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Name, &t.Status, &deletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		at := deletedAt.Time
		t.DeletedAt = &at
	}
	return &t, nil
}

// Create inserts a new title.  New titles start UNACTIVATED and cannot be
// won until an activate transition succeeds.
func (r *TitleRepo) Create(ctx context.Context, t *model.Title) error {
	const q = `INSERT INTO titles (name, status) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, model.TitleStatusUnactivated)
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
	*t = *created
	return nil
}

// GetByID retrieves a live title by ID.
func (r *TitleRepo) GetByID(ctx context.Context, id uint64) (*model.Title, error) {
	q := `SELECT ` + titleCols + ` FROM titles WHERE id = ? AND deleted_at IS NULL`
	t, err := scanTitle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all live titles, optionally filtered by status.
func (r *TitleRepo) List(ctx context.Context, status *model.TitleStatus) ([]*model.Title, error) {
	q := `SELECT ` + titleCols + ` FROM titles WHERE deleted_at IS NULL`
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

	var out []*model.Title
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update renames a live title.
func (r *TitleRepo) Update(ctx context.Context, t *model.Title) error {
	const q = `UPDATE titles SET name = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTitleNotFound
	}
	return nil
}

// SoftDelete hides a title.  A title that still has a current champion
// cannot be deleted; vacate or retire it first.  ErrConflict is returned
// in that case.
func (r *TitleRepo) SoftDelete(ctx context.Context, id uint64) error {
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
	var held int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM title_championships WHERE title_id = ? AND lost_at IS NULL`, id).Scan(&held)
	if err != nil {
		return err
	}
	if held > 0 {
		err = ErrConflict
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE titles SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrTitleNotFound
		return err
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *TitleRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE titles SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTitleNotFound
	}
	return nil
}

// CurrentChampionship returns the open reign for the title, or nil when
// the title is vacant.
func (r *TitleRepo) CurrentChampionship(ctx context.Context, titleID uint64) (*model.TitleChampionship, error) {
	q := `SELECT ` + championshipCols + ` FROM title_championships
	      WHERE title_id = ? AND lost_at IS NULL LIMIT 1`
	c, err := scanChampionship(r.db.QueryRowContext(ctx, q, titleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ChampionshipHistory returns every reign of the title, newest first.
func (r *TitleRepo) ChampionshipHistory(ctx context.Context, titleID uint64) ([]model.TitleChampionship, error) {
	q := `SELECT ` + championshipCols + ` FROM title_championships
	      WHERE title_id = ?
	      ORDER BY won_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TitleChampionship
	for rows.Next() {
		c, err := scanChampionship(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
