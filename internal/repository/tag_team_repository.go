package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrTagTeamNotFound is returned when a tag team lookup fails.
var ErrTagTeamNotFound = errors.New("tag team not found")

// TagTeamRepo provides CRUD access to the tag_teams table and read access
// to the tag_team_partners join table.  Attaching and detaching partners
// goes through the lifecycle service; this repo only reads membership.
type TagTeamRepo struct {
	db *sql.DB
}

// NewTagTeamRepo constructs a TagTeamRepo with the given DB handle.
func NewTagTeamRepo(db *sql.DB) *TagTeamRepo {
	return &TagTeamRepo{db: db}
}

// Partner is a membership row joined with the wrestler it points at, for
// roster pages that show who is on the team and whether they are employed.
type Partner struct {
	Membership     model.TagTeamPartner
	WrestlerName   string
	WrestlerStatus model.Status
}

const tagTeamCols = `id, name, signature_move, status, deleted_at, created_at, updated_at`

func scanTagTeam(row interface {
	Scan(dest ...any) error
}) (*model.TagTeam, error) {
	var (
		t         model.TagTeam
		signature sql.NullString
		deletedAt sql.NullTime
	)
	err := row.Scan(&t.ID, &t.Name, &signature, &t.Status, &deletedAt, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if signature.Valid {
		t.Signature = &signature.String
	}
	if deletedAt.Valid {
		at := deletedAt.Time
		t.DeletedAt = &at
	}
	return &t, nil
}

// Create inserts a new tag team starting UNEMPLOYED with no partners.
func (r *TagTeamRepo) Create(ctx context.Context, t *model.TagTeam) error {
	const q = `INSERT INTO tag_teams (name, signature_move, status) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Signature, model.StatusUnemployed)
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

// GetByID retrieves a live tag team by ID.
func (r *TagTeamRepo) GetByID(ctx context.Context, id uint64) (*model.TagTeam, error) {
	q := `SELECT ` + tagTeamCols + ` FROM tag_teams WHERE id = ? AND deleted_at IS NULL`
	t, err := scanTagTeam(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all live tag teams, optionally filtered by status.
func (r *TagTeamRepo) List(ctx context.Context, status *model.Status) ([]*model.TagTeam, error) {
	q := `SELECT ` + tagTeamCols + ` FROM tag_teams WHERE deleted_at IS NULL`
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

	var out []*model.TagTeam
	for rows.Next() {
		t, err := scanTagTeam(rows)
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

// Update rewrites the profile fields of a live tag team.
func (r *TagTeamRepo) Update(ctx context.Context, t *model.TagTeam) error {
	const q = `UPDATE tag_teams SET name = ?, signature_move = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Signature, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagTeamNotFound
	}
	return nil
}

// SoftDelete hides a tag team; Restore brings the row back.
func (r *TagTeamRepo) SoftDelete(ctx context.Context, id uint64) error {
	const q = `UPDATE tag_teams SET deleted_at = UTC_TIMESTAMP(), updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagTeamNotFound
	}
	return nil
}

// Restore clears the soft-deletion marker.
func (r *TagTeamRepo) Restore(ctx context.Context, id uint64) error {
	const q = `UPDATE tag_teams SET deleted_at = NULL, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND deleted_at IS NOT NULL`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTagTeamNotFound
	}
	return nil
}

// CurrentPartners returns the team's open memberships joined with each
// wrestler's name and cached status, ordered by join date.
func (r *TagTeamRepo) CurrentPartners(ctx context.Context, tagTeamID uint64) ([]Partner, error) {
	const q = `SELECT p.id, p.tag_team_id, p.wrestler_id, p.joined_at, p.left_at, p.created_at,
	                  w.name, w.status
	           FROM tag_team_partners p
	           JOIN wrestlers w ON w.id = p.wrestler_id
	           WHERE p.tag_team_id = ? AND p.left_at IS NULL AND w.deleted_at IS NULL
	           ORDER BY p.joined_at, p.id`
	rows, err := r.db.QueryContext(ctx, q, tagTeamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Partner
	for rows.Next() {
		var (
			p      Partner
			leftAt sql.NullTime
		)
		err := rows.Scan(&p.Membership.ID, &p.Membership.TagTeamID, &p.Membership.WrestlerID,
			&p.Membership.JoinedAt, &leftAt, &p.Membership.CreatedAt,
			&p.WrestlerName, &p.WrestlerStatus)
		if err != nil {
			return nil, err
		}
		if leftAt.Valid {
			t := leftAt.Time
			p.Membership.LeftAt = &t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountEmployedPartners counts current partners whose own status is
// EMPLOYED.  Bookability is derived from this count at read time.
func (r *TagTeamRepo) CountEmployedPartners(ctx context.Context, tagTeamID uint64) (int, error) {
	const q = `SELECT COUNT(*)
	           FROM tag_team_partners p
	           JOIN wrestlers w ON w.id = p.wrestler_id
	           WHERE p.tag_team_id = ? AND p.left_at IS NULL
	             AND w.status = ? AND w.deleted_at IS NULL`
	var n int
	if err := r.db.QueryRowContext(ctx, q, tagTeamID, model.StatusEmployed).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
