package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/model"
)

// txLedger implements lifecycle.Ledger over one open transaction.  Every
// query runs on the *sql.Tx created by UnitOfWork.Execute; the ledger is
// discarded when the transaction commits or rolls back.
type txLedger struct {
	tx *sql.Tx
}

var _ lifecycle.Ledger = (*txLedger)(nil)

// entityTable maps a reference type to the table that stores the entity
// row.  The periods and membership tables are polymorphic; only locking
// and status updates need the concrete table.
func entityTable(t model.EntityType) (string, error) {
	switch t {
	case model.EntityWrestler:
		return "wrestlers", nil
	case model.EntityReferee:
		return "referees", nil
	case model.EntityManager:
		return "managers", nil
	case model.EntityTagTeam:
		return "tag_teams", nil
	case model.EntityTitle:
		return "titles", nil
	default:
		return "", fmt.Errorf("unknown entity type %q", t)
	}
}

// LockEntity locks the entity row for the rest of the transaction.  Two
// concurrent transitions against the same entity serialize here: the
// second blocks on the row lock and then re-reads committed state.
func (l *txLedger) LockEntity(ctx context.Context, ref model.EntityRef) error {
	table, err := entityTable(ref.Type)
	if err != nil {
		return err
	}
	q := `SELECT id FROM ` + table + ` WHERE id = ? AND deleted_at IS NULL FOR UPDATE`
	var id uint64
	if err := l.tx.QueryRowContext(ctx, q, ref.ID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lifecycle.ErrNotFound
		}
		return err
	}
	return nil
}

// PeriodHistory returns every period row of the entity, oldest first.
func (l *txLedger) PeriodHistory(ctx context.Context, ref model.EntityRef) ([]model.Period, error) {
	const q = `SELECT id, entity_type, entity_id, kind, started_at, ended_at, created_at
	           FROM periods
	           WHERE entity_type = ? AND entity_id = ?
	           ORDER BY started_at, id`
	rows, err := l.tx.QueryContext(ctx, q, ref.Type, ref.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Period
	for rows.Next() {
		var (
			p       model.Period
			endedAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &p.EntityType, &p.EntityID, &p.Kind, &p.StartedAt, &endedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			t := endedAt.Time
			p.EndedAt = &t
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *txLedger) CreatePeriod(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) error {
	const q = `INSERT INTO periods (entity_type, entity_id, kind, started_at) VALUES (?, ?, ?, ?)`
	_, err := l.tx.ExecContext(ctx, q, ref.Type, ref.ID, kind, startedAt)
	return err
}

func (l *txLedger) EndOpenPeriod(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, endedAt time.Time) (bool, error) {
	const q = `UPDATE periods SET ended_at = ?
	           WHERE entity_type = ? AND entity_id = ? AND kind = ? AND ended_at IS NULL`
	res, err := l.tx.ExecContext(ctx, q, endedAt, ref.Type, ref.ID, kind)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *txLedger) MoveOpenPeriodStart(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) (bool, error) {
	const q = `UPDATE periods SET started_at = ?
	           WHERE entity_type = ? AND entity_id = ? AND kind = ? AND ended_at IS NULL`
	res, err := l.tx.ExecContext(ctx, q, startedAt, ref.Type, ref.ID, kind)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateStatus writes the cached status column on the entity's own table.
func (l *txLedger) UpdateStatus(ctx context.Context, ref model.EntityRef, status model.Status) error {
	table, err := entityTable(ref.Type)
	if err != nil {
		return err
	}
	q := `UPDATE ` + table + ` SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err = l.tx.ExecContext(ctx, q, status, ref.ID)
	return err
}

func (l *txLedger) UpdateTitleStatus(ctx context.Context, titleID uint64, status model.TitleStatus) error {
	const q = `UPDATE titles SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := l.tx.ExecContext(ctx, q, status, titleID)
	return err
}

const championshipCols = `id, title_id, champion_type, champion_id, won_at, lost_at, created_at`

func scanChampionship(row interface {
	Scan(dest ...any) error
}) (model.TitleChampionship, error) {
	var (
		c      model.TitleChampionship
		lostAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.TitleID, &c.ChampionType, &c.ChampionID, &c.WonAt, &lostAt, &c.CreatedAt)
	if err != nil {
		return c, err
	}
	if lostAt.Valid {
		t := lostAt.Time
		c.LostAt = &t
	}
	return c, nil
}

func (l *txLedger) OpenChampionshipsByChampion(ctx context.Context, champion model.EntityRef) ([]model.TitleChampionship, error) {
	q := `SELECT ` + championshipCols + ` FROM title_championships
	      WHERE champion_type = ? AND champion_id = ? AND lost_at IS NULL`
	rows, err := l.tx.QueryContext(ctx, q, champion.Type, champion.ID)
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

func (l *txLedger) OpenChampionshipByTitle(ctx context.Context, titleID uint64) (*model.TitleChampionship, error) {
	q := `SELECT ` + championshipCols + ` FROM title_championships
	      WHERE title_id = ? AND lost_at IS NULL LIMIT 1`
	c, err := scanChampionship(l.tx.QueryRowContext(ctx, q, titleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (l *txLedger) CreateChampionship(ctx context.Context, titleID uint64, champion model.EntityRef, wonAt time.Time) (*model.TitleChampionship, error) {
	const q = `INSERT INTO title_championships (title_id, champion_type, champion_id, won_at) VALUES (?, ?, ?, ?)`
	res, err := l.tx.ExecContext(ctx, q, titleID, champion.Type, champion.ID, wonAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.TitleChampionship{
		ID:           uint64(id),
		TitleID:      titleID,
		ChampionType: champion.Type,
		ChampionID:   champion.ID,
		WonAt:        wonAt,
	}, nil
}

func (l *txLedger) EndChampionship(ctx context.Context, championshipID uint64, lostAt time.Time) error {
	const q = `UPDATE title_championships SET lost_at = ? WHERE id = ? AND lost_at IS NULL`
	res, err := l.tx.ExecContext(ctx, q, lostAt, championshipID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

const partnerCols = `id, tag_team_id, wrestler_id, joined_at, left_at, created_at`

func scanPartner(row interface {
	Scan(dest ...any) error
}) (model.TagTeamPartner, error) {
	var (
		p      model.TagTeamPartner
		leftAt sql.NullTime
	)
	err := row.Scan(&p.ID, &p.TagTeamID, &p.WrestlerID, &p.JoinedAt, &leftAt, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	if leftAt.Valid {
		t := leftAt.Time
		p.LeftAt = &t
	}
	return p, nil
}

func (l *txLedger) OpenTagTeamMembershipsByWrestler(ctx context.Context, wrestlerID uint64) ([]model.TagTeamPartner, error) {
	q := `SELECT ` + partnerCols + ` FROM tag_team_partners WHERE wrestler_id = ? AND left_at IS NULL`
	rows, err := l.tx.QueryContext(ctx, q, wrestlerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TagTeamPartner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (l *txLedger) OpenTagTeamMembership(ctx context.Context, tagTeamID, wrestlerID uint64) (*model.TagTeamPartner, error) {
	q := `SELECT ` + partnerCols + ` FROM tag_team_partners
	      WHERE tag_team_id = ? AND wrestler_id = ? AND left_at IS NULL LIMIT 1`
	p, err := scanPartner(l.tx.QueryRowContext(ctx, q, tagTeamID, wrestlerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (l *txLedger) AttachTagTeamPartner(ctx context.Context, tagTeamID, wrestlerID uint64, joinedAt time.Time) (*model.TagTeamPartner, error) {
	const q = `INSERT INTO tag_team_partners (tag_team_id, wrestler_id, joined_at) VALUES (?, ?, ?)`
	res, err := l.tx.ExecContext(ctx, q, tagTeamID, wrestlerID, joinedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.TagTeamPartner{
		ID:         uint64(id),
		TagTeamID:  tagTeamID,
		WrestlerID: wrestlerID,
		JoinedAt:   joinedAt,
	}, nil
}

func (l *txLedger) EndTagTeamMembership(ctx context.Context, membershipID uint64, leftAt time.Time) error {
	const q = `UPDATE tag_team_partners SET left_at = ? WHERE id = ? AND left_at IS NULL`
	res, err := l.tx.ExecContext(ctx, q, leftAt, membershipID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

const stableMemberCols = `id, stable_id, member_type, member_id, joined_at, left_at, created_at`

func scanStableMember(row interface {
	Scan(dest ...any) error
}) (model.StableMember, error) {
	var (
		m      model.StableMember
		leftAt sql.NullTime
	)
	err := row.Scan(&m.ID, &m.StableID, &m.MemberType, &m.MemberID, &m.JoinedAt, &leftAt, &m.CreatedAt)
	if err != nil {
		return m, err
	}
	if leftAt.Valid {
		t := leftAt.Time
		m.LeftAt = &t
	}
	return m, nil
}

func (l *txLedger) OpenStableMembership(ctx context.Context, member model.EntityRef) (*model.StableMember, error) {
	q := `SELECT ` + stableMemberCols + ` FROM stable_members
	      WHERE member_type = ? AND member_id = ? AND left_at IS NULL LIMIT 1`
	m, err := scanStableMember(l.tx.QueryRowContext(ctx, q, member.Type, member.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (l *txLedger) AttachStableMember(ctx context.Context, stableID uint64, member model.EntityRef, joinedAt time.Time) (*model.StableMember, error) {
	const q = `INSERT INTO stable_members (stable_id, member_type, member_id, joined_at) VALUES (?, ?, ?, ?)`
	res, err := l.tx.ExecContext(ctx, q, stableID, member.Type, member.ID, joinedAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.StableMember{
		ID:         uint64(id),
		StableID:   stableID,
		MemberType: member.Type,
		MemberID:   member.ID,
		JoinedAt:   joinedAt,
	}, nil
}

func (l *txLedger) EndStableMembership(ctx context.Context, membershipID uint64, leftAt time.Time) error {
	const q = `UPDATE stable_members SET left_at = ? WHERE id = ? AND left_at IS NULL`
	res, err := l.tx.ExecContext(ctx, q, leftAt, membershipID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}
