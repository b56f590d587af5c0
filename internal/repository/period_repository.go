package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// PeriodRepo reads period history outside of a transition transaction,
// for history endpoints.  All writes to the periods table happen through
// the transaction-scoped ledger.
type PeriodRepo struct {
	db *sql.DB
}

// NewPeriodRepo constructs a PeriodRepo with the given DB handle.
func NewPeriodRepo(db *sql.DB) *PeriodRepo {
	return &PeriodRepo{db: db}
}

// History returns every period row of the entity across all kinds, oldest
// first.
func (r *PeriodRepo) History(ctx context.Context, ref model.EntityRef) ([]model.Period, error) {
	const q = `SELECT id, entity_type, entity_id, kind, started_at, ended_at, created_at
	           FROM periods
	           WHERE entity_type = ? AND entity_id = ?
	           ORDER BY started_at, id`
	rows, err := r.db.QueryContext(ctx, q, ref.Type, ref.ID)
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
