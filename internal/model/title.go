package model

import "time"

// Title represents a row of the `titles` table.  Titles use activation
// periods instead of employment periods; the cached Status column is
// resynced from the activation/retirement ledgers after every transition.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – title name, unique per promotion.
//	Status    – cached lifecycle status.
//	DeletedAt – soft-deletion timestamp (nil when the row is live).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Title struct {
	ID        uint64     // titles.id
	Name      string     // titles.name
	Status    TitleStatus // titles.status
	DeletedAt *time.Time // titles.deleted_at (nullable)
	CreatedAt time.Time  // titles.created_at
	UpdatedAt time.Time  // titles.updated_at
}

// Ref returns the tagged reference for this title.
func (t Title) Ref() EntityRef { return TitleRef(t.ID) }

// TitleChampionship is a row of the `title_championships` table.  The
// champion is polymorphic: ChampionType/ChampionID reference either a
// wrestler or a tag team.  At most one row per title has LostAt == nil.
type TitleChampionship struct {
	ID           uint64     // title_championships.id
	TitleID      uint64     // title_championships.title_id
	ChampionType EntityType // title_championships.champion_type
	ChampionID   uint64     // title_championships.champion_id
	WonAt        time.Time  // title_championships.won_at
	LostAt       *time.Time // title_championships.lost_at (nullable)
	CreatedAt    time.Time  // title_championships.created_at
}

// Current reports whether the reign is still held.
func (c TitleChampionship) Current() bool { return c.LostAt == nil }

// Champion returns the tagged reference of the title holder.
func (c TitleChampionship) Champion() EntityRef {
	return EntityRef{Type: c.ChampionType, ID: c.ChampionID}
}

// ReignDays computes the length of the reign in whole days, from WonAt to
// LostAt, or to now for a reign still held.
func (c TitleChampionship) ReignDays(now time.Time) int {
	end := now
	if c.LostAt != nil {
		end = *c.LostAt
	}
	if end.Before(c.WonAt) {
		return 0
	}
	return int(end.Sub(c.WonAt).Hours() / 24)
}
