package model

import "time"

// Referee represents a row of the `referees` table.  Referees share the
// full employment lifecycle of wrestlers but hold no titles and join no
// teams, so no cascades apply to them beyond status bookkeeping.
type Referee struct {
	ID        uint64     // referees.id
	FirstName string     // referees.first_name
	LastName  string     // referees.last_name
	Status    Status     // referees.status (cached projection)
	DeletedAt *time.Time // referees.deleted_at (nullable)
	CreatedAt time.Time  // referees.created_at
	UpdatedAt time.Time  // referees.updated_at
}

// Ref returns the tagged reference for this referee.
func (r Referee) Ref() EntityRef { return RefereeRef(r.ID) }
