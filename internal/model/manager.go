package model

import "time"

// Manager represents a row of the `managers` table.  Managers follow the
// same employment lifecycle as wrestlers and referees.
type Manager struct {
	ID        uint64     // managers.id
	FirstName string     // managers.first_name
	LastName  string     // managers.last_name
	Status    Status     // managers.status (cached projection)
	DeletedAt *time.Time // managers.deleted_at (nullable)
	CreatedAt time.Time  // managers.created_at
	UpdatedAt time.Time  // managers.updated_at
}

// Ref returns the tagged reference for this manager.
func (m Manager) Ref() EntityRef { return ManagerRef(m.ID) }
