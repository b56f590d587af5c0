package model

import "time"

// Wrestler represents a row of the `wrestlers` table.  The Status column is
// a cached projection of the wrestler's period history and is resynced by
// the lifecycle layer after every transition.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – ring name, unique per promotion.
//	Height    – billed height in inches.
//	Weight    – billed weight in pounds.
//	Hometown  – billed hometown.
//	Signature – signature move (optional).
//	Status    – cached lifecycle status.
//	DeletedAt – soft-deletion timestamp (nil when the row is live).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type Wrestler struct {
	ID        uint64     // wrestlers.id
	Name      string     // wrestlers.name
	Height    uint16     // wrestlers.height_inches
	Weight    uint16     // wrestlers.weight_lbs
	Hometown  string     // wrestlers.hometown
	Signature *string    // wrestlers.signature_move (nullable)
	Status    Status     // wrestlers.status
	DeletedAt *time.Time // wrestlers.deleted_at (nullable)
	CreatedAt time.Time  // wrestlers.created_at
	UpdatedAt time.Time  // wrestlers.updated_at
}

// Ref returns the tagged reference for this wrestler.
func (w Wrestler) Ref() EntityRef { return WrestlerRef(w.ID) }
