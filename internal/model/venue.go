package model

import "time"

// Venue represents a row of the `venues` table.  Venues host events and
// have no lifecycle beyond soft deletion.
type Venue struct {
	ID        uint64     // venues.id
	Name      string     // venues.name
	Street    string     // venues.street_address
	City      string     // venues.city
	State     string     // venues.state
	Zipcode   string     // venues.zipcode
	DeletedAt *time.Time // venues.deleted_at (nullable)
	CreatedAt time.Time  // venues.created_at
	UpdatedAt time.Time  // venues.updated_at
}
