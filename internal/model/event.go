package model

import "time"

// Event represents a row of the `events` table.  An event is a scheduled
// show at a venue.  Date and VenueID are optional until the event is
// finalised.
type Event struct {
	ID        uint64     // events.id
	Name      string     // events.name
	Date      *time.Time // events.date (nullable until scheduled)
	VenueID   *uint64    // events.venue_id (nullable)
	Preview   *string    // events.preview (nullable promo text)
	DeletedAt *time.Time // events.deleted_at (nullable)
	CreatedAt time.Time  // events.created_at
	UpdatedAt time.Time  // events.updated_at
}
