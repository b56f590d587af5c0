package model

import "time"

// PeriodKind names the ledger a period row belongs to.  Each kind forms its
// own append-only ledger per entity: a row is opened by a transition,
// closed by a later transition, and never rewritten.
type PeriodKind string

const (
	PeriodEmployment PeriodKind = "EMPLOYMENT" // roster entities
	PeriodSuspension PeriodKind = "SUSPENSION" // roster entities
	PeriodInjury     PeriodKind = "INJURY"     // individual roster entities only
	PeriodRetirement PeriodKind = "RETIREMENT" // roster entities and titles
	PeriodActivation PeriodKind = "ACTIVATION" // titles only
)

// IsValid reports whether the kind is a known value.
func (k PeriodKind) IsValid() bool {
	switch k {
	case PeriodEmployment, PeriodSuspension, PeriodInjury, PeriodRetirement, PeriodActivation:
		return true
	default:
		return false
	}
}

// Period is one row of the periods table: a time-bounded interval of a
// single kind belonging to exactly one entity.
//
// Invariants (enforced by the lifecycle layer):
//   - at most one period of a given kind per entity has EndedAt == nil;
//   - StartedAt precedes EndedAt whenever both are set;
//   - periods of the same kind for the same entity do not overlap.
//
// Fields:
//
//	ID         – primary key identifier.
//	EntityType – discriminant of the owning entity table.
//	EntityID   – primary key of the owning entity.
//	Kind       – which ledger the row belongs to.
//	StartedAt  – start of the interval (required).
//	EndedAt    – end of the interval; nil means open/current.
//	CreatedAt  – creation timestamp.
type Period struct {
	ID         uint64     // periods.id
	EntityType EntityType // periods.entity_type
	EntityID   uint64     // periods.entity_id
	Kind       PeriodKind // periods.kind
	StartedAt  time.Time  // periods.started_at
	EndedAt    *time.Time // periods.ended_at (nullable)
	CreatedAt  time.Time  // periods.created_at
}

// Open reports whether the period has no end timestamp.
func (p Period) Open() bool { return p.EndedAt == nil }

// ActiveAt reports whether the instant t falls inside the period.  An open
// period is active for every t at or after its start.
func (p Period) ActiveAt(t time.Time) bool {
	if t.Before(p.StartedAt) {
		return false
	}
	return p.EndedAt == nil || t.Before(*p.EndedAt)
}
