package model

// Status is the cached lifecycle status of a roster entity (wrestler,
// referee, manager or tag team).  The value stored on the entity row must
// always equal what the lifecycle projector derives from the entity's
// period history; it is never written outside a transition.
type Status string

const (
	StatusUnemployed     Status = "UNEMPLOYED"      // no employment period exists
	StatusFutureEmployed Status = "FUTURE_EMPLOYED" // employment starts in the future
	StatusEmployed       Status = "EMPLOYED"        // open employment, no open suspension/injury
	StatusSuspended      Status = "SUSPENDED"       // open employment with an open suspension
	StatusInjured        Status = "INJURED"         // open employment with an open injury
	StatusReleased       Status = "RELEASED"        // most recent employment is closed
	StatusRetired        Status = "RETIRED"         // open retirement period
)

// String returns the string representation of the status.
func (s Status) String() string { return string(s) }

// IsValid reports whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnemployed, StatusFutureEmployed, StatusEmployed,
		StatusSuspended, StatusInjured, StatusReleased, StatusRetired:
		return true
	default:
		return false
	}
}

// TitleStatus is the cached lifecycle status of a title.  Titles move
// through activation periods instead of employment periods.
type TitleStatus string

const (
	TitleStatusUnactivated TitleStatus = "UNACTIVATED" // never activated
	TitleStatusActive      TitleStatus = "ACTIVE"      // open activation period
	TitleStatusInactive    TitleStatus = "INACTIVE"    // most recent activation closed
	TitleStatusRetired     TitleStatus = "RETIRED"     // open retirement period
)

// String returns the string representation of the title status.
func (s TitleStatus) String() string { return string(s) }

// IsValid reports whether the title status is a known value.
func (s TitleStatus) IsValid() bool {
	switch s {
	case TitleStatusUnactivated, TitleStatusActive, TitleStatusInactive, TitleStatusRetired:
		return true
	default:
		return false
	}
}
