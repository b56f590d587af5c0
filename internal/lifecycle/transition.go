package lifecycle

import "github.com/iliyamo/wrestling-roster/internal/model"

// Transition names one lifecycle operation.  The same names are used in
// route paths, queue events and error messages.
type Transition string

const (
	TransitionEmploy      Transition = "employ"
	TransitionRelease     Transition = "release"
	TransitionSuspend     Transition = "suspend"
	TransitionReinstate   Transition = "reinstate"
	TransitionInjure      Transition = "injure"
	TransitionClearInjury Transition = "clear-injury"
	TransitionRetire      Transition = "retire"
	TransitionUnretire    Transition = "unretire"

	// Title-only transitions.
	TransitionActivate   Transition = "activate"
	TransitionDeactivate Transition = "deactivate"
)

// Family groups entity types that share one validation table.  Individual
// roster members (wrestlers, referees, managers) carry the full period set;
// tag teams are composite and have no injury ledger; titles use activation
// periods and their own status enum.
type Family string

const (
	FamilyIndividual Family = "INDIVIDUAL"
	FamilyTagTeam    Family = "TAG_TEAM"
	FamilyTitle      Family = "TITLE"
)

// FamilyOf maps an entity type to its validation family.
func FamilyOf(t model.EntityType) Family {
	switch t {
	case model.EntityTagTeam:
		return FamilyTagTeam
	case model.EntityTitle:
		return FamilyTitle
	default:
		return FamilyIndividual
	}
}

// rosterRules lists the legal source statuses per (family, transition).  A
// transition absent from a family's map is illegal for that family from
// every status; this is how injuries are excluded for tag teams.
var rosterRules = map[Family]map[Transition][]model.Status{
	FamilyIndividual: {
		TransitionEmploy:      {model.StatusUnemployed, model.StatusReleased, model.StatusFutureEmployed},
		TransitionRelease:     {model.StatusEmployed, model.StatusSuspended},
		TransitionSuspend:     {model.StatusEmployed},
		TransitionReinstate:   {model.StatusSuspended},
		TransitionInjure:      {model.StatusEmployed},
		TransitionClearInjury: {model.StatusInjured},
		TransitionRetire:      {model.StatusEmployed, model.StatusSuspended, model.StatusReleased},
		TransitionUnretire:    {model.StatusRetired},
	},
	FamilyTagTeam: {
		TransitionEmploy:    {model.StatusUnemployed, model.StatusReleased, model.StatusFutureEmployed},
		TransitionRelease:   {model.StatusEmployed, model.StatusSuspended},
		TransitionSuspend:   {model.StatusEmployed},
		TransitionReinstate: {model.StatusSuspended},
		TransitionRetire:    {model.StatusEmployed, model.StatusSuspended, model.StatusReleased},
		TransitionUnretire:  {model.StatusRetired},
	},
}

// titleRules lists the legal source statuses per title transition.
var titleRules = map[Transition][]model.TitleStatus{
	TransitionActivate:   {model.TitleStatusUnactivated, model.TitleStatusInactive},
	TransitionDeactivate: {model.TitleStatusActive},
	TransitionRetire:     {model.TitleStatusActive, model.TitleStatusInactive},
	TransitionUnretire:   {model.TitleStatusRetired},
}

// ValidateRoster checks that tr is legal for a roster entity of the given
// family in status cur.  On violation it returns a *TransitionError whose
// Entity field is filled in by the caller.
func ValidateRoster(ref model.EntityRef, tr Transition, cur model.Status) error {
	for _, s := range rosterRules[FamilyOf(ref.Type)][tr] {
		if s == cur {
			return nil
		}
	}
	return &TransitionError{Transition: tr, Entity: ref, Status: cur.String()}
}

// ValidateTitle checks that tr is legal for a title in status cur.
func ValidateTitle(titleID uint64, tr Transition, cur model.TitleStatus) error {
	for _, s := range titleRules[tr] {
		if s == cur {
			return nil
		}
	}
	return &TransitionError{Transition: tr, Entity: model.TitleRef(titleID), Status: cur.String()}
}
