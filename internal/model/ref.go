package model

import "fmt"

// EntityType discriminates which roster table an EntityRef points at.
type EntityType string

const (
	EntityWrestler EntityType = "WRESTLER"
	EntityReferee  EntityType = "REFEREE"
	EntityManager  EntityType = "MANAGER"
	EntityTagTeam  EntityType = "TAG_TEAM"
	EntityTitle    EntityType = "TITLE"
)

// IsValid reports whether the entity type is a known value.
func (t EntityType) IsValid() bool {
	switch t {
	case EntityWrestler, EntityReferee, EntityManager, EntityTagTeam, EntityTitle:
		return true
	default:
		return false
	}
}

// EntityRef is a tagged reference to a single roster entity or title.  The
// periods table and the polymorphic championship/stable rows store the pair
// (entity_type, entity_id); readers resolve the concrete row with a type
// switch on Type.
type EntityRef struct {
	Type EntityType // discriminant column value
	ID   uint64     // primary key in the table named by Type
}

// String renders the reference as TYPE#ID for log and error messages.
func (r EntityRef) String() string { return fmt.Sprintf("%s#%d", r.Type, r.ID) }

// WrestlerRef builds a reference to a wrestler row.
func WrestlerRef(id uint64) EntityRef { return EntityRef{Type: EntityWrestler, ID: id} }

// RefereeRef builds a reference to a referee row.
func RefereeRef(id uint64) EntityRef { return EntityRef{Type: EntityReferee, ID: id} }

// ManagerRef builds a reference to a manager row.
func ManagerRef(id uint64) EntityRef { return EntityRef{Type: EntityManager, ID: id} }

// TagTeamRef builds a reference to a tag team row.
func TagTeamRef(id uint64) EntityRef { return EntityRef{Type: EntityTagTeam, ID: id} }

// TitleRef builds a reference to a title row.
func TitleRef(id uint64) EntityRef { return EntityRef{Type: EntityTitle, ID: id} }

// CanHoldTitle reports whether this reference may appear as the champion of
// a championship row.  Only wrestlers and tag teams win titles.
func (r EntityRef) CanHoldTitle() bool {
	return r.Type == EntityWrestler || r.Type == EntityTagTeam
}

// CanJoinStable reports whether this reference may appear as a stable
// member.  Stables contain wrestlers and tag teams.
func (r EntityRef) CanJoinStable() bool {
	return r.Type == EntityWrestler || r.Type == EntityTagTeam
}
