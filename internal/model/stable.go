package model

import "time"

// Stable represents a row of the `stables` table.  Stables are loose
// factions: they group wrestlers and tag teams but carry no employment
// lifecycle of their own.
type Stable struct {
	ID        uint64     // stables.id
	Name      string     // stables.name
	DeletedAt *time.Time // stables.deleted_at (nullable)
	CreatedAt time.Time  // stables.created_at
	UpdatedAt time.Time  // stables.updated_at
}

// StableMember is a row of the `stable_members` join table.  The member is
// polymorphic: MemberType/MemberID reference either a wrestler or a tag
// team.  LeftAt is nil while the membership is current.
//
// An entity may belong to at most one stable at a time.  The storage layer
// does not enforce this; the attach path in the repository rejects a second
// open membership with ErrConflict.
type StableMember struct {
	ID         uint64     // stable_members.id
	StableID   uint64     // stable_members.stable_id
	MemberType EntityType // stable_members.member_type (WRESTLER or TAG_TEAM)
	MemberID   uint64     // stable_members.member_id
	JoinedAt   time.Time  // stable_members.joined_at
	LeftAt     *time.Time // stable_members.left_at (nullable)
	CreatedAt  time.Time  // stable_members.created_at
}

// Current reports whether the membership is still open.
func (m StableMember) Current() bool { return m.LeftAt == nil }

// Member returns the tagged reference of the stable member.
func (m StableMember) Member() EntityRef { return EntityRef{Type: m.MemberType, ID: m.MemberID} }
