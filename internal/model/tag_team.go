package model

import "time"

// MinimumTagTeamPartners is the number of currently-joined, currently
// employed wrestlers a tag team needs to be bookable.
const MinimumTagTeamPartners = 2

// TagTeam represents a row of the `tag_teams` table.  A tag team is a
// composite roster entity: it carries its own employment lifecycle and
// cached status, independent of its partners' individual statuses.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – team name, unique per promotion.
//	Signature – signature tandem move (optional).
//	Status    – cached lifecycle status of the team itself.
//	DeletedAt – soft-deletion timestamp (nil when the row is live).
//	CreatedAt – creation timestamp.
//	UpdatedAt – last update timestamp.
type TagTeam struct {
	ID        uint64     // tag_teams.id
	Name      string     // tag_teams.name
	Signature *string    // tag_teams.signature_move (nullable)
	Status    Status     // tag_teams.status
	DeletedAt *time.Time // tag_teams.deleted_at (nullable)
	CreatedAt time.Time  // tag_teams.created_at
	UpdatedAt time.Time  // tag_teams.updated_at
}

// Ref returns the tagged reference for this tag team.
func (t TagTeam) Ref() EntityRef { return TagTeamRef(t.ID) }

// TagTeamPartner is a row of the `tag_team_partners` join table linking a
// tag team to one of its wrestlers.  LeftAt is nil while the wrestler is a
// current partner.
type TagTeamPartner struct {
	ID         uint64     // tag_team_partners.id
	TagTeamID  uint64     // tag_team_partners.tag_team_id
	WrestlerID uint64     // tag_team_partners.wrestler_id
	JoinedAt   time.Time  // tag_team_partners.joined_at
	LeftAt     *time.Time // tag_team_partners.left_at (nullable)
	CreatedAt  time.Time  // tag_team_partners.created_at
}

// Current reports whether the partner has not left the team.
func (p TagTeamPartner) Current() bool { return p.LeftAt == nil }

// Bookable reports whether a tag team with the given number of current,
// employed partners is eligible to be booked.  Eligibility is derived at
// read time; it is never stored on the tag team row.
func Bookable(status Status, employedPartners int) bool {
	return status == StatusEmployed && employedPartners >= MinimumTagTeamPartners
}
