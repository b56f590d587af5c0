package lifecycle

import (
	"context"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// Ledger is the persistence boundary consumed by transition actions and
// the cascade engine.  Implementations scope every call to one transaction
// supplied by a UnitOfWork; the lifecycle package never sees *sql.Tx.
//
// LockEntity is the per-entity serialization point: two transitions against
// the same entity must not interleave their read-validate-write sequence.
// The MySQL implementation locks the entity row with SELECT ... FOR UPDATE.
type Ledger interface {
	// LockEntity acquires the entity's lock for the rest of the
	// transaction.  It returns ErrNotFound when no live row exists.
	LockEntity(ctx context.Context, ref model.EntityRef) error

	// PeriodHistory returns every period of the entity across all kinds,
	// ordered by start time.
	PeriodHistory(ctx context.Context, ref model.EntityRef) ([]model.Period, error)

	// CreatePeriod opens a new period of the given kind.
	CreatePeriod(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) error

	// EndOpenPeriod closes the open period of the given kind, if any, and
	// reports whether a row was closed.  Closing when nothing is open is a
	// no-op, not an error.
	EndOpenPeriod(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, endedAt time.Time) (bool, error)

	// MoveOpenPeriodStart rewrites the start of the open period of the
	// given kind and reports whether a row was updated.  Used when
	// re-employing a FutureEmployed entity with a new effective date.
	MoveOpenPeriodStart(ctx context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) (bool, error)

	// UpdateStatus persists the cached status column of a roster entity.
	UpdateStatus(ctx context.Context, ref model.EntityRef, status model.Status) error

	// UpdateTitleStatus persists the cached status column of a title.
	UpdateTitleStatus(ctx context.Context, titleID uint64, status model.TitleStatus) error

	// Championships.
	OpenChampionshipsByChampion(ctx context.Context, champion model.EntityRef) ([]model.TitleChampionship, error)
	OpenChampionshipByTitle(ctx context.Context, titleID uint64) (*model.TitleChampionship, error)
	CreateChampionship(ctx context.Context, titleID uint64, champion model.EntityRef, wonAt time.Time) (*model.TitleChampionship, error)
	EndChampionship(ctx context.Context, championshipID uint64, lostAt time.Time) error

	// Tag team memberships.
	OpenTagTeamMembershipsByWrestler(ctx context.Context, wrestlerID uint64) ([]model.TagTeamPartner, error)
	OpenTagTeamMembership(ctx context.Context, tagTeamID, wrestlerID uint64) (*model.TagTeamPartner, error)
	AttachTagTeamPartner(ctx context.Context, tagTeamID, wrestlerID uint64, joinedAt time.Time) (*model.TagTeamPartner, error)
	EndTagTeamMembership(ctx context.Context, membershipID uint64, leftAt time.Time) error

	// Stable memberships.
	OpenStableMembership(ctx context.Context, member model.EntityRef) (*model.StableMember, error)
	AttachStableMember(ctx context.Context, stableID uint64, member model.EntityRef, joinedAt time.Time) (*model.StableMember, error)
	EndStableMembership(ctx context.Context, membershipID uint64, leftAt time.Time) error
}

// UnitOfWork runs fn against a Ledger inside one atomic transaction.  When
// fn returns an error every write made through the ledger is rolled back;
// the entity is left exactly as it was before the transition began.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(Ledger) error) error
}
