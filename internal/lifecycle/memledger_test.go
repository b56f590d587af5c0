package lifecycle

import (
	"context"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// memLedger is an in-memory Ledger used by the tests in this package.  It
// mirrors the MySQL implementation's behaviour closely enough to exercise
// transition actions and cascades without a database.
type memLedger struct {
	entities      map[model.EntityRef]bool
	periods       []model.Period
	champs        []model.TitleChampionship
	partners      []model.TagTeamPartner
	stables       []model.StableMember
	statuses      map[model.EntityRef]model.Status
	titleStatuses map[uint64]model.TitleStatus
	nextID        uint64
}

func newMemLedger() *memLedger {
	return &memLedger{
		entities:      make(map[model.EntityRef]bool),
		statuses:      make(map[model.EntityRef]model.Status),
		titleStatuses: make(map[uint64]model.TitleStatus),
	}
}

func (m *memLedger) addEntity(ref model.EntityRef) {
	m.entities[ref] = true
	if ref.Type == model.EntityTitle {
		m.titleStatuses[ref.ID] = model.TitleStatusUnactivated
	} else {
		m.statuses[ref] = model.StatusUnemployed
	}
}

func (m *memLedger) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memLedger) LockEntity(_ context.Context, ref model.EntityRef) error {
	if !m.entities[ref] {
		return ErrNotFound
	}
	return nil
}

func (m *memLedger) PeriodHistory(_ context.Context, ref model.EntityRef) ([]model.Period, error) {
	var out []model.Period
	for _, p := range m.periods {
		if p.EntityType == ref.Type && p.EntityID == ref.ID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memLedger) CreatePeriod(_ context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) error {
	m.periods = append(m.periods, model.Period{
		ID:         m.id(),
		EntityType: ref.Type,
		EntityID:   ref.ID,
		Kind:       kind,
		StartedAt:  startedAt,
	})
	return nil
}

func (m *memLedger) EndOpenPeriod(_ context.Context, ref model.EntityRef, kind model.PeriodKind, endedAt time.Time) (bool, error) {
	for i := range m.periods {
		p := &m.periods[i]
		if p.EntityType == ref.Type && p.EntityID == ref.ID && p.Kind == kind && p.EndedAt == nil {
			t := endedAt
			p.EndedAt = &t
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) MoveOpenPeriodStart(_ context.Context, ref model.EntityRef, kind model.PeriodKind, startedAt time.Time) (bool, error) {
	for i := range m.periods {
		p := &m.periods[i]
		if p.EntityType == ref.Type && p.EntityID == ref.ID && p.Kind == kind && p.EndedAt == nil {
			p.StartedAt = startedAt
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedger) UpdateStatus(_ context.Context, ref model.EntityRef, status model.Status) error {
	m.statuses[ref] = status
	return nil
}

func (m *memLedger) UpdateTitleStatus(_ context.Context, titleID uint64, status model.TitleStatus) error {
	m.titleStatuses[titleID] = status
	return nil
}

func (m *memLedger) OpenChampionshipsByChampion(_ context.Context, champion model.EntityRef) ([]model.TitleChampionship, error) {
	var out []model.TitleChampionship
	for _, c := range m.champs {
		if c.LostAt == nil && c.ChampionType == champion.Type && c.ChampionID == champion.ID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memLedger) OpenChampionshipByTitle(_ context.Context, titleID uint64) (*model.TitleChampionship, error) {
	for i := range m.champs {
		if m.champs[i].TitleID == titleID && m.champs[i].LostAt == nil {
			c := m.champs[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memLedger) CreateChampionship(_ context.Context, titleID uint64, champion model.EntityRef, wonAt time.Time) (*model.TitleChampionship, error) {
	c := model.TitleChampionship{
		ID:           m.id(),
		TitleID:      titleID,
		ChampionType: champion.Type,
		ChampionID:   champion.ID,
		WonAt:        wonAt,
	}
	m.champs = append(m.champs, c)
	return &c, nil
}

func (m *memLedger) EndChampionship(_ context.Context, championshipID uint64, lostAt time.Time) error {
	for i := range m.champs {
		if m.champs[i].ID == championshipID && m.champs[i].LostAt == nil {
			t := lostAt
			m.champs[i].LostAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (m *memLedger) OpenTagTeamMembershipsByWrestler(_ context.Context, wrestlerID uint64) ([]model.TagTeamPartner, error) {
	var out []model.TagTeamPartner
	for _, p := range m.partners {
		if p.WrestlerID == wrestlerID && p.LeftAt == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memLedger) OpenTagTeamMembership(_ context.Context, tagTeamID, wrestlerID uint64) (*model.TagTeamPartner, error) {
	for i := range m.partners {
		p := m.partners[i]
		if p.TagTeamID == tagTeamID && p.WrestlerID == wrestlerID && p.LeftAt == nil {
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memLedger) AttachTagTeamPartner(_ context.Context, tagTeamID, wrestlerID uint64, joinedAt time.Time) (*model.TagTeamPartner, error) {
	p := model.TagTeamPartner{ID: m.id(), TagTeamID: tagTeamID, WrestlerID: wrestlerID, JoinedAt: joinedAt}
	m.partners = append(m.partners, p)
	return &p, nil
}

func (m *memLedger) EndTagTeamMembership(_ context.Context, membershipID uint64, leftAt time.Time) error {
	for i := range m.partners {
		if m.partners[i].ID == membershipID && m.partners[i].LeftAt == nil {
			t := leftAt
			m.partners[i].LeftAt = &t
			return nil
		}
	}
	return ErrNotFound
}

func (m *memLedger) OpenStableMembership(_ context.Context, member model.EntityRef) (*model.StableMember, error) {
	for i := range m.stables {
		s := m.stables[i]
		if s.MemberType == member.Type && s.MemberID == member.ID && s.LeftAt == nil {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memLedger) AttachStableMember(_ context.Context, stableID uint64, member model.EntityRef, joinedAt time.Time) (*model.StableMember, error) {
	s := model.StableMember{ID: m.id(), StableID: stableID, MemberType: member.Type, MemberID: member.ID, JoinedAt: joinedAt}
	m.stables = append(m.stables, s)
	return &s, nil
}

func (m *memLedger) EndStableMembership(_ context.Context, membershipID uint64, leftAt time.Time) error {
	for i := range m.stables {
		if m.stables[i].ID == membershipID && m.stables[i].LeftAt == nil {
			t := leftAt
			m.stables[i].LeftAt = &t
			return nil
		}
	}
	return ErrNotFound
}

// memUow snapshots the ledger before running fn and restores the snapshot
// when fn fails, mimicking transaction rollback.
type memUow struct {
	ledger *memLedger
}

func (u *memUow) Execute(_ context.Context, fn func(Ledger) error) error {
	snapshot := *u.ledger
	snapshot.periods = append([]model.Period(nil), u.ledger.periods...)
	snapshot.champs = append([]model.TitleChampionship(nil), u.ledger.champs...)
	snapshot.partners = append([]model.TagTeamPartner(nil), u.ledger.partners...)
	snapshot.stables = append([]model.StableMember(nil), u.ledger.stables...)
	snapshot.statuses = make(map[model.EntityRef]model.Status, len(u.ledger.statuses))
	for k, v := range u.ledger.statuses {
		snapshot.statuses[k] = v
	}
	snapshot.titleStatuses = make(map[uint64]model.TitleStatus, len(u.ledger.titleStatuses))
	for k, v := range u.ledger.titleStatuses {
		snapshot.titleStatuses[k] = v
	}
	if err := fn(u.ledger); err != nil {
		*u.ledger = snapshot
		return err
	}
	return nil
}

// fixedClock freezes now for deterministic projections.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

// newTestService wires a Service over a fresh in-memory ledger with now
// frozen at the given instant.
func newTestService(now time.Time) (*Service, *memLedger) {
	ledger := newMemLedger()
	return NewService(&memUow{ledger: ledger}, fixedClock{t: now}), ledger
}
