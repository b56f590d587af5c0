package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// seedChampion employs the champion, activates the title and crowns them.
func seedChampion(t *testing.T, svc *Service, ledger *memLedger, titleID uint64, champion model.EntityRef) {
	t.Helper()
	ledger.addEntity(model.TitleRef(titleID))
	ledger.addEntity(champion)
	mustTransition(t, svc, champion, TransitionEmploy, datePtr(2023, time.June, 1))
	if _, err := svc.ActivateTitle(context.Background(), titleID, datePtr(2023, time.June, 1)); err != nil {
		t.Fatalf("activate title: %v", err)
	}
	if _, err := svc.CrownChampion(context.Background(), titleID, champion, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("crown champion: %v", err)
	}
}

func openChampionships(l *memLedger, titleID uint64) []model.TitleChampionship {
	var out []model.TitleChampionship
	for _, c := range l.champs {
		if c.TitleID == titleID && c.LostAt == nil {
			out = append(out, c)
		}
	}
	return out
}

func TestReleasingChampionVacatesTitle(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	x := model.WrestlerRef(1)
	seedChampion(t, svc, ledger, 10, x)

	if _, err := svc.Release(context.Background(), x, datePtr(2024, time.February, 1)); err != nil {
		t.Fatalf("release: %v", err)
	}
	if n := len(openChampionships(ledger, 10)); n != 0 {
		t.Fatalf("expected title vacant, found %d open championships", n)
	}
	reign := ledger.champs[0]
	if reign.LostAt == nil || !reign.LostAt.Equal(date(2024, time.February, 1)) {
		t.Fatalf("expected reign to end at the effective date, got %+v", reign.LostAt)
	}
	// The title itself stays active; only the reign ends.
	if ledger.titleStatuses[10] != model.TitleStatusActive {
		t.Fatalf("expected title to remain %s, got %s", model.TitleStatusActive, ledger.titleStatuses[10])
	}
}

func TestRetiringTagTeamChampionVacatesTitle(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	team := model.TagTeamRef(4)
	seedChampion(t, svc, ledger, 11, team)

	if _, err := svc.Retire(context.Background(), team, datePtr(2024, time.March, 1)); err != nil {
		t.Fatalf("retire: %v", err)
	}
	if n := len(openChampionships(ledger, 11)); n != 0 {
		t.Fatalf("expected title vacant, found %d open championships", n)
	}
}

func TestSuspensionAndInjuryDoNotCascade(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	x := model.WrestlerRef(1)
	seedChampion(t, svc, ledger, 10, x)
	team := model.TagTeamRef(2)
	ledger.addEntity(team)
	if _, err := svc.AddTagTeamPartner(context.Background(), team.ID, x.ID, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add partner: %v", err)
	}

	if _, err := svc.Suspend(context.Background(), x, datePtr(2024, time.February, 1)); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if n := len(openChampionships(ledger, 10)); n != 1 {
		t.Fatalf("expected suspended champion to keep the title")
	}
	mustTransition(t, svc, x, TransitionReinstate, datePtr(2024, time.March, 1))
	if _, err := svc.Injure(context.Background(), x, datePtr(2024, time.April, 1)); err != nil {
		t.Fatalf("injure: %v", err)
	}
	if n := len(openChampionships(ledger, 10)); n != 1 {
		t.Fatalf("expected injured champion to keep the title")
	}
	ms, _ := ledger.OpenTagTeamMembershipsByWrestler(context.Background(), x.ID)
	if len(ms) != 1 {
		t.Fatalf("expected injured partner to stay on the team")
	}
}

func TestReleasingPartnerDetachesFromTeamAndStable(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	w := model.WrestlerRef(1)
	team := model.TagTeamRef(2)
	ledger.addEntity(w)
	ledger.addEntity(team)
	mustTransition(t, svc, w, TransitionEmploy, datePtr(2023, time.June, 1))
	if _, err := svc.AddTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add partner: %v", err)
	}
	if _, err := svc.AddStableMember(context.Background(), 5, w, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add stable member: %v", err)
	}

	if _, err := svc.Release(context.Background(), w, datePtr(2024, time.February, 1)); err != nil {
		t.Fatalf("release: %v", err)
	}
	ms, _ := ledger.OpenTagTeamMembershipsByWrestler(context.Background(), w.ID)
	if len(ms) != 0 {
		t.Fatalf("expected released partner detached from team")
	}
	left := ledger.partners[0].LeftAt
	if left == nil || !left.Equal(date(2024, time.February, 1)) {
		t.Fatalf("expected membership closed at effective date, got %v", left)
	}
	stable, _ := ledger.OpenStableMembership(context.Background(), w)
	if stable != nil {
		t.Fatalf("expected released wrestler removed from stable")
	}
}

func TestRetiringTagTeamClosesItsStableMembership(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	team := model.TagTeamRef(2)
	ledger.addEntity(team)
	mustTransition(t, svc, team, TransitionEmploy, datePtr(2023, time.June, 1))
	if _, err := svc.AddStableMember(context.Background(), 5, team, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add stable member: %v", err)
	}

	if _, err := svc.Retire(context.Background(), team, datePtr(2024, time.March, 1)); err != nil {
		t.Fatalf("retire: %v", err)
	}
	membership, _ := ledger.OpenStableMembership(context.Background(), team)
	if membership != nil {
		t.Fatalf("expected retired tag team removed from stable")
	}
}
