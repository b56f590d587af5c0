package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

func TestTitleLifecycle(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	ledger.addEntity(model.TitleRef(1))

	status, err := svc.ActivateTitle(context.Background(), 1, datePtr(2024, time.January, 1))
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if status != model.TitleStatusActive {
		t.Fatalf("expected %s, got %s", model.TitleStatusActive, status)
	}

	status, err = svc.DeactivateTitle(context.Background(), 1, datePtr(2024, time.February, 1))
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if status != model.TitleStatusInactive {
		t.Fatalf("expected %s, got %s", model.TitleStatusInactive, status)
	}

	status, err = svc.RetireTitle(context.Background(), 1, datePtr(2024, time.March, 1))
	if err != nil {
		t.Fatalf("retire: %v", err)
	}
	if status != model.TitleStatusRetired {
		t.Fatalf("expected %s, got %s", model.TitleStatusRetired, status)
	}

	status, err = svc.UnretireTitle(context.Background(), 1, datePtr(2024, time.April, 1))
	if err != nil {
		t.Fatalf("unretire: %v", err)
	}
	if status != model.TitleStatusInactive {
		t.Fatalf("expected unretired title to come back %s, got %s", model.TitleStatusInactive, status)
	}
}

func TestActivateActiveTitleIsRejected(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	ledger.addEntity(model.TitleRef(1))
	if _, err := svc.ActivateTitle(context.Background(), 1, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("activate: %v", err)
	}
	_, err := svc.ActivateTitle(context.Background(), 1, datePtr(2024, time.February, 1))
	var trErr *TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
}

func TestBackdatedDeactivateBeforeActivationIsRejected(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	ledger.addEntity(model.TitleRef(1))
	if _, err := svc.ActivateTitle(context.Background(), 1, datePtr(2024, time.May, 1)); err != nil {
		t.Fatalf("activate: %v", err)
	}

	// An end date before the activation start would invert the period.
	_, err := svc.DeactivateTitle(context.Background(), 1, datePtr(2024, time.February, 1))
	if !errors.Is(err, ErrLedgerViolation) {
		t.Fatalf("expected ErrLedgerViolation, got %v", err)
	}
	if got := ledger.titleStatuses[1]; got != model.TitleStatusActive {
		t.Fatalf("expected title to stay %s, got %s", model.TitleStatusActive, got)
	}
}

func TestRetiringTitleEndsItsReign(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	x := model.WrestlerRef(1)
	seedChampion(t, svc, ledger, 10, x)

	if _, err := svc.RetireTitle(context.Background(), 10, datePtr(2024, time.March, 1)); err != nil {
		t.Fatalf("retire title: %v", err)
	}
	if n := len(openChampionships(ledger, 10)); n != 0 {
		t.Fatalf("expected retired title to have no open reign")
	}
	// Retiring the title leaves the champion's own employment alone.
	if got := ledger.statuses[x]; got != model.StatusEmployed {
		t.Fatalf("expected champion to stay %s, got %s", model.StatusEmployed, got)
	}
}

func TestCrownChampionEndsPreviousReign(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	x := model.WrestlerRef(1)
	seedChampion(t, svc, ledger, 10, x)
	y := model.WrestlerRef(2)
	ledger.addEntity(y)
	mustTransition(t, svc, y, TransitionEmploy, datePtr(2023, time.June, 1))

	champ, err := svc.CrownChampion(context.Background(), 10, y, datePtr(2024, time.April, 1))
	if err != nil {
		t.Fatalf("crown: %v", err)
	}
	if champ.Champion() != y || !champ.WonAt.Equal(date(2024, time.April, 1)) {
		t.Fatalf("unexpected new reign %+v", champ)
	}
	open := openChampionships(ledger, 10)
	if len(open) != 1 || open[0].Champion() != y {
		t.Fatalf("expected exactly one open reign held by %s", y)
	}
	prev := ledger.champs[0]
	if prev.LostAt == nil || !prev.LostAt.Equal(date(2024, time.April, 1)) {
		t.Fatalf("expected previous reign to end when the new one begins")
	}
}

func TestCrownChampionRequiresActiveTitleAndEmployedChampion(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	ledger.addEntity(model.TitleRef(1))
	w := model.WrestlerRef(1)
	ledger.addEntity(w)
	mustTransition(t, svc, w, TransitionEmploy, datePtr(2023, time.June, 1))

	// Title not yet activated.
	if _, err := svc.CrownChampion(context.Background(), 1, w, nil); err == nil {
		t.Fatalf("expected crowning on an unactivated title to fail")
	}
	if _, err := svc.ActivateTitle(context.Background(), 1, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("activate: %v", err)
	}
	// Unemployed challenger.
	u := model.WrestlerRef(2)
	ledger.addEntity(u)
	if _, err := svc.CrownChampion(context.Background(), 1, u, nil); err == nil {
		t.Fatalf("expected crowning an unemployed wrestler to fail")
	}
	// Referees never hold titles.
	ref := model.RefereeRef(3)
	ledger.addEntity(ref)
	if _, err := svc.CrownChampion(context.Background(), 1, ref, nil); err == nil {
		t.Fatalf("expected crowning a referee to fail")
	}
}

func TestVacateTitle(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	x := model.WrestlerRef(1)
	seedChampion(t, svc, ledger, 10, x)

	if err := svc.VacateTitle(context.Background(), 10, datePtr(2024, time.February, 1)); err != nil {
		t.Fatalf("vacate: %v", err)
	}
	if n := len(openChampionships(ledger, 10)); n != 0 {
		t.Fatalf("expected vacated title to have no open reign")
	}
	if err := svc.VacateTitle(context.Background(), 10, nil); !errors.Is(err, ErrNoCurrentChampion) {
		t.Fatalf("expected ErrNoCurrentChampion, got %v", err)
	}
}

func TestReignDays(t *testing.T) {
	now := date(2024, time.June, 1)
	held := model.TitleChampionship{WonAt: date(2024, time.January, 1)}
	if got := held.ReignDays(now); got != 152 {
		t.Fatalf("expected 152 days for an ongoing reign, got %d", got)
	}
	lost := model.TitleChampionship{WonAt: date(2024, time.January, 1), LostAt: datePtr(2024, time.January, 31)}
	if got := lost.ReignDays(now); got != 30 {
		t.Fatalf("expected 30 days for a closed reign, got %d", got)
	}
}
