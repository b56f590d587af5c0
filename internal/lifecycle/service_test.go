package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// openCount tallies the entity's open periods of one kind.
func openCount(l *memLedger, ref model.EntityRef, kind model.PeriodKind) int {
	n := 0
	for _, p := range l.periods {
		if p.EntityType == ref.Type && p.EntityID == ref.ID && p.Kind == kind && p.EndedAt == nil {
			n++
		}
	}
	return n
}

// findPeriod returns the single period of the given kind, failing the test
// when zero or several exist.
func findPeriod(t *testing.T, l *memLedger, ref model.EntityRef, kind model.PeriodKind) model.Period {
	t.Helper()
	var found []model.Period
	for _, p := range l.periods {
		if p.EntityType == ref.Type && p.EntityID == ref.ID && p.Kind == kind {
			found = append(found, p)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one %s period for %s, got %d", kind, ref, len(found))
	}
	return found[0]
}

// requireSync asserts the cached status equals the projected status, the
// core consistency property after every transition.
func requireSync(t *testing.T, l *memLedger, ref model.EntityRef, now time.Time) {
	t.Helper()
	periods, _ := l.PeriodHistory(context.Background(), ref)
	projected := ProjectStatus(GroupHistory(periods), now)
	if cached := l.statuses[ref]; cached != projected {
		t.Fatalf("cached status %s does not match projection %s", cached, projected)
	}
}

func TestEmployCreatesOpenEmployment(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	status, err := svc.Employ(context.Background(), w, datePtr(2024, time.January, 1))
	if err != nil {
		t.Fatalf("employ: %v", err)
	}
	if status != model.StatusEmployed {
		t.Fatalf("expected %s, got %s", model.StatusEmployed, status)
	}
	p := findPeriod(t, ledger, w, model.PeriodEmployment)
	if !p.StartedAt.Equal(date(2024, time.January, 1)) || p.EndedAt != nil {
		t.Fatalf("expected open employment starting 2024-01-01, got %+v", p)
	}
	requireSync(t, ledger, w, now)
}

func TestEmployDefaultsEffectiveDateToNow(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	if _, err := svc.Employ(context.Background(), w, nil); err != nil {
		t.Fatalf("employ: %v", err)
	}
	p := findPeriod(t, ledger, w, model.PeriodEmployment)
	if !p.StartedAt.Equal(now) {
		t.Fatalf("expected employment to start at now (%s), got %s", now, p.StartedAt)
	}
}

func TestEmployWhileEmployedIsRejected(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	if _, err := svc.Employ(context.Background(), w, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("employ: %v", err)
	}
	_, err := svc.Employ(context.Background(), w, datePtr(2024, time.February, 1))
	var trErr *TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if n := openCount(ledger, w, model.PeriodEmployment); n != 1 {
		t.Fatalf("expected a single open employment period, got %d", n)
	}
}

func TestEmployFutureThenRescheduleKeepsOnePeriod(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	status, err := svc.Employ(context.Background(), w, datePtr(2024, time.August, 1))
	if err != nil {
		t.Fatalf("employ: %v", err)
	}
	if status != model.StatusFutureEmployed {
		t.Fatalf("expected %s, got %s", model.StatusFutureEmployed, status)
	}
	status, err = svc.Employ(context.Background(), w, datePtr(2024, time.May, 1))
	if err != nil {
		t.Fatalf("re-employ: %v", err)
	}
	if status != model.StatusEmployed {
		t.Fatalf("expected %s after rescheduling into the past, got %s", model.StatusEmployed, status)
	}
	p := findPeriod(t, ledger, w, model.PeriodEmployment)
	if !p.StartedAt.Equal(date(2024, time.May, 1)) {
		t.Fatalf("expected start moved to 2024-05-01, got %s", p.StartedAt)
	}
}

func TestSuspendOnInjuredIsRejected(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	mustTransition(t, svc, w, TransitionInjure, datePtr(2024, time.February, 1))

	_, err := svc.Suspend(context.Background(), w, datePtr(2024, time.March, 1))
	var trErr *TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if trErr.Status != model.StatusInjured.String() {
		t.Fatalf("expected rejection naming %s, got %s", model.StatusInjured, trErr.Status)
	}
	if n := openCount(ledger, w, model.PeriodSuspension); n != 0 {
		t.Fatalf("expected no suspension period, got %d", n)
	}
}

func TestReleaseSuspendedClosesBothPeriods(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	mustTransition(t, svc, w, TransitionSuspend, datePtr(2024, time.February, 1))

	status, err := svc.Release(context.Background(), w, datePtr(2024, time.March, 1))
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if status != model.StatusReleased {
		t.Fatalf("expected %s, got %s", model.StatusReleased, status)
	}
	if n := openCount(ledger, w, model.PeriodEmployment) + openCount(ledger, w, model.PeriodSuspension); n != 0 {
		t.Fatalf("expected zero open periods after release, got %d", n)
	}
	susp := findPeriod(t, ledger, w, model.PeriodSuspension)
	if susp.EndedAt == nil || !susp.EndedAt.Equal(date(2024, time.March, 1)) {
		t.Fatalf("expected suspension closed at effective date, got %+v", susp)
	}
	requireSync(t, ledger, w, now)
}

func TestRetireScenario(t *testing.T) {
	// Wrestler employed 2024-01-01, suspended 2024-02-01, retired
	// 2024-03-01: both open periods close at the retirement date and a
	// retirement period opens there.
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	if got := ledger.statuses[w]; got != model.StatusEmployed {
		t.Fatalf("expected %s after employ, got %s", model.StatusEmployed, got)
	}
	mustTransition(t, svc, w, TransitionSuspend, datePtr(2024, time.February, 1))
	if got := ledger.statuses[w]; got != model.StatusSuspended {
		t.Fatalf("expected %s after suspend, got %s", model.StatusSuspended, got)
	}

	status, err := svc.Retire(context.Background(), w, datePtr(2024, time.March, 1))
	if err != nil {
		t.Fatalf("retire: %v", err)
	}
	if status != model.StatusRetired {
		t.Fatalf("expected %s, got %s", model.StatusRetired, status)
	}
	retireAt := date(2024, time.March, 1)
	emp := findPeriod(t, ledger, w, model.PeriodEmployment)
	if emp.EndedAt == nil || !emp.EndedAt.Equal(retireAt) {
		t.Fatalf("expected employment closed at %s, got %+v", retireAt, emp)
	}
	susp := findPeriod(t, ledger, w, model.PeriodSuspension)
	if susp.EndedAt == nil || !susp.EndedAt.Equal(retireAt) {
		t.Fatalf("expected suspension closed at %s, got %+v", retireAt, susp)
	}
	ret := findPeriod(t, ledger, w, model.PeriodRetirement)
	if !ret.StartedAt.Equal(retireAt) || ret.EndedAt != nil {
		t.Fatalf("expected open retirement starting %s, got %+v", retireAt, ret)
	}
	requireSync(t, ledger, w, now)
}

func TestUnretireReturnsToUnemployed(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	mustTransition(t, svc, w, TransitionRetire, datePtr(2024, time.March, 1))

	status, err := svc.Unretire(context.Background(), w, datePtr(2024, time.April, 1))
	if err != nil {
		t.Fatalf("unretire: %v", err)
	}
	if status != model.StatusUnemployed {
		t.Fatalf("expected %s after unretire, got %s", model.StatusUnemployed, status)
	}
	// The old employment period stays closed; unretiring must not
	// resurrect it.
	emp := findPeriod(t, ledger, w, model.PeriodEmployment)
	if emp.EndedAt == nil {
		t.Fatalf("expected old employment to remain closed")
	}
	requireSync(t, ledger, w, now)
}

func TestRetireFromReleased(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	mustTransition(t, svc, w, TransitionRelease, datePtr(2024, time.February, 1))

	status, err := svc.Retire(context.Background(), w, datePtr(2024, time.March, 1))
	if err != nil {
		t.Fatalf("retire: %v", err)
	}
	if status != model.StatusRetired {
		t.Fatalf("expected %s, got %s", model.StatusRetired, status)
	}
	// Employment was already closed at release; retiring must not move
	// its end date.
	emp := findPeriod(t, ledger, w, model.PeriodEmployment)
	if !emp.EndedAt.Equal(date(2024, time.February, 1)) {
		t.Fatalf("expected employment end to stay at release date, got %s", emp.EndedAt)
	}
}

func TestTransitionOnMissingEntity(t *testing.T) {
	svc, _ := newTestService(date(2024, time.June, 1))
	_, err := svc.Employ(context.Background(), model.WrestlerRef(99), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectedTransitionLeavesStateUntouched(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)
	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))

	before := len(ledger.periods)
	statusBefore := ledger.statuses[w]
	if _, err := svc.Reinstate(context.Background(), w, nil); err == nil {
		t.Fatalf("expected reinstate of employed wrestler to fail")
	}
	if len(ledger.periods) != before {
		t.Fatalf("expected no period writes after rejected transition")
	}
	if ledger.statuses[w] != statusBefore {
		t.Fatalf("expected status unchanged after rejected transition")
	}
}

func TestOpenPeriodInvariantAcrossLifecycle(t *testing.T) {
	now := date(2024, time.June, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	steps := []struct {
		tr Transition
		at *time.Time
	}{
		{TransitionEmploy, datePtr(2024, time.January, 1)},
		{TransitionSuspend, datePtr(2024, time.January, 15)},
		{TransitionReinstate, datePtr(2024, time.February, 1)},
		{TransitionInjure, datePtr(2024, time.February, 15)},
		{TransitionClearInjury, datePtr(2024, time.March, 1)},
		{TransitionRetire, datePtr(2024, time.April, 1)},
		{TransitionUnretire, datePtr(2024, time.May, 1)},
		{TransitionEmploy, datePtr(2024, time.May, 15)},
	}
	for _, step := range steps {
		mustTransition(t, svc, w, step.tr, step.at)
		for _, kind := range []model.PeriodKind{
			model.PeriodEmployment, model.PeriodSuspension,
			model.PeriodInjury, model.PeriodRetirement,
		} {
			if n := openCount(ledger, w, kind); n > 1 {
				t.Fatalf("after %s: %d open %s periods", step.tr, n, kind)
			}
		}
		requireSync(t, ledger, w, now)
	}
}

func TestBackdatedEmployOverlappingClosedStintIsRejected(t *testing.T) {
	now := date(2024, time.July, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.January, 1))
	mustTransition(t, svc, w, TransitionRelease, datePtr(2024, time.June, 1))

	// Re-employing inside the closed stint would commit two overlapping
	// employment periods; the transaction must roll back instead.
	_, err := svc.Employ(context.Background(), w, datePtr(2024, time.March, 1))
	if !errors.Is(err, ErrLedgerViolation) {
		t.Fatalf("expected ErrLedgerViolation, got %v", err)
	}
	if n := openCount(ledger, w, model.PeriodEmployment); n != 0 {
		t.Fatalf("expected no open employment after rollback, got %d", n)
	}
	if got := ledger.statuses[w]; got != model.StatusReleased {
		t.Fatalf("expected status to stay %s, got %s", model.StatusReleased, got)
	}
	// A legal re-employment after the closed stint still goes through.
	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.June, 15))
	requireSync(t, ledger, w, now)
}

func TestBackdatedReleaseBeforeEmploymentStartIsRejected(t *testing.T) {
	now := date(2024, time.July, 1)
	svc, ledger := newTestService(now)
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	mustTransition(t, svc, w, TransitionEmploy, datePtr(2024, time.May, 1))

	// An end date before the start would invert the employment period.
	_, err := svc.Release(context.Background(), w, datePtr(2024, time.February, 1))
	if !errors.Is(err, ErrLedgerViolation) {
		t.Fatalf("expected ErrLedgerViolation, got %v", err)
	}
	p := findPeriod(t, ledger, w, model.PeriodEmployment)
	if p.EndedAt != nil {
		t.Fatalf("expected employment to stay open after rollback, got %+v", p)
	}
	if got := ledger.statuses[w]; got != model.StatusEmployed {
		t.Fatalf("expected status to stay %s, got %s", model.StatusEmployed, got)
	}
}

func mustTransition(t *testing.T, svc *Service, ref model.EntityRef, tr Transition, at *time.Time) {
	t.Helper()
	if _, err := svc.Apply(context.Background(), ref, tr, at); err != nil {
		t.Fatalf("%s %s: %v", tr, ref, err)
	}
}
