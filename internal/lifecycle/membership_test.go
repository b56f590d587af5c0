package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

func TestAddTagTeamPartnerRejectsDuplicate(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	w := model.WrestlerRef(1)
	team := model.TagTeamRef(2)
	ledger.addEntity(w)
	ledger.addEntity(team)

	if _, err := svc.AddTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add partner: %v", err)
	}
	_, err := svc.AddTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.February, 1))
	if !errors.Is(err, ErrAlreadyPartner) {
		t.Fatalf("expected ErrAlreadyPartner, got %v", err)
	}
}

func TestPartnerCanRejoinAfterLeaving(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	w := model.WrestlerRef(1)
	team := model.TagTeamRef(2)
	ledger.addEntity(w)
	ledger.addEntity(team)

	if _, err := svc.AddTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("add partner: %v", err)
	}
	if err := svc.RemoveTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.February, 1)); err != nil {
		t.Fatalf("remove partner: %v", err)
	}
	if _, err := svc.AddTagTeamPartner(context.Background(), team.ID, w.ID, datePtr(2024, time.March, 1)); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if len(ledger.partners) != 2 {
		t.Fatalf("expected a second membership row, got %d", len(ledger.partners))
	}
}

func TestRemoveTagTeamPartnerWithoutMembership(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	team := model.TagTeamRef(2)
	ledger.addEntity(team)
	err := svc.RemoveTagTeamPartner(context.Background(), team.ID, 1, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStableMembershipIsExclusive(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	w := model.WrestlerRef(1)
	ledger.addEntity(w)

	if _, err := svc.AddStableMember(context.Background(), 5, w, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("join stable: %v", err)
	}
	// Joining a second stable while the first membership is open is
	// rejected; an entity belongs to at most one stable at a time.
	_, err := svc.AddStableMember(context.Background(), 6, w, datePtr(2024, time.February, 1))
	if !errors.Is(err, ErrAlreadyInStable) {
		t.Fatalf("expected ErrAlreadyInStable, got %v", err)
	}
	if err := svc.RemoveStableMember(context.Background(), 5, w, datePtr(2024, time.March, 1)); err != nil {
		t.Fatalf("leave stable: %v", err)
	}
	if _, err := svc.AddStableMember(context.Background(), 6, w, datePtr(2024, time.April, 1)); err != nil {
		t.Fatalf("expected joining after leaving to succeed, got %v", err)
	}
}

func TestRemoveStableMemberFromWrongStable(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	w := model.WrestlerRef(1)
	ledger.addEntity(w)
	if _, err := svc.AddStableMember(context.Background(), 5, w, datePtr(2024, time.January, 1)); err != nil {
		t.Fatalf("join stable: %v", err)
	}
	err := svc.RemoveStableMember(context.Background(), 6, w, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRefereeCannotJoinStable(t *testing.T) {
	svc, ledger := newTestService(date(2024, time.June, 1))
	ref := model.RefereeRef(1)
	ledger.addEntity(ref)
	if _, err := svc.AddStableMember(context.Background(), 5, ref, nil); err == nil {
		t.Fatalf("expected referees to be rejected from stables")
	}
}

func TestBookableEligibility(t *testing.T) {
	tests := []struct {
		name     string
		status   model.Status
		partners int
		want     bool
	}{
		{"employed with two partners", model.StatusEmployed, 2, true},
		{"employed with three partners", model.StatusEmployed, 3, true},
		{"employed with one partner", model.StatusEmployed, 1, false},
		{"suspended with two partners", model.StatusSuspended, 2, false},
		{"retired with two partners", model.StatusRetired, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.Bookable(tt.status, tt.partners); got != tt.want {
				t.Fatalf("Bookable(%s, %d) = %v, want %v", tt.status, tt.partners, got, tt.want)
			}
		})
	}
}
