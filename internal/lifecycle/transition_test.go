package lifecycle

import (
	"errors"
	"testing"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

func TestValidateRosterLegalSources(t *testing.T) {
	wrestler := model.WrestlerRef(1)
	tests := []struct {
		transition Transition
		from       model.Status
		legal      bool
	}{
		{TransitionEmploy, model.StatusUnemployed, true},
		{TransitionEmploy, model.StatusReleased, true},
		{TransitionEmploy, model.StatusFutureEmployed, true},
		{TransitionEmploy, model.StatusEmployed, false},
		{TransitionEmploy, model.StatusRetired, false},
		{TransitionRelease, model.StatusEmployed, true},
		{TransitionRelease, model.StatusSuspended, true},
		{TransitionRelease, model.StatusInjured, false},
		{TransitionRelease, model.StatusUnemployed, false},
		{TransitionSuspend, model.StatusEmployed, true},
		{TransitionSuspend, model.StatusInjured, false},
		{TransitionSuspend, model.StatusSuspended, false},
		{TransitionReinstate, model.StatusSuspended, true},
		{TransitionReinstate, model.StatusEmployed, false},
		{TransitionInjure, model.StatusEmployed, true},
		{TransitionInjure, model.StatusSuspended, false},
		{TransitionClearInjury, model.StatusInjured, true},
		{TransitionClearInjury, model.StatusEmployed, false},
		{TransitionRetire, model.StatusEmployed, true},
		{TransitionRetire, model.StatusSuspended, true},
		{TransitionRetire, model.StatusReleased, true},
		{TransitionRetire, model.StatusInjured, false},
		{TransitionRetire, model.StatusUnemployed, false},
		{TransitionUnretire, model.StatusRetired, true},
		{TransitionUnretire, model.StatusReleased, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.transition)+" from "+tt.from.String(), func(t *testing.T) {
			err := ValidateRoster(wrestler, tt.transition, tt.from)
			if tt.legal && err != nil {
				t.Fatalf("expected %s from %s to be legal, got %v", tt.transition, tt.from, err)
			}
			if !tt.legal && err == nil {
				t.Fatalf("expected %s from %s to be rejected", tt.transition, tt.from)
			}
		})
	}
}

func TestValidateRosterErrorNamesTransitionAndStatus(t *testing.T) {
	err := ValidateRoster(model.WrestlerRef(7), TransitionSuspend, model.StatusInjured)
	var trErr *TransitionError
	if !errors.As(err, &trErr) {
		t.Fatalf("expected *TransitionError, got %T", err)
	}
	if trErr.Transition != TransitionSuspend {
		t.Fatalf("expected transition %s, got %s", TransitionSuspend, trErr.Transition)
	}
	if trErr.Status != model.StatusInjured.String() {
		t.Fatalf("expected status %s, got %s", model.StatusInjured, trErr.Status)
	}
}

func TestValidateRosterTagTeamHasNoInjuryLedger(t *testing.T) {
	team := model.TagTeamRef(3)
	for _, tr := range []Transition{TransitionInjure, TransitionClearInjury} {
		for _, from := range []model.Status{
			model.StatusUnemployed, model.StatusEmployed, model.StatusSuspended, model.StatusRetired,
		} {
			if err := ValidateRoster(team, tr, from); err == nil {
				t.Fatalf("expected %s to be illegal for tag teams from %s", tr, from)
			}
		}
	}
}

func TestValidateTitleLegalSources(t *testing.T) {
	tests := []struct {
		transition Transition
		from       model.TitleStatus
		legal      bool
	}{
		{TransitionActivate, model.TitleStatusUnactivated, true},
		{TransitionActivate, model.TitleStatusInactive, true},
		{TransitionActivate, model.TitleStatusActive, false},
		{TransitionActivate, model.TitleStatusRetired, false},
		{TransitionDeactivate, model.TitleStatusActive, true},
		{TransitionDeactivate, model.TitleStatusInactive, false},
		{TransitionRetire, model.TitleStatusActive, true},
		{TransitionRetire, model.TitleStatusInactive, true},
		{TransitionRetire, model.TitleStatusRetired, false},
		{TransitionUnretire, model.TitleStatusRetired, true},
		{TransitionUnretire, model.TitleStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.transition)+" from "+tt.from.String(), func(t *testing.T) {
			err := ValidateTitle(1, tt.transition, tt.from)
			if tt.legal && err != nil {
				t.Fatalf("expected %s from %s to be legal, got %v", tt.transition, tt.from, err)
			}
			if !tt.legal && err == nil {
				t.Fatalf("expected %s from %s to be rejected", tt.transition, tt.from)
			}
		})
	}
}
