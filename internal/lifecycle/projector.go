package lifecycle

import (
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// History is an entity's full period set, grouped by ledger kind and
// ordered by start time.  It is the sole input of the status projector.
type History struct {
	Employment []model.Period
	Suspension []model.Period
	Injury     []model.Period
	Retirement []model.Period
	Activation []model.Period
}

// GroupHistory buckets a flat slice of periods (as returned by the ledger)
// by kind, preserving order.
func GroupHistory(periods []model.Period) History {
	var h History
	for _, p := range periods {
		switch p.Kind {
		case model.PeriodEmployment:
			h.Employment = append(h.Employment, p)
		case model.PeriodSuspension:
			h.Suspension = append(h.Suspension, p)
		case model.PeriodInjury:
			h.Injury = append(h.Injury, p)
		case model.PeriodRetirement:
			h.Retirement = append(h.Retirement, p)
		case model.PeriodActivation:
			h.Activation = append(h.Activation, p)
		}
	}
	return h
}

// Current returns the open period of the given kind, or nil.
func (h History) Current(kind model.PeriodKind) *model.Period {
	return openPeriod(h.of(kind))
}

// Previous returns the closed periods of the given kind.
func (h History) Previous(kind model.PeriodKind) []model.Period {
	var out []model.Period
	for _, p := range h.of(kind) {
		if !p.Open() {
			out = append(out, p)
		}
	}
	return out
}

func (h History) of(kind model.PeriodKind) []model.Period {
	switch kind {
	case model.PeriodEmployment:
		return h.Employment
	case model.PeriodSuspension:
		return h.Suspension
	case model.PeriodInjury:
		return h.Injury
	case model.PeriodRetirement:
		return h.Retirement
	case model.PeriodActivation:
		return h.Activation
	default:
		return nil
	}
}

// ProjectStatus derives the single current status of a roster entity from
// its period history.  The checks form an ordered cascade; the first match
// wins.  The function is pure and idempotent: the same history and instant
// always yield the same status.
//
// Employment periods that ended before the most recent closed retirement
// are disregarded: a retired entity that unretires comes back Unemployed,
// not Released, and the old employment period is never resurrected.
func ProjectStatus(h History, now time.Time) model.Status {
	if openPeriod(h.Retirement) != nil {
		return model.StatusRetired
	}
	employment := sinceLastRetirement(h.Employment, h.Retirement)
	if len(employment) == 0 {
		return model.StatusUnemployed
	}
	latest := latestPeriod(employment)
	if latest.StartedAt.After(now) {
		return model.StatusFutureEmployed
	}
	if !latest.Open() {
		return model.StatusReleased
	}
	if openPeriod(h.Injury) != nil {
		return model.StatusInjured
	}
	if openPeriod(h.Suspension) != nil {
		return model.StatusSuspended
	}
	return model.StatusEmployed
}

// ProjectTitleStatus derives the current status of a title from its
// activation and retirement ledgers.  An activation scheduled in the
// future leaves the title Unactivated until the start date passes.
func ProjectTitleStatus(h History, now time.Time) model.TitleStatus {
	if openPeriod(h.Retirement) != nil {
		return model.TitleStatusRetired
	}
	activation := sinceLastRetirement(h.Activation, h.Retirement)
	if len(activation) == 0 {
		return model.TitleStatusUnactivated
	}
	latest := latestPeriod(activation)
	if latest.StartedAt.After(now) {
		return model.TitleStatusUnactivated
	}
	if latest.Open() {
		return model.TitleStatusActive
	}
	return model.TitleStatusInactive
}

// openPeriod returns the open period in the slice, or nil.
func openPeriod(periods []model.Period) *model.Period {
	for i := range periods {
		if periods[i].Open() {
			return &periods[i]
		}
	}
	return nil
}

// latestPeriod returns the period with the greatest start time.  The slice
// must be non-empty.
func latestPeriod(periods []model.Period) model.Period {
	latest := periods[0]
	for _, p := range periods[1:] {
		if p.StartedAt.After(latest.StartedAt) {
			latest = p
		}
	}
	return latest
}

// sinceLastRetirement filters out periods that started before the end of
// the most recent closed retirement.
func sinceLastRetirement(periods, retirements []model.Period) []model.Period {
	var cutoff *time.Time
	for _, r := range retirements {
		if r.EndedAt != nil && (cutoff == nil || r.EndedAt.After(*cutoff)) {
			cutoff = r.EndedAt
		}
	}
	if cutoff == nil {
		return periods
	}
	var out []model.Period
	for _, p := range periods {
		if !p.StartedAt.Before(*cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// CheckLedger verifies the period ledger invariants for one entity's
// history: at most one open period per kind, starts preceding ends, and no
// overlap within a kind.  A non-nil result wraps ErrLedgerViolation.
func CheckLedger(h History) error {
	for _, kind := range []model.PeriodKind{
		model.PeriodEmployment, model.PeriodSuspension, model.PeriodInjury,
		model.PeriodRetirement, model.PeriodActivation,
	} {
		if err := checkKind(h.of(kind)); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(periods []model.Period) error {
	open := 0
	for i, p := range periods {
		if p.Open() {
			open++
			if open > 1 {
				return ErrLedgerViolation
			}
		} else if !p.StartedAt.Before(*p.EndedAt) {
			return ErrLedgerViolation
		}
		for _, q := range periods[i+1:] {
			if q.ActiveAt(p.StartedAt) || p.ActiveAt(q.StartedAt) {
				return ErrLedgerViolation
			}
		}
	}
	return nil
}
