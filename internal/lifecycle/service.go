package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// Service orchestrates lifecycle transitions.  Every action runs the same
// strictly ordered sequence inside one unit of work: lock the entity,
// project the current status, validate, mutate the period ledger,
// re-project and persist the cached status, then fire cascades.  A failure
// at any step rolls the whole transaction back.
type Service struct {
	uow   UnitOfWork
	clock Clock
}

// NewService constructs a Service.  Both dependencies must be non-nil.
func NewService(uow UnitOfWork, clock Clock) *Service {
	if uow == nil || clock == nil {
		panic("nil dependency passed to lifecycle.NewService")
	}
	return &Service{uow: uow, clock: clock}
}

// at resolves an optional effective date, defaulting to the clock's now.
func (s *Service) at(effective *time.Time) time.Time {
	if effective != nil {
		return effective.UTC()
	}
	return s.clock.Now()
}

// Employ begins (or, for a FutureEmployed entity, reschedules) employment
// at the effective date.
func (s *Service) Employ(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionEmploy, effective)
}

// Release ends employment, closing any open suspension first.
func (s *Service) Release(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionRelease, effective)
}

// Suspend opens a suspension period for an employed entity.
func (s *Service) Suspend(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionSuspend, effective)
}

// Reinstate closes the open suspension period.
func (s *Service) Reinstate(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionReinstate, effective)
}

// Injure opens an injury period for an employed individual.
func (s *Service) Injure(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionInjure, effective)
}

// ClearInjury closes the open injury period.
func (s *Service) ClearInjury(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionClearInjury, effective)
}

// Retire ends any open suspension and employment and opens a retirement
// period.
func (s *Service) Retire(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionRetire, effective)
}

// Unretire closes the retirement period.  The entity comes back
// Unemployed; no employment is auto-created.
func (s *Service) Unretire(ctx context.Context, ref model.EntityRef, effective *time.Time) (model.Status, error) {
	return s.transition(ctx, ref, TransitionUnretire, effective)
}

// Apply dispatches a transition by name.  Handlers use it to map the
// path segment of a transition route onto the matching action.
func (s *Service) Apply(ctx context.Context, ref model.EntityRef, tr Transition, effective *time.Time) (model.Status, error) {
	switch tr {
	case TransitionEmploy, TransitionRelease, TransitionSuspend, TransitionReinstate,
		TransitionInjure, TransitionClearInjury, TransitionRetire, TransitionUnretire:
		return s.transition(ctx, ref, tr, effective)
	default:
		return "", fmt.Errorf("unknown transition %q", tr)
	}
}

// transition runs the shared validate → mutate → re-project → cascade
// sequence for a roster entity.
func (s *Service) transition(ctx context.Context, ref model.EntityRef, tr Transition, effective *time.Time) (model.Status, error) {
	if ref.Type == model.EntityTitle {
		return "", fmt.Errorf("%s is not a roster transition target", ref)
	}
	at := s.at(effective)
	var out model.Status
	err := s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, ref); err != nil {
			return err
		}
		periods, err := l.PeriodHistory(ctx, ref)
		if err != nil {
			return err
		}
		hist := GroupHistory(periods)
		if err := CheckLedger(hist); err != nil {
			return err
		}
		cur := ProjectStatus(hist, s.clock.Now())
		if err := ValidateRoster(ref, tr, cur); err != nil {
			return err
		}
		if err := s.applyRoster(ctx, l, ref, tr, cur, at); err != nil {
			return err
		}
		// Re-project from the mutated ledger and resync the cached column.
		// The invariants are re-checked here: a backdated effective date
		// can turn individually legal transitions into an inverted or
		// overlapping period, and such a ledger must never commit.
		periods, err = l.PeriodHistory(ctx, ref)
		if err != nil {
			return err
		}
		hist = GroupHistory(periods)
		if err := CheckLedger(hist); err != nil {
			return fmt.Errorf("%s %s: %w", tr, ref, err)
		}
		out = ProjectStatus(hist, s.clock.Now())
		if err := l.UpdateStatus(ctx, ref, out); err != nil {
			return err
		}
		return s.cascade(ctx, l, ref, tr, at)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// applyRoster writes the period changes for one roster transition.  The
// suspension ledger is always closed before the employment ledger so the
// one-open-period invariant holds at every point inside the transaction.
func (s *Service) applyRoster(ctx context.Context, l Ledger, ref model.EntityRef, tr Transition, cur model.Status, at time.Time) error {
	switch tr {
	case TransitionEmploy:
		if cur == model.StatusFutureEmployed {
			moved, err := l.MoveOpenPeriodStart(ctx, ref, model.PeriodEmployment, at)
			if err != nil {
				return err
			}
			if !moved {
				return fmt.Errorf("%w: %s has no open employment to reschedule", ErrLedgerViolation, ref)
			}
			return nil
		}
		return l.CreatePeriod(ctx, ref, model.PeriodEmployment, at)
	case TransitionRelease:
		if _, err := l.EndOpenPeriod(ctx, ref, model.PeriodSuspension, at); err != nil {
			return err
		}
		ended, err := l.EndOpenPeriod(ctx, ref, model.PeriodEmployment, at)
		if err != nil {
			return err
		}
		if !ended {
			return fmt.Errorf("%w: %s has no open employment to release", ErrLedgerViolation, ref)
		}
		return nil
	case TransitionSuspend:
		return l.CreatePeriod(ctx, ref, model.PeriodSuspension, at)
	case TransitionReinstate:
		ended, err := l.EndOpenPeriod(ctx, ref, model.PeriodSuspension, at)
		if err != nil {
			return err
		}
		if !ended {
			return fmt.Errorf("%w: %s has no open suspension to reinstate", ErrLedgerViolation, ref)
		}
		return nil
	case TransitionInjure:
		return l.CreatePeriod(ctx, ref, model.PeriodInjury, at)
	case TransitionClearInjury:
		ended, err := l.EndOpenPeriod(ctx, ref, model.PeriodInjury, at)
		if err != nil {
			return err
		}
		if !ended {
			return fmt.Errorf("%w: %s has no open injury to clear", ErrLedgerViolation, ref)
		}
		return nil
	case TransitionRetire:
		// A Released entity has no open employment or suspension; ending
		// closed ledgers is a no-op by contract.
		if _, err := l.EndOpenPeriod(ctx, ref, model.PeriodSuspension, at); err != nil {
			return err
		}
		if _, err := l.EndOpenPeriod(ctx, ref, model.PeriodEmployment, at); err != nil {
			return err
		}
		return l.CreatePeriod(ctx, ref, model.PeriodRetirement, at)
	case TransitionUnretire:
		ended, err := l.EndOpenPeriod(ctx, ref, model.PeriodRetirement, at)
		if err != nil {
			return err
		}
		if !ended {
			return fmt.Errorf("%w: %s has no open retirement to end", ErrLedgerViolation, ref)
		}
		return nil
	default:
		return fmt.Errorf("unknown transition %q", tr)
	}
}
