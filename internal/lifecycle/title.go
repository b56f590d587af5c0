package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ActivateTitle puts a title in contention, opening an activation period.
func (s *Service) ActivateTitle(ctx context.Context, titleID uint64, effective *time.Time) (model.TitleStatus, error) {
	return s.titleTransition(ctx, titleID, TransitionActivate, effective)
}

// DeactivateTitle pulls an active title from contention.
func (s *Service) DeactivateTitle(ctx context.Context, titleID uint64, effective *time.Time) (model.TitleStatus, error) {
	return s.titleTransition(ctx, titleID, TransitionDeactivate, effective)
}

// RetireTitle retires a title.  Its open championship, if any, ends at the
// effective date; the champion's own status is untouched.
func (s *Service) RetireTitle(ctx context.Context, titleID uint64, effective *time.Time) (model.TitleStatus, error) {
	return s.titleTransition(ctx, titleID, TransitionRetire, effective)
}

// UnretireTitle ends a title's retirement.  The title comes back Inactive
// and must be activated again before it can be defended.
func (s *Service) UnretireTitle(ctx context.Context, titleID uint64, effective *time.Time) (model.TitleStatus, error) {
	return s.titleTransition(ctx, titleID, TransitionUnretire, effective)
}

// ApplyTitle dispatches a title transition by name.
func (s *Service) ApplyTitle(ctx context.Context, titleID uint64, tr Transition, effective *time.Time) (model.TitleStatus, error) {
	switch tr {
	case TransitionActivate, TransitionDeactivate, TransitionRetire, TransitionUnretire:
		return s.titleTransition(ctx, titleID, tr, effective)
	default:
		return "", fmt.Errorf("unknown title transition %q", tr)
	}
}

func (s *Service) titleTransition(ctx context.Context, titleID uint64, tr Transition, effective *time.Time) (model.TitleStatus, error) {
	ref := model.TitleRef(titleID)
	at := s.at(effective)
	var out model.TitleStatus
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
		cur := ProjectTitleStatus(hist, s.clock.Now())
		if err := ValidateTitle(titleID, tr, cur); err != nil {
			return err
		}
		if err := s.applyTitle(ctx, l, ref, tr, at); err != nil {
			return err
		}
		// Re-check the invariants so a backdated effective date cannot
		// commit an inverted or overlapping activation period.
		periods, err = l.PeriodHistory(ctx, ref)
		if err != nil {
			return err
		}
		hist = GroupHistory(periods)
		if err := CheckLedger(hist); err != nil {
			return fmt.Errorf("%s title %d: %w", tr, titleID, err)
		}
		out = ProjectTitleStatus(hist, s.clock.Now())
		if err := l.UpdateTitleStatus(ctx, titleID, out); err != nil {
			return err
		}
		// Retiring the title ends its current reign; other title
		// transitions have no side effects.
		if tr == TransitionRetire {
			champ, err := l.OpenChampionshipByTitle(ctx, titleID)
			if err != nil {
				return err
			}
			if champ != nil {
				return l.EndChampionship(ctx, champ.ID, at)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *Service) applyTitle(ctx context.Context, l Ledger, ref model.EntityRef, tr Transition, at time.Time) error {
	switch tr {
	case TransitionActivate:
		return l.CreatePeriod(ctx, ref, model.PeriodActivation, at)
	case TransitionDeactivate:
		ended, err := l.EndOpenPeriod(ctx, ref, model.PeriodActivation, at)
		if err != nil {
			return err
		}
		if !ended {
			return fmt.Errorf("%w: %s has no open activation to end", ErrLedgerViolation, ref)
		}
		return nil
	case TransitionRetire:
		if _, err := l.EndOpenPeriod(ctx, ref, model.PeriodActivation, at); err != nil {
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
		return fmt.Errorf("unknown title transition %q", tr)
	}
}

// CrownChampion records a title change: the previous reign (if any) ends at
// wonAt and a new championship row opens for the champion.  The title must
// be Active and the champion must be an Employed wrestler or tag team.
func (s *Service) CrownChampion(ctx context.Context, titleID uint64, champion model.EntityRef, effective *time.Time) (*model.TitleChampionship, error) {
	if !champion.CanHoldTitle() {
		return nil, fmt.Errorf("%s cannot hold a title", champion)
	}
	at := s.at(effective)
	var out *model.TitleChampionship
	err := s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, model.TitleRef(titleID)); err != nil {
			return err
		}
		if err := l.LockEntity(ctx, champion); err != nil {
			return err
		}
		titlePeriods, err := l.PeriodHistory(ctx, model.TitleRef(titleID))
		if err != nil {
			return err
		}
		if st := ProjectTitleStatus(GroupHistory(titlePeriods), s.clock.Now()); st != model.TitleStatusActive {
			return &TransitionError{Transition: "crown", Entity: model.TitleRef(titleID), Status: st.String()}
		}
		champPeriods, err := l.PeriodHistory(ctx, champion)
		if err != nil {
			return err
		}
		if st := ProjectStatus(GroupHistory(champPeriods), s.clock.Now()); st != model.StatusEmployed {
			return &TransitionError{Transition: "crown", Entity: champion, Status: st.String()}
		}
		prev, err := l.OpenChampionshipByTitle(ctx, titleID)
		if err != nil {
			return err
		}
		if prev != nil {
			if prev.Champion() == champion {
				return fmt.Errorf("%s already holds title %d", champion, titleID)
			}
			if err := l.EndChampionship(ctx, prev.ID, at); err != nil {
				return err
			}
		}
		out, err = l.CreateChampionship(ctx, titleID, champion, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VacateTitle ends the current reign without crowning a successor.  It
// returns ErrNoCurrentChampion when the title is not held.
func (s *Service) VacateTitle(ctx context.Context, titleID uint64, effective *time.Time) error {
	at := s.at(effective)
	return s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, model.TitleRef(titleID)); err != nil {
			return err
		}
		champ, err := l.OpenChampionshipByTitle(ctx, titleID)
		if err != nil {
			return err
		}
		if champ == nil {
			return ErrNoCurrentChampion
		}
		return l.EndChampionship(ctx, champ.ID, at)
	})
}
