package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// AddTagTeamPartner opens a membership row joining a wrestler to a tag
// team.  A wrestler may hold open memberships in several teams, but only
// one per team; a duplicate attach returns ErrAlreadyPartner.
func (s *Service) AddTagTeamPartner(ctx context.Context, tagTeamID, wrestlerID uint64, effective *time.Time) (*model.TagTeamPartner, error) {
	at := s.at(effective)
	var out *model.TagTeamPartner
	err := s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, model.TagTeamRef(tagTeamID)); err != nil {
			return err
		}
		if err := l.LockEntity(ctx, model.WrestlerRef(wrestlerID)); err != nil {
			return err
		}
		existing, err := l.OpenTagTeamMembership(ctx, tagTeamID, wrestlerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyPartner
		}
		out, err = l.AttachTagTeamPartner(ctx, tagTeamID, wrestlerID, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveTagTeamPartner closes the wrestler's open membership in the team.
// It returns ErrNotFound when no open membership exists.
func (s *Service) RemoveTagTeamPartner(ctx context.Context, tagTeamID, wrestlerID uint64, effective *time.Time) error {
	at := s.at(effective)
	return s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, model.TagTeamRef(tagTeamID)); err != nil {
			return err
		}
		membership, err := l.OpenTagTeamMembership(ctx, tagTeamID, wrestlerID)
		if err != nil {
			return err
		}
		if membership == nil {
			return ErrNotFound
		}
		return l.EndTagTeamMembership(ctx, membership.ID, at)
	})
}

// AddStableMember opens a membership row joining a wrestler or tag team to
// a stable.  An entity belongs to at most one stable at a time; an attach
// while another membership is open returns ErrAlreadyInStable.  The data
// layer does not enforce this uniqueness, so this is the only gate.
func (s *Service) AddStableMember(ctx context.Context, stableID uint64, member model.EntityRef, effective *time.Time) (*model.StableMember, error) {
	if !member.CanJoinStable() {
		return nil, fmt.Errorf("%s cannot join a stable", member)
	}
	at := s.at(effective)
	var out *model.StableMember
	err := s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, member); err != nil {
			return err
		}
		existing, err := l.OpenStableMembership(ctx, member)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAlreadyInStable
		}
		out, err = l.AttachStableMember(ctx, stableID, member, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveStableMember closes the member's open membership in the given
// stable.  It returns ErrNotFound when the member has no open membership
// there.
func (s *Service) RemoveStableMember(ctx context.Context, stableID uint64, member model.EntityRef, effective *time.Time) error {
	at := s.at(effective)
	return s.uow.Execute(ctx, func(l Ledger) error {
		if err := l.LockEntity(ctx, member); err != nil {
			return err
		}
		membership, err := l.OpenStableMembership(ctx, member)
		if err != nil {
			return err
		}
		if membership == nil || membership.StableID != stableID {
			return ErrNotFound
		}
		return l.EndStableMembership(ctx, membership.ID, at)
	})
}
