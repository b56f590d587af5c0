package lifecycle

import (
	"context"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// cascade propagates the consequences of a successful roster transition to
// related rows, inside the same transaction:
//
//   - releasing or retiring a champion vacates the title (the reign ends at
//     the effective date; the title itself is not retired);
//   - releasing or retiring a wrestler detaches them from their tag teams;
//   - releasing or retiring a wrestler or tag team closes their stable
//     membership.
//
// Suspension and injury transitions never cascade: a suspended or injured
// champion keeps the title, and an injured partner stays on the team.  Tag
// team bookability is a derived read-time property, so losing a partner
// requires no write here.
func (s *Service) cascade(ctx context.Context, l Ledger, ref model.EntityRef, tr Transition, at time.Time) error {
	if tr != TransitionRelease && tr != TransitionRetire {
		return nil
	}
	if ref.CanHoldTitle() {
		champs, err := l.OpenChampionshipsByChampion(ctx, ref)
		if err != nil {
			return err
		}
		for _, c := range champs {
			if err := l.EndChampionship(ctx, c.ID, at); err != nil {
				return err
			}
		}
	}
	if ref.Type == model.EntityWrestler {
		memberships, err := l.OpenTagTeamMembershipsByWrestler(ctx, ref.ID)
		if err != nil {
			return err
		}
		for _, m := range memberships {
			if err := l.EndTagTeamMembership(ctx, m.ID, at); err != nil {
				return err
			}
		}
	}
	if ref.CanJoinStable() {
		membership, err := l.OpenStableMembership(ctx, ref)
		if err != nil {
			return err
		}
		if membership != nil {
			if err := l.EndStableMembership(ctx, membership.ID, at); err != nil {
				return err
			}
		}
	}
	return nil
}
