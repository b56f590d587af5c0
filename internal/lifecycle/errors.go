package lifecycle

import (
	"errors"
	"fmt"

	"github.com/iliyamo/wrestling-roster/internal/model"
)

// ErrNotFound is returned when the referenced entity, championship or
// membership row does not exist.  No ledger write or cascade is attempted.
var ErrNotFound = errors.New("entity not found")

// ErrLedgerViolation flags a period ledger invariant breach, such as a
// second open period of the same kind.  It indicates a bug in the
// validators rather than bad input: the transition halts and nothing is
// repaired silently.
var ErrLedgerViolation = errors.New("period ledger invariant violated")

// ErrNoCurrentChampion is returned when vacating a title that has no open
// championship.
var ErrNoCurrentChampion = errors.New("title has no current champion")

// ErrAlreadyPartner is returned when attaching a wrestler who already has
// an open membership in the tag team.
var ErrAlreadyPartner = errors.New("wrestler is already a partner of this tag team")

// ErrAlreadyInStable is returned when attaching a member who already has an
// open membership in any stable.  An entity belongs to at most one stable
// at a time.
var ErrAlreadyInStable = errors.New("member already belongs to a stable")

// TransitionError reports an illegal transition attempt: the entity's
// current projected status is not in the transition's legal source set.
// It is never retried automatically and is surfaced to the caller as a
// rejection, not a silent no-op.
type TransitionError struct {
	Transition Transition      // the transition that was attempted
	Entity     model.EntityRef // the entity it was attempted on
	Status     string          // the entity's status at the time of the attempt
}

// Error renders the rejection naming the attempted transition and the
// current status.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s %s: current status is %s", e.Transition, e.Entity, e.Status)
}
