package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wrestling-roster/internal/lifecycle"
	"github.com/iliyamo/wrestling-roster/internal/model"
	"github.com/iliyamo/wrestling-roster/internal/queue"
	queue_publisher "github.com/iliyamo/wrestling-roster/internal/service"
)

// TransitionHandler exposes the lifecycle transitions of roster entities.
// Every endpoint takes an optional effective_date in the body, runs the
// transition atomically through the lifecycle service and returns the
// entity's new status.  A committed transition is also published to the
// roster.transition queue; publish failures never fail the request.
type TransitionHandler struct {
	Lifecycle *lifecycle.Service
}

// NewTransitionHandler constructs a TransitionHandler.
func NewTransitionHandler(svc *lifecycle.Service) *TransitionHandler {
	return &TransitionHandler{Lifecycle: svc}
}

type transitionResp struct {
	EntityType string `json:"entity_type"`
	EntityID   uint64 `json:"entity_id"`
	Transition string `json:"transition"`
	Status     string `json:"status"`
}

// Apply returns the handler for one (entity type, transition) pair.  The
// route table registers one instance per legal pair; illegal pairs like
// injuring a tag team are rejected by the lifecycle validators anyway.
func (h *TransitionHandler) Apply(entityType model.EntityType, tr lifecycle.Transition) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c, "id")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		effective, err := parseEffectiveDate(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		ref := model.EntityRef{Type: entityType, ID: id}
		status, err := h.Lifecycle.Apply(ctx, ref, tr, effective)
		if err != nil {
			return lifecycleError(c, err)
		}

		publishTransition(ref, string(tr), status.String(), effective, currentUserID(c))

		return c.JSON(http.StatusOK, transitionResp{
			EntityType: string(entityType),
			EntityID:   id,
			Transition: string(tr),
			Status:     status.String(),
		})
	}
}

// publishTransition sends the queue event before the response goes out.
// The transition has already committed; a broker outage only costs the
// audit line, so the error is ignored.
func publishTransition(ref model.EntityRef, transition, status string, effective *time.Time, userID uint64) {
	now := time.Now().UTC()
	at := now
	if effective != nil {
		at = *effective
	}
	ev := queue.TransitionAppliedEvent{
		EntityType:  string(ref.Type),
		EntityID:    ref.ID,
		Transition:  transition,
		Status:      status,
		EffectiveAt: at.Format(time.RFC3339),
		AppliedBy:   userID,
		AppliedAt:   now.Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = publishTransitionApplied(ctx, ev)
}

// publishTransitionApplied is a variable so tests can stub the broker.
var publishTransitionApplied = queue_publisher.PublishTransitionApplied
