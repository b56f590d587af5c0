package handler

import (
	"context"
	"testing"
	"time"

	"github.com/iliyamo/wrestling-roster/internal/model"
	"github.com/iliyamo/wrestling-roster/internal/queue"
)

// The queue event must be on its way before the response goes out, so a
// server shutdown cannot drop an already committed transition's audit line.
func TestPublishTransitionCompletesBeforeReturn(t *testing.T) {
	var got *queue.TransitionAppliedEvent
	orig := publishTransitionApplied
	publishTransitionApplied = func(_ context.Context, ev queue.TransitionAppliedEvent) error {
		got = &ev
		return nil
	}
	defer func() { publishTransitionApplied = orig }()

	eff := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	publishTransition(model.WrestlerRef(7), "release", "Released", &eff, 42)

	if got == nil {
		t.Fatalf("expected publish to complete before publishTransition returns")
	}
	if got.EntityID != 7 || got.Transition != "release" || got.Status != "Released" || got.AppliedBy != 42 {
		t.Fatalf("unexpected event %+v", *got)
	}
	if got.EffectiveAt != eff.Format(time.RFC3339) {
		t.Fatalf("expected effective_at %s, got %s", eff.Format(time.RFC3339), got.EffectiveAt)
	}
}
