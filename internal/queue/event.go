// Package queue defines message payloads exchanged over the message broker.
package queue

// TransitionAppliedEvent is published after a lifecycle transition commits.
// It carries enough information for downstream consumers to log, notify or
// trigger analytics without querying the primary database.
type TransitionAppliedEvent struct {
	EntityType  string `json:"entity_type"`
	EntityID    uint64 `json:"entity_id"`
	Transition  string `json:"transition"`
	Status      string `json:"status"`
	EffectiveAt string `json:"effective_at"`
	AppliedBy   uint64 `json:"applied_by"`
	AppliedAt   string `json:"applied_at"`
}
