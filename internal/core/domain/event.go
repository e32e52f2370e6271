package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorEvent records a single injected fault. Events are immutable and
// ephemeral; only their kind survives as a tally in the statistics.
type ErrorEvent struct {
	ID        string    `json:"id"`
	Module    Module    `json:"module"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorEvent creates an ErrorEvent for a sampled failure.
func NewErrorEvent(m Module, kind string, at time.Time) ErrorEvent {
	return ErrorEvent{
		ID:        uuid.New().String(),
		Module:    m,
		Kind:      kind,
		Timestamp: at,
	}
}

// CorrectionOutcome is the result of one remediation attempt. It feeds the
// optimization log and is discarded afterwards.
type CorrectionOutcome struct {
	Event     ErrorEvent `json:"event"`
	Action    string     `json:"action"`
	Succeeded bool       `json:"succeeded"`
	AppliedAt time.Time  `json:"applied_at"`
}
