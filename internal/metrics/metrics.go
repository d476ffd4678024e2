// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Backend call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeStatus    = "status"
	OutcomeMapping   = "mapping"
	OutcomeCaller    = "caller"
)

// Recorder captures metric events for the application.
// Implementations must be safe for concurrent use.
type Recorder interface {
	// Data-access client metrics
	ObserveBackendCall(op, outcome string, duration time.Duration)
	IncFallback(op string)

	// Fixture server metrics
	ObserveRequest(route string, status int, duration time.Duration)
	IncStoreMutation(entity, action string) // action: "update", "create", "delete"
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
