package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveBackendCall is a no-op.
func (n *NoopRecorder) ObserveBackendCall(op, outcome string, duration time.Duration) {}

// IncFallback is a no-op.
func (n *NoopRecorder) IncFallback(op string) {}

// ObserveRequest is a no-op.
func (n *NoopRecorder) ObserveRequest(route string, status int, duration time.Duration) {}

// IncStoreMutation is a no-op.
func (n *NoopRecorder) IncStoreMutation(entity, action string) {}
