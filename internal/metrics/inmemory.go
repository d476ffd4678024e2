package metrics

import (
	"strconv"
	"sync"
	"time"
)

// Timing is a count and a running total of durations.
type Timing struct {
	Count   uint64
	TotalNs int64
}

// Snapshot captures current in-memory counters. Map keys are label values
// joined with "|".
type Snapshot struct {
	BackendCalls   map[string]Timing // op|outcome
	Fallbacks      map[string]uint64 // op
	Requests       map[string]Timing // route|status
	StoreMutations map[string]uint64 // entity|action
}

// InMemoryRecorder stores metrics in memory for tests and the /metrics endpoint.
type InMemoryRecorder struct {
	mu             sync.Mutex
	backendCalls   map[string]Timing
	fallbacks      map[string]uint64
	requests       map[string]Timing
	storeMutations map[string]uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{
		backendCalls:   make(map[string]Timing),
		fallbacks:      make(map[string]uint64),
		requests:       make(map[string]Timing),
		storeMutations: make(map[string]uint64),
	}
}

// Key joins label values the way Snapshot keys are built.
func Key(labels ...string) string {
	n := 0
	for _, l := range labels {
		n += len(l) + 1
	}
	b := make([]byte, 0, n)
	for i, l := range labels {
		if i > 0 {
			b = append(b, '|')
		}
		b = append(b, l...)
	}
	return string(b)
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		BackendCalls:   copyMap(m.backendCalls),
		Fallbacks:      copyMap(m.fallbacks),
		Requests:       copyMap(m.requests),
		StoreMutations: copyMap(m.storeMutations),
	}
}

// ObserveBackendCall records one outbound call.
func (m *InMemoryRecorder) ObserveBackendCall(op, outcome string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	observe(m.backendCalls, Key(op, outcome), duration)
}

// IncFallback increments the fixture fallback counter for op.
func (m *InMemoryRecorder) IncFallback(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallbacks[op]++
}

// ObserveRequest records one served request.
func (m *InMemoryRecorder) ObserveRequest(route string, status int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	observe(m.requests, Key(route, strconv.Itoa(status)), duration)
}

// IncStoreMutation increments the mutation counter for entity and action.
func (m *InMemoryRecorder) IncStoreMutation(entity, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeMutations[Key(entity, action)]++
}

func observe(dst map[string]Timing, key string, d time.Duration) {
	t := dst[key]
	t.Count++
	t.TotalNs += d.Nanoseconds()
	dst[key] = t
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
