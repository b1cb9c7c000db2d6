package benchmark

import (
	"sync"
	"time"
)

// StatusTransportError is the sentinel status recorded for transport-level
// failures (timeout, connection refused, DNS failure). It keeps error
// accounting uniform with protocol-level failures; it is a convention, not a
// registered HTTP status code.
const StatusTransportError = 599

// Sample is the immutable record of one completed request attempt.
type Sample struct {
	Query      string
	Duration   time.Duration
	Status     int
	ObservedAt time.Time
}

// IsError reports whether the sample counts as an error. Any status outside
// [200, 400) does, including the transport sentinel.
func (s Sample) IsError() bool {
	return s.Status < 200 || s.Status >= 400
}

// Snapshot is a consistent, read-only view of a finished (or in-progress)
// collector. Sample order across terminals is unspecified; aggregation must
// stay order-independent.
type Snapshot struct {
	Samples     []Sample
	Errors      int
	StartedAt   time.Time
	CompletedAt time.Time
}

// Elapsed returns the wall-clock run time bounded by MarkStart/MarkStop.
func (s Snapshot) Elapsed() time.Duration {
	return s.CompletedAt.Sub(s.StartedAt)
}

// Collector is the single shared sink for samples from all terminals.
// Record and Snapshot take the same lock, so reporting may safely overlap
// shutdown.
type Collector struct {
	mu          sync.Mutex
	samples     []Sample
	errors      int
	startedAt   time.Time
	completedAt time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// MarkStart records the global run start timestamp.
func (c *Collector) MarkStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startedAt = time.Now()
}

// MarkStop records the global run end timestamp.
func (c *Collector) MarkStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.completedAt = time.Now()
}

// Record appends one sample. Safe for concurrent use by all terminals.
func (c *Collector) Record(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
	if s.IsError() {
		c.errors++
	}
}

// Count returns the number of recorded samples so far.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.samples)
}

// Snapshot returns a defensive copy of the collector state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	samples := make([]Sample, len(c.samples))
	copy(samples, c.samples)

	return Snapshot{
		Samples:     samples,
		Errors:      c.errors,
		StartedAt:   c.startedAt,
		CompletedAt: c.completedAt,
	}
}
