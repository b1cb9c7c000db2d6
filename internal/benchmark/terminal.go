package benchmark

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/studiowebux/wisbench/internal/workload"
)

// Think-time draws are uniform over [0.8t, 1.2t] around the configured mean.
const (
	thinkTimeMinFactor = 0.8
	thinkTimeSpread    = 0.4
)

// Terminal emulates one browser/user issuing a sequence of weighted-random
// queries with think-time pauses. Each terminal owns its clock and its own
// seeded generator; the only shared mutable state is the collector.
type Terminal struct {
	id        int
	baseURL   string
	thinkTime time.Duration
	duration  time.Duration
	client    *http.Client
	workload  *workload.Workload
	collector *Collector
	rng       *rand.Rand
}

// newTerminal seeds the terminal's generator from the base seed plus the
// terminal index, so sequences are reproducible yet uncorrelated.
func newTerminal(id int, baseURL string, thinkTime, duration time.Duration, client *http.Client, w *workload.Workload, c *Collector, seed int64) *Terminal {
	return &Terminal{
		id:        id,
		baseURL:   strings.TrimRight(baseURL, "/"),
		thinkTime: thinkTime,
		duration:  duration,
		client:    client,
		workload:  w,
		collector: c,
		rng:       rand.New(rand.NewSource(seed + int64(id))),
	}
}

// Run executes the query/think-time cycle until the run duration elapses or
// ctx is cancelled. Individual request failures are non-fatal; the loop
// simply records them and continues.
func (t *Terminal) Run(ctx context.Context) error {
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Duration is advisory: checked once per iteration, so a terminal
		// may overrun by at most one request plus an interrupted wait.
		if time.Since(start) > t.duration {
			return nil
		}

		q := t.workload.Pick(t.rng)
		path := t.workload.InstantiatePath(q, t.rng)

		status, elapsed := t.issue(path)
		t.collector.Record(Sample{
			Query:      q.Name,
			Duration:   elapsed,
			Status:     status,
			ObservedAt: time.Now(),
		})

		if !t.wait(ctx) {
			return nil
		}
	}
}

// issue performs one GET against baseURL+path and measures wall-clock time
// from just before the request until the body is fully drained, so transfer
// time is part of the observed latency. Transport failures map to the
// sentinel status.
//
// The request is deliberately not bound to the run context: on interruption
// the in-flight request is allowed to complete (bounded by the client
// timeout) rather than being aborted, which would inflate the error count
// with shutdown artifacts.
func (t *Terminal) issue(path string) (int, time.Duration) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	start := time.Now()
	req, err := http.NewRequest(http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return StatusTransportError, time.Since(start)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return StatusTransportError, time.Since(start)
	}

	_, drainErr := io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if drainErr != nil {
		return StatusTransportError, time.Since(start)
	}

	return resp.StatusCode, time.Since(start)
}

// wait sleeps for a uniform draw from [0.8t, 1.2t]. The wait is
// interruptible: cancellation wakes the terminal immediately and wait
// returns false.
func (t *Terminal) wait(ctx context.Context) bool {
	factor := thinkTimeMinFactor + t.rng.Float64()*thinkTimeSpread
	pause := time.Duration(factor * float64(t.thinkTime))

	timer := time.NewTimer(pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
