package benchmark

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/studiowebux/wisbench/internal/config"
	"github.com/studiowebux/wisbench/internal/workload"
)

// HTTP client configuration timeouts.
const (
	tcpDialTimeout        = 5 * time.Second
	tcpKeepAliveInterval  = 30 * time.Second
	tlsHandshakeTimeout   = 5 * time.Second
	idleConnTimeout       = 90 * time.Second
	expectContinueTimeout = 1 * time.Second
)

// Runner owns one benchmark run end-to-end: it constructs the terminals,
// starts them concurrently, bounds the run with start/stop timestamps and
// joins every terminal before the snapshot is read.
type Runner struct {
	cfg       config.Config
	workload  *workload.Workload
	client    *http.Client
	collector *Collector
}

// NewRunner validates the configuration and prepares the shared HTTP client
// and collector. Configuration errors are fatal here, before any terminal
// starts.
func NewRunner(cfg config.Config, w *workload.Workload) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if w == nil {
		w = workload.Default()
	}

	return &Runner{
		cfg:       cfg,
		workload:  w,
		client:    buildHTTPClient(cfg),
		collector: NewCollector(),
	}, nil
}

// Workload returns the workload the run draws from, in configured order.
func (r *Runner) Workload() *workload.Workload {
	return r.workload
}

// Collector exposes the shared collector for live progress reads.
func (r *Runner) Collector() *Collector {
	return r.collector
}

// Run launches all terminals, waits for every one of them to stop and
// returns the final snapshot. Cancelling ctx raises the shared stop signal;
// terminals finish their current iteration and exit, and Run still joins
// them all before returning, so the snapshot is always consistent. The
// returned snapshot is valid (best-effort) even when ctx was cancelled.
//
// A terminal returning an error is an unexpected defect and is surfaced,
// never masked.
func (r *Runner) Run(ctx context.Context) (Snapshot, error) {
	thinkTime := r.cfg.GetThinkTime()
	duration := r.cfg.GetDuration()

	r.collector.MarkStart()

	g := new(errgroup.Group)
	for i := 0; i < r.cfg.Terminals; i++ {
		t := newTerminal(i, r.cfg.BaseURL, thinkTime, duration, r.client, r.workload, r.collector, r.cfg.Seed)
		g.Go(func() error {
			return t.Run(ctx)
		})
	}

	err := g.Wait()
	r.collector.MarkStop()
	r.client.CloseIdleConnections()

	if err != nil {
		return r.collector.Snapshot(), fmt.Errorf("terminal failure: %w", err)
	}
	return r.collector.Snapshot(), nil
}

// buildHTTPClient creates the HTTP client shared by all terminals, with the
// connection pool sized to the terminal count and a per-request timeout.
func buildHTTPClient(cfg config.Config) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Terminals,
		MaxIdleConnsPerHost: cfg.Terminals,
		MaxConnsPerHost:     cfg.Terminals * 2,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,

		DialContext: (&net.Dialer{
			Timeout:   tcpDialTimeout,
			KeepAlive: tcpKeepAliveInterval,
		}).DialContext,

		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.GetRequestTimeout(),
		ExpectContinueTimeout: expectContinueTimeout,
	}

	return &http.Client{
		Timeout:   cfg.GetRequestTimeout(),
		Transport: transport,
	}
}
