/*
Package benchmark implements the concurrent load-generation engine.

# Overview

A benchmark run emulates n independent terminals (simulated users). Each
terminal repeatedly selects a weighted-random query from the shared workload,
issues a GET against the backend, records the outcome and pauses for a
randomized think-time before the next iteration.

# Architecture

The package consists of three components:

1. Collector (collector.go): thread-safe sample sink and run bounds
2. Terminal (terminal.go): one actor running the query/think-time loop
3. Runner (runner.go): run orchestration, shared HTTP client, terminal join

# Terminal lifecycle

	Running -> (Selecting -> Requesting -> Recording -> Waiting) -> Stopped

The loop exits when the configured duration elapses (checked once per
iteration) or the run context is cancelled. Cancellation is cooperative:
it wakes every terminal's think-time wait immediately, but in-flight
requests are allowed to complete, bounded by the per-request timeout.

# Error accounting

A status in [200, 400) is a success. Any other status, and any
transport-level failure (mapped to the sentinel status 599), counts as an
error. Failures are contained within the iteration that observed them; no
retry is attempted and no terminal affects another.

# Thread safety

The collector is the only shared mutable state. Record and Snapshot take
the same lock. Every terminal seeds its own generator from the base seed
plus its index, so draws are reproducible and uncorrelated.
*/
package benchmark
