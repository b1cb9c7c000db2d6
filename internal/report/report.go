// Package report turns a collector snapshot into the human-facing benchmark
// report. Generation is read-only and idempotent: the same snapshot always
// yields byte-identical output.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/studiowebux/wisbench/internal/benchmark"
	"github.com/studiowebux/wisbench/internal/config"
	"github.com/studiowebux/wisbench/internal/workload"
)

const separatorWidth = 60

// row is the per-query aggregate, computed on demand and never stored.
type row struct {
	count int
	sum   time.Duration
	min   time.Duration
	max   time.Duration
}

// Write renders the full report: configuration echo, overall totals and the
// per-query table. Queries are listed in their configured workload order, so
// a query with zero observed samples still appears with zero counts.
func Write(w io.Writer, cfg config.Config, wl *workload.Workload, snap benchmark.Snapshot) error {
	sep := strings.Repeat("=", separatorWidth)
	sub := strings.Repeat("-", separatorWidth)

	elapsed := snap.Elapsed().Seconds()
	total := len(snap.Samples)

	throughput := 0.0
	if elapsed > 0 {
		throughput = float64(total) / elapsed
	}

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintln(w, "WIS BENCHMARK REPORT")
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "  Terminals (n): %d\n", cfg.Terminals)
	fmt.Fprintf(w, "  Avg Wait (t):  %gs\n", cfg.ThinkTimeSec)
	fmt.Fprintf(w, "  Duration:      %ds\n", cfg.DurationSec)
	fmt.Fprintf(w, "  Base URL:      %s\n", cfg.BaseURL)
	fmt.Fprintf(w, "  Seed:          %d\n", cfg.Seed)
	fmt.Fprintln(w, sub)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "  Total Time:     %.2f s\n", elapsed)
	fmt.Fprintf(w, "  Total Requests: %d\n", total)
	fmt.Fprintf(w, "  Throughput:     %.2f req/s\n", throughput)
	fmt.Fprintf(w, "  Errors:         %d\n", snap.Errors)
	fmt.Fprintln(w, sub)

	table, err := renderTable(wl, snap)
	if err != nil {
		return fmt.Errorf("failed to render query table: %w", err)
	}
	fmt.Fprintln(w, table)
	fmt.Fprintln(w, sep)

	return nil
}

// renderTable builds the per-query table (count, mix %, min/avg/max seconds).
func renderTable(wl *workload.Workload, snap benchmark.Snapshot) (string, error) {
	byQuery := make(map[string]*row)
	for _, s := range snap.Samples {
		r, ok := byQuery[s.Query]
		if !ok {
			r = &row{min: s.Duration, max: s.Duration}
			byQuery[s.Query] = r
		}
		r.count++
		r.sum += s.Duration
		if s.Duration < r.min {
			r.min = s.Duration
		}
		if s.Duration > r.max {
			r.max = s.Duration
		}
	}

	total := len(snap.Samples)
	data := pterm.TableData{
		{"Query", "Count", "Mix %", "Min(s)", "Avg(s)", "Max(s)"},
	}

	for _, q := range wl.Queries() {
		r := byQuery[q.Name]
		if r == nil || r.count == 0 {
			data = append(data, []string{q.Name, "0", "0.0", "-", "-", "-"})
			continue
		}

		mix := 0.0
		if total > 0 {
			mix = float64(r.count) / float64(total) * 100
		}
		avg := r.sum / time.Duration(r.count)

		data = append(data, []string{
			q.Name,
			fmt.Sprintf("%d", r.count),
			fmt.Sprintf("%.1f", mix),
			fmt.Sprintf("%.3f", r.min.Seconds()),
			fmt.Sprintf("%.3f", avg.Seconds()),
			fmt.Sprintf("%.3f", r.max.Seconds()),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}
