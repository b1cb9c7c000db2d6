package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/studiowebux/wisbench/internal/benchmark"
	"github.com/studiowebux/wisbench/internal/config"
	"github.com/studiowebux/wisbench/internal/report"
	"github.com/studiowebux/wisbench/internal/workload"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wisbench",
	Short: "WIS benchmark client - synthetic load generator",
	Long: `wisbench benchmarks the WIS backend API by emulating many concurrent
terminals. Each terminal issues weighted-random queries with realistic
think-time pauses; the run ends after the configured duration or on Ctrl-C,
and a report with per-query metrics is printed either way.

Examples:
  wisbench                               # 10 terminals, 30s, against localhost:4000
  wisbench -n 50 -t 0.5 -d 120           # heavier run
  wisbench --url https://wis.example.org # different backend
  wisbench --workload mix.yaml           # custom query mix`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark()
	},
}

var (
	flagTerminals int
	flagWait      float64
	flagDuration  int
	flagURL       string
	flagSeed      int64
	flagTimeout   time.Duration
	flagWorkload  string
)

func init() {
	rootCmd.Flags().IntVarP(&flagTerminals, "terminals", "n", config.DefaultTerminals, "number of terminals (emulated browsers)")
	rootCmd.Flags().Float64VarP(&flagWait, "wait", "t", config.DefaultThinkTimeSec, "average think-time t in seconds")
	rootCmd.Flags().IntVarP(&flagDuration, "duration", "d", config.DefaultDurationSec, "benchmark duration in seconds")
	rootCmd.Flags().StringVar(&flagURL, "url", config.DefaultBaseURL, "base URL of the WIS backend")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", config.DefaultSeed, "base random seed for reproducible runs")
	rootCmd.Flags().DurationVar(&flagTimeout, "timeout", config.DefaultRequestTimeout, "per-request timeout")
	rootCmd.Flags().StringVar(&flagWorkload, "workload", "", "YAML file overriding the built-in query mix")
}

func runBenchmark() error {
	cfg := config.Default()
	cfg.Terminals = flagTerminals
	cfg.ThinkTimeSec = flagWait
	cfg.DurationSec = flagDuration
	cfg.BaseURL = flagURL
	cfg.Seed = flagSeed
	cfg.RequestTimeout = flagTimeout
	cfg.WorkloadFile = flagWorkload

	wl := workload.Default()
	if cfg.WorkloadFile != "" {
		var err error
		wl, err = workload.LoadFile(cfg.WorkloadFile)
		if err != nil {
			return err
		}
	}

	runner, err := benchmark.NewRunner(cfg, wl)
	if err != nil {
		return err
	}

	// Ctrl-C raises the shared stop signal; terminals finish their current
	// iteration and the partial report is still printed.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Starting benchmark with %d terminals against %s", cfg.Terminals, cfg.BaseURL)

	sp, _ := pterm.DefaultSpinner.WithText("Running benchmark...").Start()
	progressDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-progressDone:
				return
			case <-ticker.C:
				sp.UpdateText(fmt.Sprintf("Running benchmark... %d requests", runner.Collector().Count()))
			}
		}
	}()

	snap, runErr := runner.Run(ctx)
	close(progressDone)

	switch {
	case runErr != nil:
		sp.Fail("Benchmark failed")
	case ctx.Err() != nil:
		sp.Warning("Benchmark interrupted, producing partial report")
	default:
		sp.Success("Benchmark complete")
	}

	if err := report.Write(os.Stdout, cfg, wl, snap); err != nil {
		return err
	}

	return runErr
}
