package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/driver"
	"github.com/pthm-cable/rovers/telemetry"
)

func main() {
	// A .env file is optional; it only supplies flag defaults.
	_ = godotenv.Load()

	// CLI flags
	configPath := flag.String("config", os.Getenv("ROVERS_CONFIG"), "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", os.Getenv("ROVERS_OUTPUT_DIR"), "Output directory for CSV logs and config snapshot")
	backend := flag.String("backend", "", "Render backend: path, gpu, terminal or headless (empty = use config)")
	headless := flag.Bool("headless", false, "Run without graphics (same as -backend headless)")
	logStats := flag.Bool("log-stats", false, "Output perf stats via slog every stats window")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *headless {
		*backend = config.BackendHeadless
	}
	if *backend != "" {
		cfg.Render.Backend = *backend
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid backend", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	runID := telemetry.NewRunID()

	// The terminal backend owns stdout, so its logs go to the output dir.
	var logOut io.Writer = os.Stdout
	if cfg.Render.Backend == config.BackendTerminal {
		logOut = io.Discard
		if *outputDir != "" {
			if err := os.MkdirAll(*outputDir, 0755); err == nil {
				if f, err := os.Create(filepath.Join(*outputDir, "rovers.log")); err == nil {
					defer f.Close()
					logOut = f
				}
			}
		}
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil)).With("run_id", runID)
	slog.SetDefault(logger)

	out, err := telemetry.NewOutputManager(*outputDir, runID)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	opts := board.Options{
		Rand:      rand.New(rand.NewPCG(uint64(rngSeed), uint64(rngSeed)>>1)),
		Logger:    logger,
		Perf:      perf,
		Collector: telemetry.NewCollector(cfg.Derived.StatsWindowTicks, cfg.Derived.TickSeconds),
		OnWindow: func(stats telemetry.WindowStats) {
			if err := out.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
			ps := perf.Stats()
			if *logStats {
				ps.LogStats(logger)
			}
			if err := out.WritePerf(ps, stats.WindowEndTick); err != nil {
				slog.Error("failed to write perf stats", "error", err)
			}
		},
	}

	slog.Info("starting simulation",
		"backend", cfg.Render.Backend,
		"seed", rngSeed,
		"lifecycle", cfg.Rovers.Lifecycle,
		"max_ticks", *maxTicks,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Render.Backend {
	case config.BackendHeadless:
		err = runHeadless(ctx, cfg, opts, *maxTicks)
	case config.BackendTerminal:
		err = runTerminal(ctx, cfg, opts, *maxTicks)
	default:
		err = runWindow(ctx, cfg, opts, runID, *maxTicks)
	}
	if err != nil {
		slog.Error("simulation failed", "error", err)
		out.Close()
		os.Exit(1)
	}
}

// runHeadless drives the board on a ticker with nothing drawn.
func runHeadless(ctx context.Context, cfg *config.Config, opts board.Options, maxTicks int64) error {
	b, err := board.New(cfg, opts)
	if err != nil {
		return err
	}

	reason, err := driver.Run(ctx, b, driver.Options{
		Interval: driver.Interval(cfg.Screen.TargetFPS),
		MaxTicks: maxTicks,
		Logger:   opts.Logger,
	})
	slog.Info("simulation ended", "reason", reason.String(), "tick", b.Ticks())
	if reason == driver.Canceled {
		return nil
	}
	return err
}
