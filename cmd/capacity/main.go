// Package main measures how many rovers a machine can tessellate within the
// frame budget, so the governor never has to stop the simulation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/rovers/config"
)

// formatDuration formats a duration as MM:SS or HH:MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 300, "Measured ticks per run")
	warmup := flag.Int("warmup", 60, "Unmeasured ticks before each run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	minRovers := flag.Int("min-rovers", 1, "Smallest rover count to try")
	maxRovers := flag.Int("max-rovers", 20000, "Largest rover count to try")
	headroom := flag.Float64("headroom", 0.5, "Share of the frame interval the tick may use")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	evalSeeds := make([]uint64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}
	evaluator := NewEvaluator(baseCfg, *warmup, *ticks, evalSeeds, *headroom)

	fmt.Printf("Searching rovers in [%d, %d] with %d fixed points, budget %s per tick (%d fps, headroom %.2f)\n",
		*minRovers, *maxRovers, baseCfg.Points.Count, evaluator.Budget(), baseCfg.Screen.TargetFPS, *headroom)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d (+%d warmup)\n", *seeds, *ticks, *warmup)

	var evals []*Evaluation
	startTime := time.Now()
	capacity := largestFitting(*minRovers, *maxRovers, func(n int) bool {
		ev, err := evaluator.Measure(n)
		if err != nil {
			log.Fatalf("evaluating %d rovers: %v", n, err)
		}
		ev.Eval = len(evals) + 1
		evals = append(evals, &ev)

		fmt.Printf("Eval %d: rovers=%d avg_tick=%.0fus projected=%.0ffps tessellate=%.0f%% fits=%v | elapsed: %s\n",
			ev.Eval, ev.Rovers, ev.AvgTickUs, ev.ProjectedFPS, ev.TessellatePct, ev.Fits,
			formatDuration(time.Since(startTime)))
		return ev.Fits
	})

	logPath := filepath.Join(*outputDir, "capacity_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()
	if err := gocsv.MarshalFile(&evals, logFile); err != nil {
		log.Printf("failed to write evaluation log: %v", err)
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", len(evals), formatDuration(time.Since(startTime)))
	if capacity < *minRovers {
		fmt.Printf("Even %d rovers exceed the budget; lower target_fps or points.count\n", *minRovers)
		return
	}
	fmt.Printf("Capacity: %d rovers (%d generators)\n", capacity, capacity+baseCfg.Points.Count)

	// Save a config sized to the measured capacity
	bestCfg, _ := config.Load(*configPath)
	bestCfg.Rovers.Count = capacity
	if bestCfg.Rovers.MaxPopulation > capacity {
		bestCfg.Rovers.MaxPopulation = capacity
	}

	configOutPath := filepath.Join(*outputDir, "capacity_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write config: %v", err)
	} else {
		fmt.Printf("\nConfig saved to: %s\n", configOutPath)
	}
}
