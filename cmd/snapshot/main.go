// Snapshot tool - runs the board for a number of ticks in a hidden window and
// writes the final frame to a PNG file.
//
// Usage: go run ./cmd/snapshot -ticks 300 -seed 7 -out rovers.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/renderer"
	"github.com/pthm-cable/rovers/renderer/rlsink"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "rovers.png", "Output PNG path")
	ticks := flag.Int("ticks", 300, "Ticks to simulate before the snapshot")
	seed := flag.Uint64("seed", 1, "RNG seed")
	gpu := flag.Bool("gpu", false, "Draw with the GPU triangle sink instead of path fill")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Rovers Snapshot")
	defer rl.CloseWindow()

	// The simulation runs off-screen at full speed; the governor must not
	// judge it by wall-clock frame time, so every tick reports the target rate.
	rec := &renderer.Recorder{}
	b, err := board.New(cfg, board.Options{
		Rand:  rand.New(rand.NewPCG(*seed, *seed)),
		Sink:  rec,
		Clock: steadyClock(cfg.Screen.TargetFPS),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create board: %v\n", err)
		os.Exit(1)
	}
	for i := 0; i < *ticks; i++ {
		b.Tick()
	}

	var sink renderer.Sink = rlsink.NewPathSink(cfg.Render.Outline)
	if *gpu {
		g, err := rlsink.NewGPUSink(float64(width), float64(height))
		if err != nil {
			slog.Error("gpu sink unavailable, using path fill", "error", err)
		} else {
			defer g.Unload()
			sink = g
		}
	}

	// Create render texture
	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(b.Background().RGBA())
	for _, f := range rec.Frame {
		sink.FillPolygon(f.Poly, f.Color)
	}
	sink.Flush()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Snapshot after %d ticks written to: %s (%dx%d, %d cells)\n",
			b.Ticks(), *outPath, width, height, len(rec.Frame))
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

// steadyClock advances exactly one target frame per call.
func steadyClock(fps int) func() time.Time {
	t := time.Unix(0, 0)
	step := time.Second / time.Duration(fps)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}
