package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/renderer"
	"github.com/pthm-cable/rovers/renderer/rlsink"
)

// runWindow opens a raylib window and ticks the board once per frame, paced
// by rl.SetTargetFPS. The board draws into a recorder that is replayed every
// frame, so the last frame stays on screen while paused or stopped. The loop
// also ends when ctx is canceled.
func runWindow(ctx context.Context, cfg *config.Config, opts board.Options, runID string, maxTicks int64) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Voronoi Rovers")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	sink, unload, err := newWindowSink(cfg)
	if err != nil {
		return err
	}
	defer unload()

	rec := &renderer.Recorder{}
	opts.Sink = rec
	b, err := board.New(cfg, opts)
	if err != nil {
		return err
	}

	hud := rlsink.NewHUD()
	showHUD := cfg.Render.ShowHUD
	inspector := rlsink.NewInspector(int32(rl.GetScreenWidth()))
	pick := func(x, y float64) int {
		if showHUD && hud.Contains(float32(x), float32(y)) {
			return -1
		}
		return b.GeneratorAt(geom.Vec{X: x, Y: y})
	}
	paused := false
	togglePause := func() {
		if b.Stopped() {
			return
		}
		paused = !paused
		if !paused {
			b.Resume()
		}
		slog.Info("pause toggled", "paused", paused, "tick", b.Ticks())
	}
	background := b.Background().RGBA()

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsWindowResized() {
			w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
			b.Resize(w, h)
			if r, ok := sink.(renderer.Resizer); ok {
				r.Resize(w, h)
			}
			inspector.SetScreenWidth(int32(w))
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			togglePause()
		}
		if rl.IsKeyPressed(rl.KeyH) {
			showHUD = !showHUD
		}
		screenshot := rl.IsKeyPressed(rl.KeyS)
		inspector.HandleInput(pick)

		if !paused {
			b.Tick()
		}

		rl.BeginDrawing()
		rl.ClearBackground(background)
		// Host redraw of the last recorded frame. A stopped or paused board
		// submits nothing; raylib still needs the frame repainted.
		for _, f := range rec.Frame {
			sink.FillPolygon(f.Poly, f.Color)
		}
		sink.Flush()
		if b.Stopped() {
			rlsink.DrawStopped(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
		}

		if sel, ok := inspector.Selected(); ok {
			inspector.Draw(b.Info(sel))
		}

		if showHUD {
			action := hud.Draw(rlsink.HUDData{
				Tick:      b.Ticks(),
				Points:    b.Points(),
				Rovers:    b.Rovers(),
				FPS:       b.FPS(),
				LowFrames: b.LowFrames(),
				Stopped:   b.Stopped(),
				Paused:    paused,
				RunID:     runID,
			})
			switch action {
			case rlsink.HUDTogglePause:
				togglePause()
			case rlsink.HUDHide:
				showHUD = false
			}
			hud.DrawControls(int32(rl.GetScreenHeight()))
		}
		rl.EndDrawing()
		opts.Perf.RecordFrame()

		if screenshot {
			name := fmt.Sprintf("rovers-%d.png", b.Ticks())
			rl.TakeScreenshot(name)
			slog.Info("screenshot saved", "file", name)
		}

		if maxTicks > 0 && b.Ticks() >= maxTicks {
			slog.Info("max ticks reached", "tick", b.Ticks())
			break
		}
	}
	return nil
}

// newWindowSink picks the raylib sink for the configured backend. A GPU sink
// whose shaders fail to build falls back to path filling.
func newWindowSink(cfg *config.Config) (renderer.Sink, func(), error) {
	if cfg.Render.Backend == config.BackendGPU {
		gpu, err := rlsink.NewGPUSink(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
		if err == nil {
			return gpu, gpu.Unload, nil
		}
		if !errors.Is(err, renderer.ErrShaderInit) {
			return nil, nil, err
		}
		slog.Error("gpu backend unavailable, falling back to path fill", "error", err)
	}
	return rlsink.NewPathSink(cfg.Render.Outline), func() {}, nil
}
