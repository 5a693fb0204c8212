// Palette preview tool - interactive color range tuning with sliders.
//
// Usage: go run ./cmd/palettepreview -config config.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/rovers/board"
	"github.com/pthm-cable/rovers/config"
	"github.com/pthm-cable/rovers/renderer"
	"github.com/pthm-cable/rovers/renderer/rlsink"
)

const (
	windowWidth   = 1100
	windowHeight  = 720
	previewWidth  = 640
	previewHeight = 480
	panelWidth    = windowWidth - previewWidth - 30
)

// slider binds one HSV bound to a slider row.
type slider struct {
	label    string
	value    *float64
	min, max float32
}

func rangeSliders(name string, r *config.HSVRange) []slider {
	return []slider{
		{name + " hue min", &r.HueMin, 0, 359},
		{name + " hue max", &r.HueMax, 0, 359},
		{name + " sat min", &r.SatMin, 0, 1},
		{name + " sat max", &r.SatMax, 0, 1},
		{name + " val min", &r.ValMin, 0, 1},
		{name + " val max", &r.ValMax, 0, 1},
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "palette.yaml", "Where Save writes the full config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg.Screen.Width, cfg.Screen.Height = previewWidth, previewHeight
	initial := cfg.Colors

	rl.InitWindow(windowWidth, windowHeight, "Palette Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	target := rl.LoadRenderTexture(previewWidth, previewHeight)
	defer rl.UnloadRenderTexture(target)
	sink := rlsink.NewPathSink(cfg.Render.Outline)

	seed := uint64(1)
	rec := &renderer.Recorder{}
	var b *board.Board
	var buildErr error
	rebuild := func() {
		if buildErr = cfg.Validate(); buildErr != nil {
			return
		}
		b, buildErr = board.New(cfg, board.Options{
			Rand: rand.New(rand.NewPCG(seed, seed)),
			Sink: rec,
		})
		if buildErr == nil {
			b.Tick()
		}
	}
	rebuild()

	sliders := append(rangeSliders("Bright", &cfg.Colors.Bright), rangeSliders("Dark", &cfg.Colors.Dark)...)
	animating := false
	status := ""

	for !rl.WindowShouldClose() {
		if animating && b != nil {
			if b.Tick() == board.Stopped {
				animating = false
			}
		}

		// Draw the board into the preview texture
		rl.BeginTextureMode(target)
		if b != nil {
			rl.ClearBackground(b.Background().RGBA())
			for _, f := range rec.Frame {
				sink.FillPolygon(f.Poly, f.Color)
			}
			sink.Flush()
		} else {
			rl.ClearBackground(rl.Black)
		}
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTextureRec(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewWidth, Height: -previewHeight},
			rl.Vector2{X: 10, Y: 10},
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewWidth, previewHeight, rl.DarkGray)

		statsY := int32(previewHeight + 25)
		if b != nil {
			rl.DrawText(fmt.Sprintf("Tick: %d  Points: %d  Rovers: %d  Seed: %d", b.Ticks(), b.Points(), b.Rovers(), seed), 15, statsY, 16, rl.DarkGray)
		}
		if buildErr != nil {
			rl.DrawText(buildErr.Error(), 15, statsY+20, 16, rl.Red)
		} else if status != "" {
			rl.DrawText(status, 15, statsY+20, 16, rl.DarkGreen)
		}

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Color Ranges", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		changed := false
		for _, s := range sliders {
			rl.DrawText(s.label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 16},
				"", "",
				float32(*s.value), s.min, s.max,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *s.value), int32(panelX+float32(panelWidth-70)), int32(panelY), 14, rl.DarkGray)
			if float64(v) != *s.value {
				*s.value = float64(v)
				changed = true
			}
			panelY += 24
		}
		if changed {
			status = ""
			rebuild()
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating && b != nil
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = uint64(rl.GetRandomValue(1, 99999))
			rebuild()
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg.Colors = initial
			status = ""
			rebuild()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Save") {
			if err := cfg.WriteYAML(*outPath); err != nil {
				slog.Error("failed to save config", "error", err)
				status = ""
				buildErr = err
			} else {
				status = "Saved to " + *outPath
			}
		}

		rl.DrawText("Press C to copy the colors section to the clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			out, err := yaml.Marshal(map[string]config.ColorsConfig{"colors": cfg.Colors})
			if err == nil {
				rl.SetClipboardText(string(out))
				status = "Colors copied"
			}
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
