package rlsink

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds everything the overlay shows.
type HUDData struct {
	Tick      int64
	Points    int
	Rovers    int
	FPS       float64
	LowFrames int
	Stopped   bool
	Paused    bool
	RunID     string
}

// HUDAction is what the user clicked this frame.
type HUDAction int

const (
	HUDNone HUDAction = iota
	HUDTogglePause
	HUDHide
)

// HUD renders the status overlay and its buttons.
type HUD struct {
	x, y float32
}

// NewHUD creates a HUD anchored at the top-left corner.
func NewHUD() *HUD {
	return &HUD{x: 10, y: 10}
}

// Draw renders the HUD and returns the button pressed, if any.
func (h *HUD) Draw(data HUDData) HUDAction {
	x, y := int32(h.x), int32(h.y)

	rl.DrawRectangle(x-5, y-5, 300, 110, rl.Fade(rl.Black, 0.5))
	rl.DrawText(fmt.Sprintf("Tick: %d | FPS: %.0f", data.Tick, data.FPS), x, y, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Points: %d | Rovers: %d", data.Points, data.Rovers), x, y+20, 16, rl.LightGray)

	status, col := "Running", rl.Green
	switch {
	case data.Stopped:
		status, col = "STOPPED (frame governor)", rl.Red
	case data.Paused:
		status, col = "PAUSED", rl.Yellow
	case data.LowFrames > 0:
		status, col = fmt.Sprintf("Running, %d slow frames", data.LowFrames), rl.Orange
	}
	rl.DrawText(status, x, y+40, 16, col)

	action := HUDNone
	if gui.Button(rl.Rectangle{X: h.x, Y: h.y + 65, Width: 90, Height: 30}, pauseLabel(data.Paused)) && !data.Stopped {
		action = HUDTogglePause
	}
	if gui.Button(rl.Rectangle{X: h.x + 100, Y: h.y + 65, Width: 90, Height: 30}, "Hide HUD") {
		action = HUDHide
	}
	return action
}

// Contains reports whether a screen position falls on the HUD panel.
func (h *HUD) Contains(x, y float32) bool {
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, rl.Rectangle{X: h.x - 5, Y: h.y - 5, Width: 300, Height: 110})
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32) {
	rl.DrawText("Space: pause | H: toggle HUD | S: screenshot | Click: inspect | Esc: quit", 10, screenHeight-25, 14, rl.Gray)
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// DrawStopped dims the frozen frame and centers a banner over it. Shown
// whether or not the HUD is visible.
func DrawStopped(screenWidth, screenHeight int32) {
	const text, size = "STOPPED: frame rate below cutoff", 24
	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.Fade(rl.Black, 0.35))
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (screenWidth-w)/2, screenHeight/2-size/2, size, rl.Red)
}
