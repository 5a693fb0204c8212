package rlsink

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/rovers/board"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 255, B: 255, A: 220}
)

// Inspector selects a generator by clicking its cell and shows its state.
type Inspector struct {
	selected    int
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector docked to the right edge.
func NewInspector(screenWidth int32) *Inspector {
	ins := &Inspector{panelY: 10}
	ins.SetScreenWidth(screenWidth)
	return ins
}

// SetScreenWidth re-docks the panel after a window resize.
func (ins *Inspector) SetScreenWidth(w int32) {
	ins.panelX = w - PanelWidth - 10
}

// HandleInput processes clicks. pick maps a screen position to a generator
// index or -1.
func (ins *Inspector) HandleInput(pick func(x, y float64) int) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return
	}
	mouse := rl.GetMousePosition()
	mx, my := int32(mouse.X), int32(mouse.Y)

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return
		}
		// Clicks on the panel itself select nothing
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth && my >= ins.panelY && my <= ins.panelY+ins.panelHeight() {
			return
		}
	}

	if i := pick(float64(mouse.X), float64(mouse.Y)); i >= 0 {
		ins.selected = i
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected generator index.
func (ins *Inspector) Selected() (int, bool) {
	return ins.selected, ins.hasSelected
}

func (ins *Inspector) panelHeight() int32 {
	return HeaderHeight + 2*PanelPadding + 7*20 + 40
}

// Draw outlines the selected cell and renders the panel. A selection whose
// generator no longer exists is dropped.
func (ins *Inspector) Draw(info board.Info, ok bool) {
	if !ins.hasSelected {
		return
	}
	if !ok {
		ins.Deselect()
		return
	}

	if n := len(info.Cell); n >= 3 {
		prev := info.Cell[n-1]
		for _, cur := range info.Cell {
			rl.DrawLineEx(
				rl.Vector2{X: float32(prev.X), Y: float32(prev.Y)},
				rl.Vector2{X: float32(cur.X), Y: float32(cur.Y)},
				2, ColorSelection,
			)
			prev = cur
		}
	}
	rl.DrawCircleV(rl.Vector2{X: float32(info.Location.X), Y: float32(info.Location.Y)}, 3, ColorSelection)

	h := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(h)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText("INSPECTOR", ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	kind := "Fixed point"
	if info.Rover {
		kind = "Rover"
	}
	rl.DrawText(fmt.Sprintf("#%d  %s", info.Index, kind), x, y, 14, ColorHeaderText)
	y += 22
	rl.DrawLine(x, y, ins.panelX+PanelWidth-PanelPadding, y, ColorPanelBorder)
	y += 8

	y += drawLabel(x, y, "Position", fmt.Sprintf("(%.0f, %.0f)", info.Location.X, info.Location.Y))
	y += drawSwatch(x, y, info)
	if !info.Rover {
		return
	}
	m := info.Motion
	y += drawLabel(x, y, "Speed", fmt.Sprintf("%.1f px/s", m.Speed))
	y += drawLabel(x, y, "Spawn", fmt.Sprintf("(%.0f, %.0f)", m.Spawn.X, m.Spawn.Y))
	y += drawLabel(x, y, "Despawn", fmt.Sprintf("(%.0f, %.0f)", m.Despawn.X, m.Despawn.Y))
	y += drawLabel(x, y, "Age", fmt.Sprintf("%d ticks", info.Age))
	drawAngle(x, y, "Heading", info.Heading)
}

func drawLabel(x, y int32, name, value string) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, value), x, y, 16, ColorText)
	return 20
}

// drawSwatch shows the fill color with its hex code and HSV components.
func drawSwatch(x, y int32, info board.Info) int32 {
	c := colorful.Color{R: info.Color.R, G: info.Color.G, B: info.Color.B}
	h, s, v := c.Hsv()
	rl.DrawRectangle(x, y, 16, 16, info.Color.RGBA())
	rl.DrawText(fmt.Sprintf("%s  h%.0f s%.2f v%.2f", c.Hex(), h, s, v), x+22, y, 14, ColorTextDim)
	return 20
}

// drawAngle renders a compass-style heading indicator.
func drawAngle(x, y int32, name string, radians float64) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	radius := float32(14)
	cx := float32(x) + 100
	cy := float32(y) + radius
	rl.DrawCircle(int32(cx), int32(cy), radius, ColorAngleBg)

	sin, cos := math.Sincos(radians)
	rl.DrawLineEx(
		rl.Vector2{X: cx, Y: cy},
		rl.Vector2{X: cx + radius*float32(cos), Y: cy + radius*float32(sin)},
		2, ColorAngleNeedle,
	)
	rl.DrawText(fmt.Sprintf("%.0f°", radians*180/math.Pi), int32(cx+radius+8), y+6, 14, ColorTextDim)
	return int32(2*radius) + 4
}
