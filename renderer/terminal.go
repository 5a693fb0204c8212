package renderer

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
)

// halfBlock draws the top pixel in the foreground color and the bottom one
// in the background color, doubling vertical resolution.
const halfBlock = '▀'

// TerminalSink rasterizes cells into a tcell screen. Each character cell
// holds two pixels stacked vertically; a pixel takes the color of the
// polygon containing its center.
type TerminalSink struct {
	screen     tcell.Screen
	background palette.Color

	width, height float64 // arena size
	cols, rows    int     // pixel grid, rows = 2 * screen rows
	pixels        []palette.Color
}

// NewTerminalSink creates a sink for an arena of width×height pixels drawn
// onto screen. The screen must already be initialized.
func NewTerminalSink(screen tcell.Screen, width, height float64, background palette.Color) *TerminalSink {
	s := &TerminalSink{
		screen:     screen,
		background: background,
		width:      width,
		height:     height,
	}
	s.fitScreen()
	return s
}

// Resize implements Resizer.
func (s *TerminalSink) Resize(width, height float64) {
	s.width, s.height = width, height
}

// SetBackground changes the color of pixels no cell covers.
func (s *TerminalSink) SetBackground(c palette.Color) {
	s.background = c
	s.fitScreen()
}

// fitScreen sizes the pixel grid to the screen and clears it.
func (s *TerminalSink) fitScreen() {
	w, h := s.screen.Size()
	s.cols, s.rows = w, 2*h
	n := s.cols * s.rows
	if cap(s.pixels) < n {
		s.pixels = make([]palette.Color, n)
	}
	s.pixels = s.pixels[:n]
	for i := range s.pixels {
		s.pixels[i] = s.background
	}
}

// FillPolygon implements Sink.
func (s *TerminalSink) FillPolygon(poly []geom.Vec, c palette.Color) {
	if len(poly) < 3 || s.cols == 0 || s.rows == 0 {
		return
	}
	sx := s.width / float64(s.cols)
	sy := s.height / float64(s.rows)

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	x0 := clampInt(int(math.Floor(minX/sx)), 0, s.cols-1)
	x1 := clampInt(int(math.Ceil(maxX/sx)), 0, s.cols-1)
	y0 := clampInt(int(math.Floor(minY/sy)), 0, s.rows-1)
	y1 := clampInt(int(math.Ceil(maxY/sy)), 0, s.rows-1)

	for gy := y0; gy <= y1; gy++ {
		for gx := x0; gx <= x1; gx++ {
			center := geom.Vec{X: (float64(gx) + 0.5) * sx, Y: (float64(gy) + 0.5) * sy}
			if geom.Contains(poly, center) {
				s.pixels[gy*s.cols+gx] = c
			}
		}
	}
}

// Flush implements Sink. It writes the pixel grid to the screen, shows it and
// clears the grid for the next tick, picking up any screen size change.
func (s *TerminalSink) Flush() {
	w, h := s.screen.Size()
	for y := 0; y < h && 2*y+1 < s.rows; y++ {
		for x := 0; x < w && x < s.cols; x++ {
			top := s.pixels[2*y*s.cols+x]
			bottom := s.pixels[(2*y+1)*s.cols+x]
			style := tcell.StyleDefault.
				Foreground(tcellColor(top)).
				Background(tcellColor(bottom))
			s.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	s.screen.Show()
	s.fitScreen()
}

func tcellColor(c palette.Color) tcell.Color {
	rgba := c.RGBA()
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
