// Package rlsink holds the raylib render backends and the HUD overlay.
package rlsink

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
)

// PathSink fills each cell as a raylib triangle fan in screen pixels. It draws
// into whatever frame the caller has open with rl.BeginDrawing.
type PathSink struct {
	Outline      bool
	OutlineColor rl.Color

	points []rl.Vector2
}

// NewPathSink creates a path sink. Must be called after the raylib window is
// created.
func NewPathSink(outline bool) *PathSink {
	// Cell winding depends on the diagram, not on raylib's convention.
	rl.DisableBackfaceCulling()
	return &PathSink{
		Outline:      outline,
		OutlineColor: rl.NewColor(0, 0, 0, 96),
	}
}

// FillPolygon implements renderer.Sink.
func (s *PathSink) FillPolygon(poly []geom.Vec, c palette.Color) {
	s.points = s.points[:0]
	for _, p := range poly {
		s.points = append(s.points, rl.Vector2{X: float32(p.X), Y: float32(p.Y)})
	}
	rl.DrawTriangleFan(s.points, c.RGBA())

	if !s.Outline {
		return
	}
	prev := s.points[len(s.points)-1]
	for _, cur := range s.points {
		rl.DrawLineV(prev, cur, s.OutlineColor)
		prev = cur
	}
}

// Flush implements renderer.Sink. raylib batches draws until EndDrawing.
func (s *PathSink) Flush() {}
