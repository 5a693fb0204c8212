// Package renderer draws Voronoi cells. Each backend is a Sink that accepts
// one filled polygon per generator and is flushed once per tick.
package renderer

import (
	"errors"

	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
)

// ErrShaderInit is returned when a GPU backend cannot compile or link its
// shaders.
var ErrShaderInit = errors.New("shader initialization failed")

// Sink receives the cells of one tick. Polygons are in arena pixels and
// implicitly closed. The slice is only valid during the call.
type Sink interface {
	FillPolygon(poly []geom.Vec, c palette.Color)
	Flush()
}

// Resizer is implemented by sinks that need the arena size.
type Resizer interface {
	Resize(width, height float64)
}

// Discard drops everything.
type Discard struct{}

func (Discard) FillPolygon([]geom.Vec, palette.Color) {}
func (Discard) Flush()                                {}

// Fill is one recorded FillPolygon call.
type Fill struct {
	Poly  []geom.Vec
	Color palette.Color
}

// Recorder keeps the fills of the last flushed tick and of the tick in
// progress.
type Recorder struct {
	pending []Fill
	Frame   []Fill // last flushed tick
	Flushes int
	Width   float64
	Height  float64
}

// FillPolygon implements Sink.
func (r *Recorder) FillPolygon(poly []geom.Vec, c palette.Color) {
	cp := make([]geom.Vec, len(poly))
	copy(cp, poly)
	r.pending = append(r.pending, Fill{Poly: cp, Color: c})
}

// Flush implements Sink.
func (r *Recorder) Flush() {
	r.Frame = r.pending
	r.pending = nil
	r.Flushes++
}

// Resize implements Resizer.
func (r *Recorder) Resize(width, height float64) {
	r.Width, r.Height = width, height
}
