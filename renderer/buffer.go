package renderer

import (
	"github.com/pthm-cable/rovers/geom"
	"github.com/pthm-cable/rovers/palette"
)

// TriangleBuffer is a triangle list in normalized device coordinates with a
// parallel per-vertex RGBA color buffer. Each cell is fanned from its
// centroid to consecutive boundary vertex pairs.
type TriangleBuffer struct {
	Positions []float32 // x, y per vertex
	Colors    []uint8   // r, g, b, a per vertex

	width, height float64
}

// NewTriangleBuffer creates a buffer mapping an arena of the given size.
func NewTriangleBuffer(width, height float64) *TriangleBuffer {
	return &TriangleBuffer{width: width, height: height}
}

// Resize changes the arena size used for the NDC transform.
func (b *TriangleBuffer) Resize(width, height float64) {
	b.width, b.height = width, height
}

// Reset empties the buffer, keeping its storage.
func (b *TriangleBuffer) Reset() {
	b.Positions = b.Positions[:0]
	b.Colors = b.Colors[:0]
}

// Vertices returns the number of vertices held.
func (b *TriangleBuffer) Vertices() int { return len(b.Positions) / 2 }

// AddFan appends len(poly) triangles for one cell.
func (b *TriangleBuffer) AddFan(poly []geom.Vec, c palette.Color) {
	if len(poly) < 3 {
		return
	}
	rgba := c.RGBA()
	center := geom.ToNDC(geom.Centroid(poly), b.width, b.height)

	prev := geom.ToNDC(poly[len(poly)-1], b.width, b.height)
	for _, p := range poly {
		cur := geom.ToNDC(p, b.width, b.height)
		for _, v := range [3]geom.Vec{center, prev, cur} {
			b.Positions = append(b.Positions, float32(v.X), float32(v.Y))
			b.Colors = append(b.Colors, rgba.R, rgba.G, rgba.B, rgba.A)
		}
		prev = cur
	}
}
