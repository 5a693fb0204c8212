// Package geom provides the 2D vector helpers and arena bounds shared by the
// spawner, the tessellation and the render backends.
package geom

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D point or direction in arena pixel coordinates.
type Vec = r2.Vec

// Arena is the logical rectangle [0,Width]×[0,Height] the board simulates
// within, plus the margin Clip outside it where rovers are still simulated.
type Arena struct {
	Width  float64
	Height float64
	Clip   float64
}

// ClipBox returns [-Clip,-Clip]×[Width+Clip,Height+Clip].
func (a Arena) ClipBox() r2.Box {
	return r2.Box{
		Min: Vec{X: -a.Clip, Y: -a.Clip},
		Max: Vec{X: a.Width + a.Clip, Y: a.Height + a.Clip},
	}
}

// InClip reports whether p lies inside the clipped arena, edges included.
func (a Arena) InClip(p Vec) bool {
	return a.ClipBox().Contains(p)
}

// Interior reports whether p lies strictly inside the visible rectangle.
func (a Arena) Interior(p Vec) bool {
	return p.X > 0 && p.X < a.Width && p.Y > 0 && p.Y < a.Height
}

// ClampToClip clamps each coordinate of p into the clipped arena.
func (a Arena) ClampToClip(p Vec) Vec {
	return Vec{
		X: Clamp(p.X, -a.Clip, a.Width+a.Clip),
		Y: Clamp(p.Y, -a.Clip, a.Height+a.Clip),
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func Finite(p Vec) bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// BoundaryCrossings returns where the line y = m*x + b meets the four lines
// bounding [0,w]×[0,h] (top y=0, bottom y=h, left x=0, right x=w), sorted by
// x ascending. m must be finite and non-zero.
func BoundaryCrossings(m, b, w, h float64) [4]Vec {
	pts := [4]Vec{
		{X: -b / m, Y: 0},
		{X: (h - b) / m, Y: h},
		{X: 0, Y: b},
		{X: w, Y: m*w + b},
	}
	sort.Slice(pts[:], func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// ToNDC maps pixel coordinates to normalized device coordinates:
// x' = x/width*2-1, y' = y/height*2-1.
func ToNDC(p Vec, width, height float64) Vec {
	return Vec{
		X: p.X/width*2 - 1,
		Y: p.Y/height*2 - 1,
	}
}

// SignedArea returns the shoelace area of poly; positive when the vertices
// wind counter-clockwise in a y-up frame.
func SignedArea(poly []Vec) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	prev := poly[len(poly)-1]
	for _, p := range poly {
		sum += r2.Cross(prev, p)
		prev = p
	}
	return sum / 2
}

// Centroid returns the area centroid of a simple polygon. Polygons with
// (near) zero area fall back to the vertex mean.
func Centroid(poly []Vec) Vec {
	if len(poly) == 0 {
		return Vec{}
	}
	area := SignedArea(poly)
	if math.Abs(area) < 1e-12 {
		var sum Vec
		for _, p := range poly {
			sum = r2.Add(sum, p)
		}
		return r2.Scale(1/float64(len(poly)), sum)
	}
	var c Vec
	prev := poly[len(poly)-1]
	for _, p := range poly {
		cross := r2.Cross(prev, p)
		c = r2.Add(c, r2.Scale(cross, r2.Add(prev, p)))
		prev = p
	}
	return r2.Scale(1/(6*area), c)
}

// Contains reports whether p lies inside poly using the even-odd rule.
// Points exactly on an edge may fall either way.
func Contains(poly []Vec, p Vec) bool {
	inside := false
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		if (cur.Y > p.Y) != (prev.Y > p.Y) {
			x := prev.X + (p.Y-prev.Y)*(cur.X-prev.X)/(cur.Y-prev.Y)
			if p.X < x {
				inside = !inside
			}
		}
		prev = cur
	}
	return inside
}
