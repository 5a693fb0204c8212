// Package tessellation computes clipped Voronoi cells for a flat coordinate
// buffer and exposes them by generator index.
package tessellation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rovers/geom"
)

const (
	// Sites closer than this are treated as one; the lower index keeps the cell.
	coincidentEpsilon = 1e-9
	// Clipped cells with less area are reported as missing.
	minCellArea = 1e-9
)

// Diagram is a Voronoi diagram clipped to a rectangle. Each cell is built by
// clipping the rectangle against the bisector half-planes of the other sites,
// nearest first, stopping once no remaining site can reach the cell.
type Diagram struct {
	clip  r2.Box
	sites []r2.Vec
	cells [][]r2.Vec

	order   []int
	dist2   []float64
	scratch []r2.Vec
}

// NewDiagram returns an empty diagram.
func NewDiagram() *Diagram {
	return &Diagram{}
}

// Update recomputes every cell for the sites in coords (x0, y0, x1, y1, ...)
// clipped to clip. Cell storage from the previous update is reused.
func (d *Diagram) Update(coords []float64, clip r2.Box) {
	n := len(coords) / 2
	d.clip = clip.Canon()

	d.sites = resize(d.sites, n)
	for i := range d.sites {
		d.sites[i] = r2.Vec{X: coords[2*i], Y: coords[2*i+1]}
	}

	if cap(d.cells) < n {
		grown := make([][]r2.Vec, n)
		copy(grown, d.cells[:cap(d.cells)])
		d.cells = grown
	}
	d.cells = d.cells[:n]

	for i := range d.sites {
		d.cells[i] = d.computeCell(i, d.cells[i][:0])
	}
}

// Len returns the number of generators in the last update.
func (d *Diagram) Len() int { return len(d.sites) }

// Cell returns the clipped polygon of generator i, or nil when the cell is
// degenerate. The returned slice is owned by the diagram and is overwritten by
// the next Update.
func (d *Diagram) Cell(i int) []r2.Vec {
	if i < 0 || i >= len(d.cells) {
		return nil
	}
	if len(d.cells[i]) < 3 {
		return nil
	}
	return d.cells[i]
}

func (d *Diagram) computeCell(i int, poly []r2.Vec) []r2.Vec {
	site := d.sites[i]
	if !geom.Finite(site) {
		return poly[:0]
	}

	poly = append(poly,
		d.clip.Min,
		r2.Vec{X: d.clip.Max.X, Y: d.clip.Min.Y},
		d.clip.Max,
		r2.Vec{X: d.clip.Min.X, Y: d.clip.Max.Y},
	)

	d.sortByDistance(i)
	reach := maxDist2(site, poly)

	for _, j := range d.order {
		dd := d.dist2[j]
		if dd > 4*reach {
			break
		}
		if dd < coincidentEpsilon*coincidentEpsilon {
			if j < i {
				return poly[:0]
			}
			continue
		}

		poly = d.clipHalfPlane(poly, site, d.sites[j])
		if len(poly) < 3 {
			return poly[:0]
		}
		reach = maxDist2(site, poly)
	}

	if math.Abs(geom.SignedArea(poly)) < minCellArea {
		return poly[:0]
	}
	return poly
}

// sortByDistance fills d.order with every other finite site index, nearest
// to site i first.
func (d *Diagram) sortByDistance(i int) {
	site := d.sites[i]
	d.order = d.order[:0]
	d.dist2 = resizeFloats(d.dist2, len(d.sites))
	for j, s := range d.sites {
		if j == i || !geom.Finite(s) {
			continue
		}
		d.dist2[j] = r2.Norm2(r2.Sub(s, site))
		d.order = append(d.order, j)
	}
	sort.Slice(d.order, func(a, b int) bool {
		return d.dist2[d.order[a]] < d.dist2[d.order[b]]
	})
}

// clipHalfPlane keeps the part of the convex polygon closer to a than to b.
func (d *Diagram) clipHalfPlane(poly []r2.Vec, a, b r2.Vec) []r2.Vec {
	normal := r2.Sub(b, a)
	mid := r2.Scale(0.5, r2.Add(a, b))
	side := func(p r2.Vec) float64 { return r2.Dot(r2.Sub(p, mid), normal) }

	out := d.scratch[:0]
	prev := poly[len(poly)-1]
	prevSide := side(prev)
	for _, cur := range poly {
		curSide := side(cur)
		if (prevSide < 0 && curSide > 0) || (prevSide > 0 && curSide < 0) {
			t := prevSide / (prevSide - curSide)
			out = append(out, r2.Add(prev, r2.Scale(t, r2.Sub(cur, prev))))
		}
		if curSide <= 0 {
			out = append(out, cur)
		}
		prev, prevSide = cur, curSide
	}

	// Swap buffers so the caller's slice becomes the next scratch.
	d.scratch = poly[:0]
	return out
}

func maxDist2(site r2.Vec, poly []r2.Vec) float64 {
	var best float64
	for _, p := range poly {
		if dd := r2.Norm2(r2.Sub(p, site)); dd > best {
			best = dd
		}
	}
	return best
}

func resize(s []r2.Vec, n int) []r2.Vec {
	if cap(s) < n {
		return make([]r2.Vec, n)
	}
	return s[:n]
}

func resizeFloats(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}
