package tessellation

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/rovers/geom"
)

const eps = 1e-9

var square = r2.Box{Max: r2.Vec{X: 100, Y: 100}}

func TestSingleSiteCoversClip(t *testing.T) {
	d := NewDiagram()
	d.Update([]float64{50, 50}, square)

	cell := d.Cell(0)
	if len(cell) != 4 {
		t.Fatalf("expected 4 vertices, got %v", cell)
	}
	if a := math.Abs(geom.SignedArea(cell)); !scalar.EqualWithinAbs(a, 10000, eps) {
		t.Errorf("expected full area 10000, got %f", a)
	}
	for _, p := range cell {
		if (p.X != 0 && p.X != 100) || (p.Y != 0 && p.Y != 100) {
			t.Errorf("vertex %v is not a corner", p)
		}
	}
}

func TestTwoSitesBisector(t *testing.T) {
	d := NewDiagram()
	d.Update([]float64{0, 50, 100, 50}, square)

	left, right := d.Cell(0), d.Cell(1)
	if left == nil || right == nil {
		t.Fatal("expected both cells")
	}
	for _, p := range left {
		if p.X > 50+eps {
			t.Errorf("left cell vertex %v crosses x=50", p)
		}
	}
	for _, p := range right {
		if p.X < 50-eps {
			t.Errorf("right cell vertex %v crosses x=50", p)
		}
	}
	if a := math.Abs(geom.SignedArea(left)); !scalar.EqualWithinAbs(a, 5000, eps) {
		t.Errorf("expected half area, got %f", a)
	}
}

func TestCoincidentSites(t *testing.T) {
	d := NewDiagram()
	d.Update([]float64{30, 30, 30, 30, 70, 70}, square)

	if d.Cell(0) == nil {
		t.Error("first of two coincident sites should keep its cell")
	}
	if d.Cell(1) != nil {
		t.Errorf("second coincident site should have no cell, got %v", d.Cell(1))
	}
	if d.Cell(2) == nil {
		t.Error("distinct site should have a cell")
	}
}

func TestSiteOutsideClip(t *testing.T) {
	d := NewDiagram()
	// The far site's bisector with the inner one lies outside the box.
	d.Update([]float64{50, 50, 500, 50}, square)

	if d.Cell(0) == nil {
		t.Fatal("inner site should have a cell")
	}
	if d.Cell(1) != nil {
		t.Errorf("far site should have no cell inside the box, got %v", d.Cell(1))
	}
}

func TestSiteJustOutsideClipKeepsStrip(t *testing.T) {
	d := NewDiagram()
	// Bisector at x=80, inside the box.
	d.Update([]float64{50, 50, 110, 50}, square)

	cell := d.Cell(1)
	if cell == nil {
		t.Fatal("outside site should own the strip nearest to it")
	}
	if a := math.Abs(geom.SignedArea(cell)); !scalar.EqualWithinAbs(a, 2000, eps) {
		t.Errorf("expected strip area 2000, got %g", a)
	}
	if a := math.Abs(geom.SignedArea(d.Cell(0))); !scalar.EqualWithinAbs(a, 8000, eps) {
		t.Errorf("expected inner area 8000, got %g", a)
	}
}

func TestNonFiniteSite(t *testing.T) {
	d := NewDiagram()
	d.Update([]float64{50, 50, math.NaN(), 10}, square)
	if d.Cell(1) != nil {
		t.Error("NaN site should have no cell")
	}
	if a := math.Abs(geom.SignedArea(d.Cell(0))); !scalar.EqualWithinAbs(a, 10000, eps) {
		t.Errorf("NaN site should not clip its neighbour, area %f", a)
	}
}

func TestCellsPartitionClip(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))
	clip := r2.Box{Min: r2.Vec{X: -20, Y: -20}, Max: r2.Vec{X: 340, Y: 260}}

	coords := make([]float64, 0, 2*150)
	for i := 0; i < 150; i++ {
		coords = append(coords, rng.Float64()*320, rng.Float64()*240)
	}

	d := NewDiagram()
	d.Update(coords, clip)

	var total float64
	for i := 0; i < d.Len(); i++ {
		cell := d.Cell(i)
		if cell == nil {
			t.Fatalf("cell %d missing", i)
		}
		total += math.Abs(geom.SignedArea(cell))

		// Every vertex is at least as close to its own site as to any other.
		site := r2.Vec{X: coords[2*i], Y: coords[2*i+1]}
		for _, p := range cell {
			own := r2.Norm(r2.Sub(p, site))
			for j := 0; j < d.Len(); j++ {
				other := r2.Vec{X: coords[2*j], Y: coords[2*j+1]}
				if r2.Norm(r2.Sub(p, other)) < own-1e-6 {
					t.Fatalf("vertex %v of cell %d is closer to site %d", p, i, j)
				}
			}
		}
	}

	size := clip.Size()
	if want := size.X * size.Y; !scalar.EqualWithinRel(total, want, 1e-9) {
		t.Errorf("cells cover %f, want %f", total, want)
	}
}

func TestUpdateReusesStorage(t *testing.T) {
	d := NewDiagram()
	d.Update([]float64{10, 10, 90, 90, 50, 20}, square)
	d.Update([]float64{50, 50}, square)

	if d.Len() != 1 {
		t.Fatalf("expected 1 generator, got %d", d.Len())
	}
	if d.Cell(1) != nil {
		t.Error("out of range cell should be nil")
	}
	if a := math.Abs(geom.SignedArea(d.Cell(0))); !scalar.EqualWithinAbs(a, 10000, eps) {
		t.Errorf("expected full area after shrink, got %f", a)
	}
}

func BenchmarkUpdate(b *testing.B) {
	rng := rand.New(rand.NewPCG(1, 1))
	coords := make([]float64, 0, 2*300)
	for i := 0; i < 300; i++ {
		coords = append(coords, rng.Float64()*1280, rng.Float64()*800)
	}
	clip := r2.Box{Min: r2.Vec{X: -50, Y: -50}, Max: r2.Vec{X: 1330, Y: 850}}
	d := NewDiagram()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Update(coords, clip)
	}
}
