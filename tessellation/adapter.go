package tessellation

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Adapter owns the flat coordinate buffer fed to the diagram. Generator i
// occupies entries 2i and 2i+1; callers write every generator each tick and
// then call Sync once.
type Adapter struct {
	coords  []float64
	diagram *Diagram
}

// NewAdapter creates an adapter sized for n generators.
func NewAdapter(n int) *Adapter {
	a := &Adapter{diagram: NewDiagram()}
	a.Resize(n)
	return a
}

// Resize sets the buffer to hold n generators, reusing its backing array when
// it is large enough. Existing coordinates below n are kept.
func (a *Adapter) Resize(n int) {
	want := 2 * n
	if cap(a.coords) < want {
		grown := make([]float64, want, want+want/2)
		copy(grown, a.coords)
		a.coords = grown
		return
	}
	a.coords = a.coords[:want]
}

// Len returns the number of generators the buffer holds.
func (a *Adapter) Len() int { return len(a.coords) / 2 }

// Coords returns the live buffer. It must not be modified.
func (a *Adapter) Coords() []float64 { return a.coords }

// Set writes generator i's position.
func (a *Adapter) Set(i int, p r2.Vec) {
	a.coords[2*i] = p.X
	a.coords[2*i+1] = p.Y
}

// Sync recomputes the diagram for the current buffer clipped to clip.
func (a *Adapter) Sync(clip r2.Box) {
	a.diagram.Update(a.coords, clip)
}

// Cell returns generator i's polygon from the last Sync, or nil when the cell
// is degenerate.
func (a *Adapter) Cell(i int) []r2.Vec {
	return a.diagram.Cell(i)
}
