package core

import "sort"

// Size describes the dimensions of a simulation grid in cells.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Sim defines the contract a front end drives. Cells returns one byte per
// cell in row-major order, non-zero meaning alive.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Toggler is implemented by sims that accept click-to-toggle edits.
type Toggler interface {
	Toggle(x, y int) error
}

// Clearer is implemented by sims that can wipe every cell.
type Clearer interface {
	Clear()
}

// NeighborCounter is implemented by sims that can report, per cell, how
// many living neighbors it has. Values follow the Cells layout.
type NeighborCounter interface {
	NeighborCounts() []uint8
}

// Factory constructs a Sim from an optional string configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := sims[name]
	return f, ok
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
