package life

import "unsafe"

// Breed tags a cell's species. Only BreedNormal exists today.
type Breed uint8

const (
	BreedNormal Breed = iota
)

func (b Breed) String() string {
	switch b {
	case BreedNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Cell is one grid position. A cell reports its construction and every
// health flip to its tally; a nil tally leaves the cell uncounted.
type Cell struct {
	tally *Tally
	alive bool
	breed Breed
}

// NewCell returns a dead cell of the normal breed.
func NewCell(t *Tally) *Cell {
	return NewCellWith(t, BreedNormal, false)
}

// NewCellWith returns a cell with the given breed and health.
func NewCellWith(t *Tally, breed Breed, alive bool) *Cell {
	c := &Cell{tally: t, alive: alive, breed: breed}
	if t != nil {
		t.add(alive)
	}
	return c
}

// Alive reports whether the cell is alive.
func (c *Cell) Alive() bool { return c.alive }

// Breed returns the cell's breed.
func (c *Cell) Breed() Breed { return c.breed }

// SetAlive changes the cell's health. Setting the current value is a no-op.
func (c *Cell) SetAlive(alive bool) {
	if c.alive == alive {
		return
	}
	c.alive = alive
	if c.tally != nil {
		c.tally.flip(alive)
	}
}

// SetBreed changes the cell's breed.
func (c *Cell) SetBreed(b Breed) { c.breed = b }

// Size reports the cell's footprint for leak diagnostics.
func (c *Cell) Size() uintptr { return unsafe.Sizeof(*c) }

// Reclaim detaches the cell from its tally when a registry destroys it.
func (c *Cell) Reclaim() {
	if c.tally == nil {
		return
	}
	c.tally.exclude(c.alive)
	c.tally = nil
}
