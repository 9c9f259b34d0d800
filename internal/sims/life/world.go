// Package life implements a bounded Game of Life world whose cells carry
// population tallies and may be placed under reference-counted lifetime
// tracking.
package life

import (
	"strings"

	"go.uber.org/zap"

	"lifeworld/internal/blob"
	"lifeworld/internal/core"
	simerrors "lifeworld/internal/errors"
	"lifeworld/internal/lifecycle"
)

const (
	DefaultRows = 25
	DefaultCols = 35

	// MaxCells bounds rows*cols.
	MaxCells = 1 << 26
)

// World owns a rows x cols grid of cells and advances it in turns. A
// World is not safe for concurrent use; callers serialize Play and edits.
type World struct {
	cells    *blob.Fixed[*Cell]
	handles  []*lifecycle.Handle[*Cell]
	registry *lifecycle.Registry[*Cell]
	tally    *Tally
	logger   *zap.Logger

	cur  []bool
	next []bool

	rules  Rules
	rows   int
	cols   int
	turn   int
	closed bool
}

type worldOptions struct {
	rules    Rules
	registry *lifecycle.Registry[*Cell]
	tally    *Tally
	logger   *zap.Logger
}

// Option configures a World.
type Option func(*worldOptions)

// WithRules sets the initial thresholds. Out-of-range values fall back to
// their defaults.
func WithRules(r Rules) Option {
	return func(o *worldOptions) { o.rules = r }
}

// WithRegistry places every cell under lifetime tracking in reg. The world
// holds one handle per cell until Close.
func WithRegistry(reg *lifecycle.Registry[*Cell]) Option {
	return func(o *worldOptions) { o.registry = reg }
}

// WithTally counts the world's cells in t instead of a private tally.
func WithTally(t *Tally) Option {
	return func(o *worldOptions) { o.tally = t }
}

// WithLogger sets the world's logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *worldOptions) { o.logger = l }
}

// New allocates an all-dead rows x cols world.
func New(rows, cols int, opts ...Option) (*World, error) {
	if rows <= 0 || cols <= 0 {
		return nil, simerrors.Allocation("world.new", "grid dimensions must be positive, got %dx%d", rows, cols)
	}
	if rows > MaxCells/cols {
		return nil, simerrors.Allocation("world.new", "grid %dx%d exceeds %d cells", rows, cols, MaxCells)
	}

	o := worldOptions{rules: DefaultRules()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tally == nil {
		o.tally = NewTally()
	}
	if o.logger == nil {
		o.logger = Logger()
	}

	n := rows * cols
	cells, err := blob.NewFixed[*Cell](n)
	if err != nil {
		return nil, simerrors.Wrap("world.new", simerrors.KindAllocation, err, "cell storage")
	}

	w := &World{
		cells:    cells,
		registry: o.registry,
		tally:    o.tally,
		logger:   o.logger,
		cur:      make([]bool, n),
		next:     make([]bool, n),
		rules:    o.rules.Normalize(),
		rows:     rows,
		cols:     cols,
	}

	if w.registry != nil {
		w.handles = make([]*lifecycle.Handle[*Cell], n)
	}
	for i := 0; i < n; i++ {
		c := NewCell(w.tally)
		if err := cells.Set(i, c); err != nil {
			return nil, err
		}
		if w.registry == nil {
			continue
		}
		h, err := lifecycle.Bind(w.registry.Register(c))
		if err != nil {
			return nil, simerrors.Wrap("world.new", simerrors.KindAllocation, err, "bind cell handle")
		}
		w.handles[i] = h
	}

	w.logger.Debug("world created",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Bool("managed", w.registry != nil),
	)
	return w, nil
}

// NewFromSize allocates a square world of size/2 x size/2.
func NewFromSize(size int, opts ...Option) (*World, error) {
	return New(size/2, size/2, opts...)
}

// NewWithConfig allocates a world from cfg and seeds it when cfg.Density
// is positive. Rules in cfg are applied after opts.
func NewWithConfig(cfg Config, opts ...Option) (*World, error) {
	rows, cols := cfg.Dimensions()
	opts = append(opts, WithRules(cfg.Rules))
	w, err := New(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Density > 0 {
		if err := w.Randomize(cfg.Seed, cfg.Density); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Rows returns the number of rows.
func (w *World) Rows() int { return w.rows }

// Cols returns the number of columns.
func (w *World) Cols() int { return w.cols }

// Size returns the number of cells.
func (w *World) Size() int { return w.rows * w.cols }

// Turn returns the number of turns played.
func (w *World) Turn() int { return w.turn }

// Rules returns the active thresholds.
func (w *World) Rules() Rules { return w.rules }

func (w *World) Underpopulation() int { return w.rules.Underpopulation }
func (w *World) Overcrowding() int    { return w.rules.Overcrowding }
func (w *World) Reproduction() int    { return w.rules.Reproduction }

// Tally returns the tally counting this world's cells.
func (w *World) Tally() *Tally { return w.tally }

// Managed reports whether cells are under lifetime tracking.
func (w *World) Managed() bool { return w.registry != nil }

// SetUnderpopulation sets the underpopulation threshold and returns the
// value applied after validation.
func (w *World) SetUnderpopulation(v int) int {
	w.rules.Underpopulation = threshold(v, DefaultUnderpopulation)
	return w.rules.Underpopulation
}

// SetOvercrowding sets the overcrowding threshold and returns the value
// applied after validation.
func (w *World) SetOvercrowding(v int) int {
	w.rules.Overcrowding = threshold(v, DefaultOvercrowding)
	return w.rules.Overcrowding
}

// SetReproduction sets the reproduction threshold and returns the value
// applied after validation.
func (w *World) SetReproduction(v int) int {
	w.rules.Reproduction = threshold(v, DefaultReproduction)
	return w.rules.Reproduction
}

// IsAlive reports the health of the cell at (row, col).
func (w *World) IsAlive(row, col int) (bool, error) {
	c, err := w.cell("world.isAlive", row, col)
	if err != nil {
		return false, err
	}
	return c.Alive(), nil
}

// SetHealth sets the health of the cell at (row, col).
func (w *World) SetHealth(row, col int, alive bool) error {
	c, err := w.cell("world.setHealth", row, col)
	if err != nil {
		return err
	}
	c.SetAlive(alive)
	return nil
}

// Toggle flips the health of the cell at (row, col) and returns the new
// health.
func (w *World) Toggle(row, col int) (bool, error) {
	c, err := w.cell("world.toggle", row, col)
	if err != nil {
		return false, err
	}
	c.SetAlive(!c.Alive())
	return c.Alive(), nil
}

// Breed returns the breed of the cell at (row, col).
func (w *World) Breed(row, col int) (Breed, error) {
	c, err := w.cell("world.breed", row, col)
	if err != nil {
		return BreedNormal, err
	}
	return c.Breed(), nil
}

// SetBreed sets the breed of the cell at (row, col).
func (w *World) SetBreed(row, col int, b Breed) error {
	c, err := w.cell("world.setBreed", row, col)
	if err != nil {
		return err
	}
	c.SetBreed(b)
	return nil
}

// Clear kills every cell. The turn counter is left untouched.
func (w *World) Clear() error {
	return w.each("world.clear", func(_ int, c *Cell) {
		c.SetAlive(false)
	})
}

// Randomize sets every cell alive with probability density using a
// deterministic generator seeded by seed.
func (w *World) Randomize(seed int64, density float64) error {
	if density < 0 || density > 1 {
		return simerrors.InvalidInput("world.randomize", "density %.3f outside [0, 1]", density)
	}
	rng := core.NewRNG(seed)
	return w.each("world.randomize", func(_ int, c *Cell) {
		c.SetAlive(rng.Chance(density))
	})
}

// Closed reports whether Close has been called.
func (w *World) Closed() bool { return w.closed }

// Living returns the number of living cells on this grid. A closed world
// reports 0; use Closed to tell it apart from an empty grid.
func (w *World) Living() int {
	cur, err := w.snapshot("world.living")
	if err != nil {
		return 0
	}
	n := 0
	for _, alive := range cur {
		if alive {
			n++
		}
	}
	return n
}

// String renders the grid with '#' for living and '.' for dead cells, one
// line per row.
func (w *World) String() string {
	cur, err := w.snapshot("world.string")
	if err != nil {
		return err.Error()
	}
	var b strings.Builder
	b.Grow(w.rows * (w.cols + 1))
	for r := 0; r < w.rows; r++ {
		for c := 0; c < w.cols; c++ {
			if cur[r*w.cols+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Close ends the world's use of its cells. For a managed world every cell
// handle is released so the cells become pending in the registry. Any
// later cell access fails with ErrUseAfterReclaim.
func (w *World) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var firstErr error
	for i, h := range w.handles {
		if err := h.Release(); err != nil && firstErr == nil {
			firstErr = err
		}
		w.handles[i] = nil
	}
	w.handles = nil
	return firstErr
}

func (w *World) inBounds(row, col int) bool {
	return row >= 0 && row < w.rows && col >= 0 && col < w.cols
}

func (w *World) check(op string, row, col int) error {
	if !w.inBounds(row, col) {
		return simerrors.CoordOutOfBounds(op, row, col, w.rows, w.cols)
	}
	return nil
}

func (w *World) closedErr(op string) error {
	return simerrors.Wrap(op, simerrors.KindUseAfterReclaim, nil, "world closed")
}

// cell resolves (row, col) to its cell, going through the cell's handle
// when the world is managed.
func (w *World) cell(op string, row, col int) (*Cell, error) {
	if err := w.check(op, row, col); err != nil {
		return nil, err
	}
	return w.cellAt(op, row*w.cols+col)
}

func (w *World) cellAt(op string, i int) (*Cell, error) {
	if w.closed {
		return nil, w.closedErr(op)
	}
	if w.handles != nil {
		return w.handles[i].Get()
	}
	return w.cells.At(i)
}

func (w *World) each(op string, fn func(i int, c *Cell)) error {
	for i := 0; i < w.cells.Len(); i++ {
		c, err := w.cellAt(op, i)
		if err != nil {
			return err
		}
		fn(i, c)
	}
	return nil
}

// snapshot copies every cell's health into the current-turn buffer.
func (w *World) snapshot(op string) ([]bool, error) {
	err := w.each(op, func(i int, c *Cell) {
		w.cur[i] = c.Alive()
	})
	if err != nil {
		return nil, err
	}
	return w.cur, nil
}
