package life

import (
	"context"

	"go.uber.org/zap"

	"lifeworld/internal/core"
)

func init() {
	core.Register("life", func(cfg map[string]string) (core.Sim, error) {
		return NewSim(FromMap(cfg))
	})
}

// Sim adapts a World to the core.Sim contract used by the front ends.
type Sim struct {
	world  *World
	cfg    Config
	frame  *core.ByteGrid
	counts *core.ByteGrid
}

// NewSim builds a seeded world from cfg.
func NewSim(cfg Config, opts ...Option) (*Sim, error) {
	w, err := NewWithConfig(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Sim{
		world:  w,
		cfg:    cfg,
		frame:  core.NewByteGrid(w.Cols(), w.Rows()),
		counts: core.NewByteGrid(w.Cols(), w.Rows()),
	}, nil
}

// World exposes the underlying world.
func (s *Sim) World() *World { return s.world }

func (s *Sim) Name() string { return "life" }

func (s *Sim) Size() core.Size {
	return core.Size{W: s.world.Cols(), H: s.world.Rows()}
}

// Reset clears the world and reseeds it at the configured density.
func (s *Sim) Reset(seed int64) {
	s.cfg.Seed = seed
	if err := s.world.Randomize(seed, s.cfg.Density); err != nil {
		s.world.logger.Error("reset failed", zap.Int64("seed", seed), zap.Error(err))
	}
}

// Step plays one turn.
func (s *Sim) Step() {
	if err := s.world.Play(context.Background(), 1); err != nil {
		s.world.logger.Error("step failed", zap.Int("turn", s.world.Turn()), zap.Error(err))
	}
}

// Cells returns the current generation, one byte per cell, 1 for alive.
func (s *Sim) Cells() []uint8 {
	cur, err := s.world.snapshot("sim.cells")
	if err != nil {
		s.frame.Clear()
		return s.frame.Cells()
	}
	cols := s.world.Cols()
	s.frame.Fill(func(x, y int) uint8 {
		if cur[y*cols+x] {
			return 1
		}
		return 0
	})
	return s.frame.Cells()
}

// NeighborCounts returns the living-neighbor count of every cell.
func (s *Sim) NeighborCounts() []uint8 {
	cur, err := s.world.snapshot("sim.neighborCounts")
	if err != nil {
		s.counts.Clear()
		return s.counts.Cells()
	}
	s.counts.Fill(func(x, y int) uint8 {
		return uint8(s.world.countLiving(cur, y, x))
	})
	return s.counts.Cells()
}

// Toggle flips the cell under screen coordinates (x, y).
func (s *Sim) Toggle(x, y int) error {
	_, err := s.world.Toggle(y, x)
	return err
}

// Clear kills every cell.
func (s *Sim) Clear() {
	if err := s.world.Clear(); err != nil {
		s.world.logger.Error("clear failed", zap.Error(err))
	}
}

// Parameters reports the sim's current values for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	w := s.world
	t := w.Tally().Snapshot()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("rows", "Rows", w.Rows(), "Grid height"),
				core.IntParam("cols", "Cols", w.Cols(), "Grid width"),
				core.IntParam("turn", "Turn", w.Turn(), "Generations played"),
				core.IntParam("living", "Living", int(t.Living), "Cells alive now"),
				core.IntParam("deceased", "Deceased", int(t.Deceased), "Cells dead now"),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.IntParam("underpopulation", "Underpopulation", w.Underpopulation(), "Living cells with fewer neighbors die"),
				core.IntParam("overcrowding", "Overcrowding", w.Overcrowding(), "Living cells with more neighbors die"),
				core.IntParam("reproduction", "Reproduction", w.Reproduction(), "Dead cells with exactly this many neighbors live"),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				core.IntParam("seed", "Seed", int(s.cfg.Seed), "Reset seed"),
				core.FloatParam("density", "Density", s.cfg.Density, "Chance a cell starts alive"),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Sim) ParameterControls() []core.ParameterControl {
	rule := func(key, label string) core.ParameterControl {
		return core.ParameterControl{
			Key: key, Label: label, Type: core.ParamTypeInt,
			Step: 1, Min: 1, Max: MaxThreshold, HasMin: true, HasMax: true,
		}
	}
	return []core.ParameterControl{
		rule("underpopulation", "Underpop."),
		rule("overcrowding", "Overcrowd."),
		rule("reproduction", "Reproduce"),
		{
			Key: "density", Label: "Density", Type: core.ParamTypeFloat,
			Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true,
		},
	}
}

// SetIntParameter updates a rule threshold.
func (s *Sim) SetIntParameter(key string, value int) bool {
	switch key {
	case "underpopulation":
		s.cfg.Rules.Underpopulation = s.world.SetUnderpopulation(value)
	case "overcrowding":
		s.cfg.Rules.Overcrowding = s.world.SetOvercrowding(value)
	case "reproduction":
		s.cfg.Rules.Reproduction = s.world.SetReproduction(value)
	default:
		return false
	}
	return true
}

// SetFloatParameter updates the reset density.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != "density" || value < 0 || value > 1 {
		return false
	}
	s.cfg.Density = value
	return true
}
