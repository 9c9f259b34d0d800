package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"lifeworld/internal/core"
	"lifeworld/internal/lifecycle"
	"lifeworld/internal/sims/life"
)

// Session owns the sim a front end drives, plus the cell registry when the
// world is managed.
type Session struct {
	Sim      core.Sim
	World    *life.World
	Registry *lifecycle.Registry[*life.Cell]

	logger *zap.Logger
}

// NewSession builds the configured sim.
func NewSession(cfg Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	factory, ok := core.Lookup(cfg.Sim)
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %s)", cfg.Sim, strings.Join(core.Names(), ", "))
	}

	s := &Session{logger: logger}
	if cfg.Sim != "life" {
		sim, err := factory(cfg.SimMap())
		if err != nil {
			return nil, fmt.Errorf("build sim %q: %w", cfg.Sim, err)
		}
		s.Sim = sim
		return s, nil
	}

	opts := []life.Option{life.WithLogger(logger)}
	if cfg.Managed {
		s.Registry = lifecycle.NewRegistry[*life.Cell](lifecycle.WithLogger(logger))
		opts = append(opts, life.WithRegistry(s.Registry))
	}
	sim, err := life.NewSim(cfg.LifeConfig(), opts...)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	s.Sim = sim
	s.World = sim.World()
	return s, nil
}

// Close releases the world and, for a managed world, reclaims every cell.
// Cells still live at that point are reported as leaks.
func (s *Session) Close() error {
	if s.World == nil {
		return nil
	}
	err := s.World.Close()
	if s.Registry == nil {
		return err
	}
	reclaimed := s.Registry.ReclaimPending()
	leaked := s.Registry.ReclaimAll(true)
	s.logger.Info("cells reclaimed",
		zap.Int("reclaimed", reclaimed),
		zap.Int("leaked", leaked),
	)
	return err
}
