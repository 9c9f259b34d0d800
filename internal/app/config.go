package app

import (
	"flag"
	"strconv"

	"lifeworld/internal/config"
	simerrors "lifeworld/internal/errors"
	"lifeworld/internal/sims/life"
)

// Config holds the front-end settings. Environment variables provide the
// defaults and command-line flags override them.
type Config struct {
	Sim string `env:"SIM" envDefault:"life"`

	Rows int `env:"ROWS" envDefault:"25"`
	Cols int `env:"COLS" envDefault:"35"`
	// Size, when positive, selects a Size/2 x Size/2 grid.
	Size int `env:"SIZE" envDefault:"0"`

	Scale   int     `env:"SCALE" envDefault:"16"`
	TPS     int     `env:"TPS" envDefault:"2"`
	Seed    int64   `env:"SEED" envDefault:"42"`
	Density float64 `env:"DENSITY" envDefault:"0.25"`

	Underpopulation int `env:"UNDERPOPULATION" envDefault:"2"`
	Overcrowding    int `env:"OVERCROWDING" envDefault:"3"`
	Reproduction    int `env:"REPRODUCTION" envDefault:"3"`

	Managed bool `env:"MANAGED" envDefault:"false"`
	Debug   bool `env:"DEBUG" envDefault:"false"`
}

// Load reads the environment, then parses args from fs on top of it.
func Load(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.IntVar(&c.Size, "size", c.Size, "square grid hint, size/2 cells per side (overrides rows/cols)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "turns per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial population")
	fs.Float64Var(&c.Density, "density", c.Density, "initial living-cell probability")
	fs.IntVar(&c.Underpopulation, "underpopulation", c.Underpopulation, "underpopulation threshold (1-8)")
	fs.IntVar(&c.Overcrowding, "overcrowding", c.Overcrowding, "overcrowding threshold (1-8)")
	fs.IntVar(&c.Reproduction, "reproduction", c.Reproduction, "reproduction threshold (1-8)")
	fs.BoolVar(&c.Managed, "managed", c.Managed, "track cells with reference-counted handles")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "development logging")
}

// Validate rejects settings no front end can run with. Rule thresholds are
// not checked here; the world replaces out-of-range values with defaults.
func (c Config) Validate() error {
	switch {
	case c.Scale <= 0:
		return simerrors.InvalidInput("app.config", "scale must be positive, got %d", c.Scale)
	case c.TPS <= 0:
		return simerrors.InvalidInput("app.config", "tps must be positive, got %d", c.TPS)
	case c.Density < 0 || c.Density > 1:
		return simerrors.InvalidInput("app.config", "density must be within [0, 1], got %g", c.Density)
	}
	rows, cols := c.LifeConfig().Dimensions()
	if rows <= 0 || cols <= 0 {
		return simerrors.InvalidInput("app.config", "grid %dx%d is empty", rows, cols)
	}
	return nil
}

// LifeConfig converts the settings into a world configuration.
func (c Config) LifeConfig() life.Config {
	return life.Config{
		Rows:    c.Rows,
		Cols:    c.Cols,
		Size:    c.Size,
		Seed:    c.Seed,
		Density: c.Density,
		Rules: life.Rules{
			Underpopulation: c.Underpopulation,
			Overcrowding:    c.Overcrowding,
			Reproduction:    c.Reproduction,
		},
	}
}

// SimMap renders the settings as the string map sim factories accept.
func (c Config) SimMap() map[string]string {
	return map[string]string{
		"rows":            strconv.Itoa(c.Rows),
		"cols":            strconv.Itoa(c.Cols),
		"size":            strconv.Itoa(c.Size),
		"seed":            strconv.FormatInt(c.Seed, 10),
		"density":         strconv.FormatFloat(c.Density, 'f', -1, 64),
		"underpopulation": strconv.Itoa(c.Underpopulation),
		"overcrowding":    strconv.Itoa(c.Overcrowding),
		"reproduction":    strconv.Itoa(c.Reproduction),
	}
}
