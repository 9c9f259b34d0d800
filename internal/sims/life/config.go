package life

import "strconv"

// Config controls world dimensions, seeding and rules.
type Config struct {
	Rows int
	Cols int
	// Size, when positive, overrides Rows and Cols with a square of
	// Size/2 cells per side.
	Size int

	Seed    int64
	Density float64

	Rules Rules
}

// DefaultConfig returns a 25x35 world seeded at 25% density with the
// canonical rules.
func DefaultConfig() Config {
	return Config{
		Rows:    DefaultRows,
		Cols:    DefaultCols,
		Seed:    42,
		Density: 0.25,
		Rules:   DefaultRules(),
	}
}

// Dimensions returns the rows and columns the config describes.
func (c Config) Dimensions() (rows, cols int) {
	if c.Size > 0 {
		return c.Size / 2, c.Size / 2
	}
	return c.Rows, c.Cols
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unparseable values keep their defaults; rule thresholds are
// validated later by the world.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rows"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rows = parsed
		}
	}
	if v, ok := cfg["cols"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Cols = parsed
		}
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 2 {
			c.Size = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["underpopulation"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.Underpopulation = parsed
		}
	}
	if v, ok := cfg["overcrowding"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.Overcrowding = parsed
		}
	}
	if v, ok := cfg["reproduction"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rules.Reproduction = parsed
		}
	}
	return c
}
