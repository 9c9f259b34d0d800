package life

const (
	DefaultUnderpopulation = 2
	DefaultOvercrowding    = 3
	DefaultReproduction    = 3

	// MaxThreshold is the largest meaningful threshold: a cell has at most
	// eight neighbors.
	MaxThreshold = 8
)

// Rules holds the three thresholds evaluated every turn.
type Rules struct {
	Underpopulation int
	Overcrowding    int
	Reproduction    int
}

// DefaultRules returns the canonical 2/3/3 rule set.
func DefaultRules() Rules {
	return Rules{
		Underpopulation: DefaultUnderpopulation,
		Overcrowding:    DefaultOvercrowding,
		Reproduction:    DefaultReproduction,
	}
}

// Normalize replaces every threshold outside (0, 8] with its default.
// Fields are validated independently.
func (r Rules) Normalize() Rules {
	return Rules{
		Underpopulation: threshold(r.Underpopulation, DefaultUnderpopulation),
		Overcrowding:    threshold(r.Overcrowding, DefaultOvercrowding),
		Reproduction:    threshold(r.Reproduction, DefaultReproduction),
	}
}

// Next returns a cell's next health. The first rule that fires wins:
// underpopulation, then overcrowding, then reproduction.
func (r Rules) Next(alive bool, living int) bool {
	switch {
	case alive && living < r.Underpopulation:
		return false
	case alive && living > r.Overcrowding:
		return false
	case !alive && living == r.Reproduction:
		return true
	default:
		return alive
	}
}

func threshold(v, def int) int {
	if v > 0 && v <= MaxThreshold {
		return v
	}
	return def
}
