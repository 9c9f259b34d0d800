package life

import "sync"

// Tally aggregates population counters for a set of cells. Every cell
// construction adds one unit to the population and one to either the
// living or the deceased side; every health flip moves exactly one unit
// between the two sides.
type Tally struct {
	mu         sync.Mutex
	population int64
	living     int64
	deceased   int64
}

// TallySnapshot is a consistent read of all three counters.
type TallySnapshot struct {
	Population int64
	Living     int64
	Deceased   int64
}

// NewTally returns a zeroed tally.
func NewTally() *Tally {
	return &Tally{}
}

// Population returns the number of cells ever counted.
func (t *Tally) Population() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.population
}

// Living returns the number of counted cells currently alive.
func (t *Tally) Living() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.living
}

// Deceased returns the number of counted cells currently dead.
func (t *Tally) Deceased() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.deceased
}

// Snapshot returns all counters read under one lock.
func (t *Tally) Snapshot() TallySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TallySnapshot{
		Population: t.population,
		Living:     t.living,
		Deceased:   t.deceased,
	}
}

func (t *Tally) add(alive bool) {
	t.mu.Lock()
	t.population++
	if alive {
		t.living++
	} else {
		t.deceased++
	}
	t.mu.Unlock()
}

func (t *Tally) flip(toAlive bool) {
	t.mu.Lock()
	if toAlive {
		t.deceased--
		t.living++
	} else {
		t.living--
		t.deceased++
	}
	t.mu.Unlock()
}

// exclude removes a cell from the living/deceased sides. Population keeps
// counting it as constructed.
func (t *Tally) exclude(alive bool) {
	t.mu.Lock()
	if alive {
		t.living--
	} else {
		t.deceased--
	}
	t.mu.Unlock()
}
