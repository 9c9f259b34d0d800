package life

import (
	"testing"

	"lifeworld/internal/core"
)

func TestSimRegistered(t *testing.T) {
	f, ok := core.Lookup("life")
	if !ok {
		t.Fatal("life sim is not registered")
	}
	sim, err := f(map[string]string{"rows": "6", "cols": "9", "density": "0"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if sim.Name() != "life" {
		t.Fatalf("name = %q", sim.Name())
	}
	if size := sim.Size(); size.W != 9 || size.H != 6 {
		t.Fatalf("size = %+v", size)
	}
	if len(sim.Cells()) != 54 {
		t.Fatalf("cells = %d", len(sim.Cells()))
	}
}

func TestSimBlinkerThroughCells(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Density = 5, 5, 0
	sim, err := NewSim(cfg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	for x := 1; x <= 3; x++ {
		if err := sim.Toggle(x, 2); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}

	sim.Step()
	cells := sim.Cells()
	w := sim.Size().W
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			alive := cells[y*w+x] == 1
			shouldBeAlive := x == 2 && y >= 1 && y <= 3
			if alive != shouldBeAlive {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, shouldBeAlive)
			}
		}
	}

	sim.Clear()
	for _, c := range sim.Cells() {
		if c != 0 {
			t.Fatal("Clear left living cells")
		}
	}
}

func TestSimParameters(t *testing.T) {
	sim, err := NewSim(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}

	if !sim.SetIntParameter("overcrowding", 5) {
		t.Fatal("overcrowding should be adjustable")
	}
	if sim.SetIntParameter("rows", 3) {
		t.Fatal("rows should not be adjustable")
	}
	if !sim.SetFloatParameter("density", 0.5) || sim.SetFloatParameter("density", 2) {
		t.Fatal("density bounds not enforced")
	}

	snap := sim.Parameters()
	if p, ok := snap.Lookup("overcrowding"); !ok || p.Value != "5" {
		t.Fatalf("overcrowding param = %+v", p)
	}
	if p, ok := snap.Lookup("density"); !ok || p.Value != "0.50" {
		t.Fatalf("density param = %+v", p)
	}
	if len(sim.ParameterControls()) != 4 {
		t.Fatalf("controls = %d", len(sim.ParameterControls()))
	}

	sim.Reset(11)
	if p, _ := sim.Parameters().Lookup("seed"); p.Value != "11" {
		t.Fatalf("seed param = %+v", p)
	}
}

func TestSimNeighborCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows, cfg.Cols, cfg.Density = 3, 4, 0
	sim, err := NewSim(cfg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	_ = sim.Toggle(0, 0)
	_ = sim.Toggle(1, 0)

	counts := sim.NeighborCounts()
	want := []uint8{
		1, 1, 1, 0,
		2, 2, 1, 0,
		0, 0, 0, 0,
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
}
