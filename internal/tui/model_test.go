package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lifeworld/internal/sims/life"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func blinkerModel(t *testing.T) *Model {
	t.Helper()
	w, err := life.New(5, 5)
	if err != nil {
		t.Fatalf("life.New: %v", err)
	}
	if err := w.Stamp(2, 1, "###"); err != nil {
		t.Fatalf("Stamp: %v", err)
	}
	return New(w, Options{TPS: 10, Density: 0.3})
}

func TestModelStepKey(t *testing.T) {
	m := blinkerModel(t)
	m.Update(runes("n"))

	if m.world.Turn() != 1 {
		t.Fatalf("turn = %d, want 1", m.world.Turn())
	}
	if alive, _ := m.world.IsAlive(1, 2); !alive {
		t.Fatal("blinker should be vertical after one step")
	}
}

func TestModelTickOnlyAdvancesWhenRunning(t *testing.T) {
	m := blinkerModel(t)

	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.world.Turn() != 0 {
		t.Fatal("paused model should not advance on tick")
	}

	m.Update(runes("p"))
	m.Update(tickMsg(time.Now()))
	m.Update(tickMsg(time.Now()))
	if m.world.Turn() != 2 {
		t.Fatalf("turn = %d, want 2", m.world.Turn())
	}
}

func TestModelCursorToggle(t *testing.T) {
	m := blinkerModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if alive, _ := m.world.IsAlive(1, 1); !alive {
		t.Fatal("enter should toggle the cell under the cursor")
	}

	for i := 0; i < 10; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyUp})
		m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.row != 0 || m.col != 0 {
		t.Fatalf("cursor = (%d,%d), want clamped to (0,0)", m.row, m.col)
	}
}

func TestModelClearReseedQuit(t *testing.T) {
	m := blinkerModel(t)
	m.Update(runes("c"))
	if m.world.Living() != 0 {
		t.Fatal("clear should kill every cell")
	}

	m.Update(runes("r"))
	if m.seed != 1 {
		t.Fatalf("seed = %d, want 1", m.seed)
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
}

func TestModelView(t *testing.T) {
	m := blinkerModel(t)
	m.Update(runes("n"))
	view := m.View()
	for _, want := range []string{"turn 1", "living 3", "paused", "rules 2/3/3"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}
