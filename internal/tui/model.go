// Package tui is the terminal front end: a bubbletea model that plays a
// world on a timer and lets the user edit cells under a cursor.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lifeworld/internal/sims/life"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	aliveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0C850"))

	deadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3A3A44"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type tickMsg time.Time

// Options configures a Model.
type Options struct {
	Context context.Context
	Logger  *zap.Logger
	TPS     int
	Seed    int64
	Density float64
	Running bool
}

// Model drives a life.World from the terminal.
type Model struct {
	ctx      context.Context
	world    *life.World
	logger   *zap.Logger
	err      error
	keys     KeyMap
	help     help.Model
	interval time.Duration
	seed     int64
	density  float64
	row      int
	col      int
	running  bool
}

// New builds a model over w.
func New(w *life.World, opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TPS <= 0 {
		opts.TPS = 2
	}
	return &Model{
		ctx:      opts.Context,
		world:    w,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		interval: time.Second / time.Duration(opts.TPS),
		seed:     opts.Seed,
		density:  opts.Density,
		running:  opts.Running,
	}
}

// Init starts the turn timer.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles timer ticks and key presses.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.running {
			m.advance()
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Step):
			m.running = false
			m.advance()
		case key.Matches(msg, m.keys.Clear):
			m.running = false
			m.setErr(m.world.Clear())
		case key.Matches(msg, m.keys.Reseed):
			m.seed++
			m.setErr(m.world.Randomize(m.seed, m.density))
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(0, 1)
		case key.Matches(msg, m.keys.Toggle):
			_, err := m.world.Toggle(m.row, m.col)
			m.setErr(err)
		}
	}
	return m, nil
}

func (m *Model) advance() {
	err := m.world.Play(m.ctx, 1)
	if err != nil {
		m.running = false
		m.logger.Error("play failed", zap.Int("turn", m.world.Turn()), zap.Error(err))
	}
	m.setErr(err)
}

func (m *Model) setErr(err error) {
	m.err = err
}

func (m *Model) moveCursor(dr, dc int) {
	m.row = clamp(m.row+dr, 0, m.world.Rows()-1)
	m.col = clamp(m.col+dc, 0, m.world.Cols()-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the grid, status line and key help.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lifeworld"))
	b.WriteString("\n\n")

	for r := 0; r < m.world.Rows(); r++ {
		for c := 0; c < m.world.Cols(); c++ {
			alive, err := m.world.IsAlive(r, c)
			if err != nil {
				b.WriteString(errorStyle.Render(err.Error()))
				b.WriteString("\n")
				return b.String()
			}
			glyph, style := "·", deadStyle
			if alive {
				glyph, style = "█", aliveStyle
			}
			if r == m.row && c == m.col {
				style = cursorStyle
			}
			b.WriteString(style.Render(glyph))
		}
		b.WriteByte('\n')
	}

	state := "paused"
	if m.running {
		state = "running"
	}
	t := m.world.Tally().Snapshot()
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"turn %d  living %d  deceased %d  rules %d/%d/%d  [%s]",
		m.world.Turn(), t.Living, t.Deceased,
		m.world.Underpopulation(), m.world.Overcrowding(), m.world.Reproduction(),
		state,
	)))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx)).Run()
	return err
}
