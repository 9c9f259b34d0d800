//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"lifeworld/internal/core"
	"lifeworld/internal/render"
	"lifeworld/internal/ui"
)

const hudWidth = 220

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FixedStep
	logger  *zap.Logger

	onColor  color.Color
	offColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. Turns advance at tps
// regardless of the frame rate.
func New(sim core.Sim, scale, tps int, seed int64, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, hudWidth),
		overlay:  ui.NewOverlay(sim, scale),
		clock:    core.NewFixedStep(tps),
		logger:   logger,
		onColor:  color.RGBA{R: 240, G: 200, B: 80, A: 255},
		offColor: color.RGBA{R: 12, G: 12, B: 16, A: 255},
		scale:    scale,
		paused:   true,
		seed:     seed,
	}
}

// Reset reseeds the simulation and pauses it.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.paused = true
	g.logger.Debug("reset", zap.Int64("seed", seed))
}

// Update handles per-frame input and advances the simulation on the
// fixed-step clock.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.clock.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if c, ok := g.sim.(core.Clearer); ok {
			c.Clear()
			g.paused = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.handleClick()

	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)
	g.overlay.Update()

	if g.tickOnce || (!g.paused && g.clock.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	t, ok := g.sim.(core.Toggler)
	if !ok {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	x, y := mx/g.scale, my/g.scale
	if mx < 0 || my < 0 || x >= size.W || y >= size.H {
		return
	}
	if err := t.Toggle(x, y); err != nil {
		g.logger.Warn("toggle failed", zap.Int("x", x), zap.Int("y", y), zap.Error(err))
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	g.overlay.Draw(screen)
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.scale, g.scale, g.paused)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + hudWidth, s.H * g.scale
}

// WindowSize returns the initial window dimensions.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}
