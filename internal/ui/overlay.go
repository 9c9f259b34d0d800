//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"lifeworld/internal/core"
	"lifeworld/internal/render"
)

// Overlay draws optional visuals on top of the grid: cell borders (key 1)
// and a neighbor-count heat map (key 2).
type Overlay struct {
	sim       core.Sim
	scale     int
	showGrid  bool
	showHeat  bool
	heat      *render.GridPainter
	palette   []color.RGBA
	lineColor color.RGBA
}

// NewOverlay constructs an overlay for sim drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	o := &Overlay{
		sim:       sim,
		scale:     scale,
		palette:   render.NeighborPalette(),
		lineColor: color.RGBA{R: 40, G: 40, B: 48, A: 255},
	}
	if _, ok := sim.(core.NeighborCounter); ok {
		o.heat = render.NewGridPainter(size.W, size.H)
	}
	return o
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeat = !o.showHeat
	}
}

// Draw paints the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showHeat && o.heat != nil {
		counts := o.sim.(core.NeighborCounter).NeighborCounts()
		o.heat.BlitPalette(screen, counts, o.palette, o.scale)
	}
	if o.showGrid && o.scale >= 4 {
		size := o.sim.Size()
		w := float32(size.W * o.scale)
		h := float32(size.H * o.scale)
		for x := 0; x <= size.W; x++ {
			fx := float32(x * o.scale)
			vector.StrokeLine(screen, fx, 0, fx, h, 1, o.lineColor, false)
		}
		for y := 0; y <= size.H; y++ {
			fy := float32(y * o.scale)
			vector.StrokeLine(screen, 0, fy, w, fy, 1, o.lineColor, false)
		}
	}
}
