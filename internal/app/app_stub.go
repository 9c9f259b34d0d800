//go:build !ebiten

package app

import (
	"go.uber.org/zap"

	"lifeworld/internal/core"
)

// Game is unavailable without the ebiten build tag.
type Game struct{}

// New panics in headless builds; the GUI requires -tags ebiten.
func New(core.Sim, int, int, int64, *zap.Logger) *Game {
	panic("app.New requires the ebiten build tag")
}
