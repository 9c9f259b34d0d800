//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"lifeworld/internal/app"
	"lifeworld/internal/config"
	"lifeworld/internal/lifecycle"
	"lifeworld/internal/sims/life"
	"lifeworld/internal/telemetry"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitErr("config", err)
	}

	logger, err := config.NewLogger(cfg.Debug)
	if err != nil {
		config.ExitErr("logger", err)
	}
	defer logger.Sync()
	life.SetLogger(logger)
	lifecycle.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "lifeworld")
	if err != nil {
		config.ExitErr("telemetry", err)
	}
	defer shutdown(context.Background())

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		config.ExitErr("session", err)
	}
	defer session.Close()

	session.Sim.Reset(cfg.Seed)

	game := app.New(session.Sim, cfg.Scale, cfg.TPS, cfg.Seed, logger)
	w, h := game.WindowSize()

	ebiten.SetWindowTitle("lifeworld: " + session.Sim.Name())
	ebiten.SetWindowSize(w, h)

	logger.Info("starting", zap.String("sim", cfg.Sim), zap.Bool("managed", cfg.Managed))
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", zap.Error(err))
	}
}
