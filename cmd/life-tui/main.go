package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"lifeworld/internal/app"
	"lifeworld/internal/config"
	"lifeworld/internal/lifecycle"
	"lifeworld/internal/sims/life"
	"lifeworld/internal/telemetry"
	"lifeworld/internal/tui"
)

func main() {
	cfg, err := app.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitErr("config", err)
	}
	if cfg.Sim != "life" {
		config.Exitf("life-tui only drives the life sim, got %q", cfg.Sim)
	}

	// The terminal belongs to the UI, so logs stay quiet unless debugging.
	logger := zap.NewNop()
	if cfg.Debug {
		if logger, err = config.NewLogger(true); err != nil {
			config.ExitErr("logger", err)
		}
	}
	defer logger.Sync()
	life.SetLogger(logger)
	lifecycle.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "lifeworld-tui")
	if err != nil {
		config.ExitErr("telemetry", err)
	}
	defer shutdown(context.Background())

	session, err := app.NewSession(cfg, logger)
	if err != nil {
		config.ExitErr("session", err)
	}
	defer session.Close()

	model := tui.New(session.World, tui.Options{
		Context: ctx,
		Logger:  logger,
		TPS:     cfg.TPS,
		Seed:    cfg.Seed,
		Density: cfg.Density,
	})
	if err := tui.Run(model); err != nil {
		logger.Error("tui exited", zap.Error(err))
	}
}
