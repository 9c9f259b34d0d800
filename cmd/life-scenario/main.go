package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"lifeworld/internal/config"
	simerrors "lifeworld/internal/errors"
	"lifeworld/internal/scenario"
	"lifeworld/internal/telemetry"
)

func main() {
	mode := flag.String("mode", "strict", "assertion mode: strict or log-only")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scenario.lua...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(config.ExitUsage)
	}
	assertMode, ok := scenario.ParseAssertionMode(*mode)
	if !ok {
		config.ExitErr("flags", simerrors.InvalidInput("life-scenario", "unknown assertion mode %q", *mode))
	}

	logger, err := config.NewLogger(*debug)
	if err != nil {
		config.ExitErr("logger", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "lifeworld-scenario")
	if err != nil {
		config.ExitErr("telemetry", err)
	}
	defer shutdown(context.Background())

	failed := 0
	for _, path := range flag.Args() {
		sc, err := scenario.LoadFile(path)
		if err != nil {
			logger.Error("load scenario", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		report, err := scenario.Run(ctx, sc, scenario.Options{Mode: assertMode, Logger: logger})
		fmt.Print(report)
		if err != nil {
			logger.Error("run scenario", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		if !report.Passed() {
			failed++
		}
	}

	if failed > 0 {
		logger.Sync()
		config.Exitf("%d of %d scenarios failed", failed, flag.NArg())
	}
}
