package main

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nebula-edge/nebula/kernel"
	"github.com/nebula-edge/nebula/observability"
)

// setupCLILogging routes kernel events to stderr through slog. With
// --log-file the events are also written to the file through zap. A config
// asking for the zap observer gets a zap logger on the log file, or on
// stderr when no file is given.
func setupCLILogging(cfg *kernel.Config) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	stderr := observability.NewSlogObserver(slog.New(handler))
	observability.RegisterObserver("slog", stderr)

	switch {
	case cfg.Observer == "zap":
		obs, err := newZapObserver(logFile)
		if err != nil {
			return err
		}
		observability.RegisterObserver("zap", obs)
	case logFile != "" && cfg.Observer != "noop":
		file, err := newZapObserver(logFile)
		if err != nil {
			return err
		}
		observability.RegisterObserver("cli", observability.NewMultiObserver(stderr, file))
		cfg.Observer = "cli"
	}
	return nil
}

// setupUILogging keeps the terminal clear while the chat is open. Events go
// to the log file when one is given and are discarded otherwise.
func setupUILogging(cfg *kernel.Config) error {
	if logFile == "" {
		cfg.Observer = "noop"
		return nil
	}
	file, err := newZapObserver(logFile)
	if err != nil {
		return err
	}
	observability.RegisterObserver("zap", file)
	cfg.Observer = "zap"
	return nil
}

// newZapObserver builds the production zap logger, writing to path or to
// stderr when path is empty.
func newZapObserver(path string) (observability.Observer, error) {
	zc := zap.NewProductionConfig()
	if path != "" {
		zc.OutputPaths = []string{path}
		zc.ErrorOutputPaths = []string{path}
	}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return observability.NewZapObserver(logger.Named("nebula")), nil
}

func syncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
