package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/recency/internal/adapters/render"
	app "github.com/okian/recency/internal/app"
	"github.com/okian/recency/internal/config"
	"github.com/okian/recency/pkg/logger"
)

// Process exit codes.
const (
	exitOK    = 0
	exitError = 1
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run loads configuration, performs one selection and renders it to stdout.
// Logs go to stderr so stdout carries only the selected events.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, "failed to load config", logger.Error(err))
		return exitError
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	renderer, err := render.Format(cfg.RenderFormat)
	if err != nil {
		log.Error(ctx, "invalid render format", logger.Error(err))
		return exitError
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithTargetCount(cfg.TargetCount),
		app.WithTopK(cfg.TopK),
		app.WithInputPath(cfg.InputPath),
		app.WithMetricsTextfile(cfg.MetricsTextfile),
	)
	events, err := svc.Run(ctx)
	if err != nil {
		log.Error(ctx, "selection failed", logger.Error(err))
		return exitError
	}

	if err := renderer(stdout, events); err != nil {
		log.Error(ctx, "failed to render output", logger.Error(err))
		return exitError
	}
	return exitOK
}
