// Package bootstrap runs the ordered start-up pipeline shared by bots: logger first,
// then the app's own initialisation steps.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/m3rciful/ginabot/core/config"
	"github.com/m3rciful/ginabot/core/logger"
)

// Step is one named initialisation stage.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Steps      []Step
}

// Run initialises the logger and executes the steps in order, stopping at the first failure.
func Run(ctx context.Context, opts Options) error {
	if opts.Config == nil {
		return errors.New("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	for _, step := range opts.Steps {
		if step.Run == nil {
			continue
		}
		start := time.Now()
		if err := step.Run(ctx); err != nil {
			logger.Error(ctx, "app", "bootstrap.step",
				slog.String("status", "fail"),
				slog.String("step", step.Name),
				slog.String("err", err.Error()),
			)
			return fmt.Errorf("bootstrap: %s: %w", step.Name, err)
		}
		logger.Debug(ctx, "app", "bootstrap.step",
			slog.String("status", "ok"),
			slog.String("step", step.Name),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return nil
}
