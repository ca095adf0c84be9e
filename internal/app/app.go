package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/optmodel/algebra"
	"github.com/vk/optmodel/internal/ctxlog"
	"github.com/vk/optmodel/internal/dataload"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	container *algebra.Container
	model     *dataload.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and container: the
// model-data file is loaded, translated and replayed against the container
// before this returns.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := dataload.Load(ctx, appConfig.ModelPath)
	if err != nil {
		// A failure to load model data is a fatal startup error.
		panic(fmt.Errorf("failed to load model data: %w", err))
	}
	logger.Debug("Model data loaded and translated into unified model.")

	container := algebra.NewContainer(algebra.WithLogger(logger))
	if err := dataload.Populate(ctx, container, model); err != nil {
		panic(fmt.Errorf("failed to populate container: %w", err))
	}
	logger.Debug("Container populated and validated.", "symbols", len(container.Symbols()))

	return &App{
		outW:      outW,
		logger:    logger,
		container: container,
		model:     model,
	}
}

// Container returns the application's container. This is primarily for testing.
func (a *App) Container() *algebra.Container {
	return a.container
}
