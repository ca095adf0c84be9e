package app

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/vk/optmodel/algebra"
	"github.com/vk/optmodel/internal/ctxlog"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.List {
		a.listSymbols()
		return nil
	}

	source := a.container.GenerateSource()
	if appConfig.OutPath != "" {
		if err := os.WriteFile(appConfig.OutPath, []byte(source+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write generated source: %w", err)
		}
		a.logger.Info("Generated source written.", "path", appConfig.OutPath)
		return nil
	}

	fmt.Fprintln(a.outW, source)
	a.logger.Debug("App.Run method finished.")
	return nil
}

var kindColors = map[algebra.Kind]*color.Color{
	algebra.KindSet:       color.New(color.FgCyan),
	algebra.KindAlias:     color.New(color.FgBlue),
	algebra.KindParameter: color.New(color.FgGreen),
	algebra.KindVariable:  color.New(color.FgYellow),
	algebra.KindEquation:  color.New(color.FgMagenta),
}

// listSymbols prints one line per registered symbol in declaration order.
func (a *App) listSymbols() {
	for _, sym := range a.container.Symbols() {
		kind := sym.Kind().String()
		if c, ok := kindColors[sym.Kind()]; ok {
			kind = c.Sprint(kind)
		}
		line := fmt.Sprintf("%-20s %s dim=%d", kind, sym.Name(), sym.Dimension())
		if desc := sym.Description(); desc != "" {
			line += fmt.Sprintf(" %q", desc)
		}
		fmt.Fprintln(a.outW, line)
	}
}
