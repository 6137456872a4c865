// Package main is the entry point for the pak package manager.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/spf13/viper"
	"go.trai.ch/pak/cmd/pak/commands"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/app"
	_ "go.trai.ch/pak/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Environment overrides apply before flags are parsed
	config.BindEnv(viper.GetViper())

	// 2. Interface - CLI. Components are built once flags are bound.
	var components *app.Components
	cli := commands.New(func(ctx context.Context) (commands.Application, error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx, graft.DisableCache())
		if err != nil {
			return nil, err
		}
		components = c
		return c.App, nil
	})

	// 3. Execution
	err := cli.Execute(ctx)
	if components != nil {
		if closeErr := components.Telemetry.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if err != nil {
		if components == nil {
			// Logger is not available if initialization failed
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
