// Command mapf solves single- and multi-agent grid pathfinding scenarios.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdrpinto/mapf/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli holds the flag values shared by every subcommand.
type cli struct {
	verbose   bool
	logLevel  string
	logFormat string
	output    string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "mapf",
		Short: "Collision-considerate A* pathfinding for one or many agents",
		Long: `mapf searches shortest paths on 4-connected occupancy grids.

A scenario file (.yaml, .yml or .hcl) describes the grid, the agents and the
solver settings. Without a scenario the built-in 9x10 sample grid is used.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch app.output {
			case "text", "json":
			default:
				return fmt.Errorf("invalid output %q: must be 'text' or 'json'", app.output)
			}
			level := app.logLevel
			if app.verbose {
				level = "debug"
			}
			logger, err := logging.New(level, app.logFormat)
			if err != nil {
				return err
			}
			app.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&app.logFormat, "log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().StringVarP(&app.output, "output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(app.solveCmd(), app.pathCmd(), app.graphCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
