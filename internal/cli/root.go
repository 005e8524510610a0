// Package cli implements desactl, the operator command line for the village
// website: schema migration, seeding and account bootstrap.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"desaweb/internal/app"
	"desaweb/internal/config"
	"desaweb/internal/logger"
)

var (
	flagDebug    bool
	flagLogLevel string
)

// NewRootCmd creates the root cobra command for desactl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "desactl",
		Short:        "Village website administration",
		Long:         "desactl migrates the database, loads seed data and manages admin accounts. It reads the same environment as the server.",
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and SQL tracing")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to LOG_LEVEL")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newUserCmd(),
	)

	return root
}

// openApp loads configuration and connects to the database. Storage is
// left out so no upload credentials are required.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDebug {
		cfg.Env = "development"
		cfg.LogLevel = "debug"
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a, err := app.New(ctx, cfg, log, app.Options{})
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return a, nil
}

func closeApp(a *app.App) {
	a.Close()
	_ = a.Log.Sync()
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
