// Package main is the entry point for the migconvert CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satishbabariya/migconvert/cmd/migconvert/commands"
	"github.com/satishbabariya/migconvert/internal/config"
	"github.com/satishbabariya/migconvert/internal/debug"
	"github.com/satishbabariya/migconvert/internal/ui"
	"github.com/satishbabariya/migconvert/internal/utils/container"
	"github.com/satishbabariya/migconvert/internal/version"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			ui.PrintError("Error: %v", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	rootCmd := &cobra.Command{
		Use:           "migconvert",
		Short:         "Generate Laravel migrations from an existing database",
		Long:          "migconvert writes create-table migrations for database tables that no migration creates yet",
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(viper.GetBool(config.KeyDebug))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("database-url", "", "Database connection URL (defaults to DATABASE_URL)")
	flags.String("provider", "", "Database provider: mysql, postgresql, sqlite or sqlserver")
	flags.String("base-path", "", "Application base path (defaults to the working directory)")
	flags.Bool("debug", false, "Enable debug logging")

	for key, flag := range map[string]string{
		config.KeyDatabaseURL: "database-url",
		config.KeyProvider:    "provider",
		config.KeyBasePath:    "base-path",
		config.KeyDebug:       "debug",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	factory := func(ctx context.Context) (*container.Container, error) {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Debug {
			debug.Init(true)
		}
		debug.Debug("Configuration loaded", "provider", cfg.Database.Provider, "basePath", cfg.Migrations.BasePath)

		c, err := container.NewContainer(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize container: %w", err)
		}
		return c, nil
	}

	rootCmd.AddCommand(commands.NewConvertCommand(factory))
	rootCmd.AddCommand(commands.NewStatusCommand(factory))
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd.ExecuteContext(ctx)
}
