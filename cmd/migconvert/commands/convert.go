package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/satishbabariya/migconvert/internal/adapters/storage"
	"github.com/satishbabariya/migconvert/internal/config"
	"github.com/satishbabariya/migconvert/internal/core/migration/domain"
	"github.com/satishbabariya/migconvert/internal/core/migration/ledger"
	"github.com/satishbabariya/migconvert/internal/service"
	"github.com/satishbabariya/migconvert/internal/ui"
)

type convertOptions struct {
	pathFlags
	yes    bool
	dryRun bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(factory ContainerFactory) *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Generate migrations for tables that do not have any",
		Long: `Inspect the connected database and write a create-table migration for
every table no existing migration creates. The new files can then be
recorded in the migrations table as already run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, factory, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Record the generated files without asking")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func runConvert(cmd *cobra.Command, factory ContainerFactory, opts *convertOptions) error {
	ctx := cmd.Context()

	if opts.dryRun {
		viper.Set(config.KeyStorage, string(storage.TypeMemory))
	}

	c, err := factory(ctx)
	if err != nil {
		return err
	}
	defer c.Close(ctx)

	mc := c.Config().Migrations
	svc := c.ConvertService()

	result, err := svc.Convert(ctx, service.ConvertInput{
		Destination:  mc.MigrationPath(opts.path, opts.realpath),
		ScanPaths:    mc.ScanPaths(opts.path, opts.realpath),
		Prefix:       opts.prefix,
		ManifestPath: mc.ManifestPath(),
		OnGenerated: func(file *domain.MigrationFile) {
			ui.PrintLabeled("Created Migration:", file.ID)
		},
	})
	if service.IsMissingHistory(err) {
		ui.PrintError("Migration table not found.")
		return ErrReported
	}
	if err != nil {
		if result != nil && len(result.Files) > 0 {
			ui.PrintWarning("%d migration files were written before the failure and are not recorded.", len(result.Files))
		}
		return fmt.Errorf("failed to generate migrations: %w", err)
	}

	ui.PrintInfo("%d migration files have been generated.", len(result.Files))

	if opts.dryRun {
		ui.PrintWarning("Dry run: nothing was written and the migrations table was left untouched.")
		return nil
	}

	var confirm ledger.Confirmer = ui.NewSurveyConfirmer()
	if opts.yes {
		confirm = ledger.AlwaysConfirm
	}

	rec, err := svc.Reconcile(ctx, result.Identifiers(), confirm)
	if err != nil {
		return err
	}
	if !rec.Skipped {
		ui.PrintInfo("%d files added to migrations table with batch number %d.", len(rec.Recorded), rec.Batch)
	}

	return nil
}
