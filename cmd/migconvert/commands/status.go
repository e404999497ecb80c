package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/migconvert/internal/core/migration/filter"
	"github.com/satishbabariya/migconvert/internal/service"
	"github.com/satishbabariya/migconvert/internal/ui"
)

type statusOptions struct {
	pathFlags
	format string
}

// NewStatusCommand creates the status command.
func NewStatusCommand(factory ContainerFactory) *cobra.Command {
	opts := &statusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which tables already have a migration",
		Long:  "List every table of the connected database and whether convert would generate a migration for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, factory, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, markdown or yaml")

	return cmd
}

func runStatus(cmd *cobra.Command, factory ContainerFactory, opts *statusOptions) error {
	ctx := cmd.Context()

	c, err := factory(ctx)
	if err != nil {
		return err
	}
	defer c.Close(ctx)

	mc := c.Config().Migrations
	spinner, _ := ui.StartSpinner("Inspecting database tables...")
	statuses, err := c.ConvertService().Status(ctx, service.ConvertInput{
		ScanPaths:    mc.ScanPaths(opts.path, opts.realpath),
		Prefix:       opts.prefix,
		ManifestPath: mc.ManifestPath(),
	})
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to read status: %w", err)
	}

	switch opts.format {
	case "table":
		if err := ui.PrintTable([]string{"Table", "Status", "Migration"}, statusRows(statuses)); err != nil {
			return err
		}
		ui.PrintSection("Pending:", fmt.Sprintf("%d of %d tables", countPending(statuses), len(statuses)))
		return nil
	case "markdown":
		return ui.PrintMarkdown(statusMarkdown(statuses))
	case "yaml":
		enc := yaml.NewEncoder(ui.Stdout)
		defer enc.Close()
		return enc.Encode(statuses)
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

func statusLabel(reason filter.Reason) string {
	switch reason {
	case filter.Eligible:
		return "pending"
	case filter.Excluded:
		return "covered"
	case filter.PrefixMismatch:
		return "filtered"
	default:
		return string(reason)
	}
}

func statusRows(statuses []service.TableStatus) [][]string {
	rows := make([][]string, len(statuses))
	for i, s := range statuses {
		rows[i] = []string{s.Table, statusLabel(s.Status), s.Migration}
	}
	return rows
}

func countPending(statuses []service.TableStatus) int {
	n := 0
	for _, s := range statuses {
		if s.Status == filter.Eligible {
			n++
		}
	}
	return n
}

func statusMarkdown(statuses []service.TableStatus) string {
	var b strings.Builder
	b.WriteString("# Migration status\n\n")
	b.WriteString("| Table | Status | Migration |\n")
	b.WriteString("|---|---|---|\n")
	for _, s := range statuses {
		migration := s.Migration
		if migration != "" {
			migration = "`" + migration + "`"
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.Table, statusLabel(s.Status), migration)
	}
	fmt.Fprintf(&b, "\n**%d** of %d tables pending.\n", countPending(statuses), len(statuses))
	return b.String()
}
