package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/migconvert/internal/ui"
	"github.com/satishbabariya/migconvert/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Display version information for the migconvert CLI",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			if verbose {
				fmt.Fprintln(ui.Stdout, info.FullString())
				return
			}
			fmt.Fprintln(ui.Stdout, info.String())
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show build details")

	return cmd
}
