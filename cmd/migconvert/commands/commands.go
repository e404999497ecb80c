// Package commands implements CLI commands.
package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/migconvert/internal/utils/container"
)

// ErrReported marks a failure whose message was already printed.
var ErrReported = errors.New("error already reported")

// ContainerFactory builds the dependency container for a command run.
type ContainerFactory func(ctx context.Context) (*container.Container, error)

// pathFlags are the location flags shared by convert and status.
type pathFlags struct {
	path     string
	realpath bool
	prefix   string
}

func (f *pathFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", "", "The location where the migration file should be created")
	cmd.Flags().BoolVar(&f.realpath, "realpath", false, "Indicate any provided migration file paths are pre-resolved absolute paths")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Include only tables with this prefix")
}
