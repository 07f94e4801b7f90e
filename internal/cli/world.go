package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/world"
)

// withWorld opens the selected world for the duration of one command.
// The registry (and its store connection) is always released before the
// command returns.
func withWorld(cmd *cobra.Command, opts *RootOptions, fn func(w *world.World) error) error {
	if opts.World == "" {
		return WrapExitError(ExitCommandError, "missing required flag --world", nil)
	}

	reg := world.NewRegistry(opts.Dir)
	defer reg.Close()

	if opts.Verbose {
		slog.Info("opening world", "dir", opts.Dir, "world", opts.World)
	}
	w, err := reg.In(opts.World)
	if err != nil {
		return err
	}
	return fn(w)
}
