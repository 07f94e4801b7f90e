package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/viz"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// TreeOptions holds flags for the tree command.
type TreeOptions struct {
	*RootOptions
	Table bool
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the frame tree",
		Long: `Render the world's frame tree with every frame's pose resolved with
respect to world, expressed in world. Text output draws the parent
hierarchy; --table prints one row per frame; JSON output emits the raw
snapshot for plotting tools.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorld(cmd, opts.RootOptions, func(w *world.World) error {
				snap, err := viz.Snapshot(cmd.Context(), w)
				if err != nil {
					return err
				}
				switch {
				case opts.Format == "json":
					return writeJSON(cmd.OutOrStdout(), snap)
				case opts.Table:
					fmt.Fprint(cmd.OutOrStdout(), viz.RenderTable(snap))
					return nil
				default:
					fmt.Fprint(cmd.OutOrStdout(), viz.RenderTree(snap))
					return nil
				}
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Table, "table", false, "print a table instead of a tree")

	return cmd
}
