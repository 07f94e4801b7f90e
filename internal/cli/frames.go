package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/world"
)

// NewFramesCommand creates the frames command.
func NewFramesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "frames",
		Short:         "List all frames in the world",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorld(cmd, rootOpts, func(w *world.World) error {
				names, err := w.ListFrames(cmd.Context())
				if err != nil {
					return err
				}
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), names)
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}
}

// NewRmCommand creates the rm command.
func NewRmCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <frame>",
		Short:         "Remove a frame from the world",
		Long:          "Remove a frame. Removing an absent frame is a no-op; the root frame cannot be removed.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorld(cmd, rootOpts, func(w *world.World) error {
				return w.Delete(cmd.Context(), args[0])
			})
		},
	}
}
