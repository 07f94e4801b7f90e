package cli

import (
	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/world"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Wrt string
	Ei  string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get <frame>",
		Short: "Query the pose of a frame",
		Long: `Query the pose of a frame with respect to a reference frame,
expressed in the axes of another frame.

Example:
  wrt -w my-world get tool --wrt base
  wrt -w my-world get tool --wrt base --ei camera --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Ei == "" {
				opts.Ei = opts.Wrt
			}
			return runGet(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Wrt, "wrt", "world", "reference frame")
	cmd.Flags().StringVar(&opts.Ei, "ei", "", "expressed-in frame (defaults to --wrt)")

	return cmd
}

func runGet(cmd *cobra.Command, opts *GetOptions, frameName string) error {
	return withWorld(cmd, opts.RootOptions, func(w *world.World) error {
		p, err := w.Get(frameName).Wrt(opts.Wrt).Ei(cmd.Context(), opts.Ei)
		if err != nil {
			return err
		}
		return writePose(cmd.OutOrStdout(), opts.Format, p)
	})
}
