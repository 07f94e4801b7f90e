package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/scene"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <scene.yaml>",
		Short: "Apply a scene document to the world",
		Long: `Load a YAML scene document, validate it against the scene schema, and
apply its frame placements in order. Existing frames with the same
names are replaced.

Example:
  wrt -w my-world import robot-cell.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "read scene file", err)
			}
			s, err := scene.Load(data)
			if err != nil {
				return WrapExitError(ExitFailure, "load scene", err)
			}
			return withWorld(cmd, rootOpts, func(w *world.World) error {
				if rootOpts.Verbose {
					slog.Info("applying scene", "file", args[0], "frames", len(s.Frames))
				}
				return scene.Apply(cmd.Context(), w, s)
			})
		},
	}
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the world out as a scene document",
		Long: `Export every frame of the world as a YAML scene document, parents
before children, so the output can be imported into an empty world.
Writes to stdout unless a file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorld(cmd, rootOpts, func(w *world.World) error {
				s, err := scene.Export(cmd.Context(), w)
				if err != nil {
					return err
				}
				data, err := scene.Marshal(s)
				if err != nil {
					return err
				}
				if len(args) == 1 {
					if err := os.WriteFile(args[0], data, 0o644); err != nil {
						return WrapExitError(ExitCommandError, "write scene file", err)
					}
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}
