package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// SetOptions holds flags for the set command.
type SetOptions struct {
	*RootOptions
	Wrt string
	Ei  string
	T   string
	RPY string
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "set <frame>",
		Short: "Place or replace a frame",
		Long: `Place a frame relative to a reference frame. An existing frame with
the same name is replaced and reparented to the reference.

The pose is given as a translation and/or roll-pitch-yaw angles in
degrees, with components expressed in the --ei frame (default: the
reference itself).

Example:
  wrt -w my-world set tool --wrt base --t 0.1,0,0.25
  wrt -w my-world set camera --wrt tool --rpy 0,180,0 --t 0,0,0.05 --ei base`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Ei == "" {
				opts.Ei = opts.Wrt
			}
			return runSet(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Wrt, "wrt", "", "reference frame (required)")
	cmd.Flags().StringVar(&opts.Ei, "ei", "", "expressed-in frame (defaults to --wrt)")
	cmd.Flags().StringVar(&opts.T, "t", "", "translation as x,y,z")
	cmd.Flags().StringVar(&opts.RPY, "rpy", "", "rotation as roll,pitch,yaw degrees")
	_ = cmd.MarkFlagRequired("wrt")

	return cmd
}

func runSet(cmd *cobra.Command, opts *SetOptions, frameName string) error {
	p := pose.Identity()
	if opts.RPY != "" {
		rpy, err := parseTriple(opts.RPY)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --rpy", err)
		}
		p = pose.RPY(rpy[0], rpy[1], rpy[2])
	}
	if opts.T != "" {
		t, err := parseTriple(opts.T)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --t", err)
		}
		p.T = t
	}

	return withWorld(cmd, opts.RootOptions, func(w *world.World) error {
		return w.Set(frameName).Wrt(opts.Wrt).Ei(opts.Ei).As(cmd.Context(), p)
	})
}

// parseTriple parses "x,y,z" into three floats.
func parseTriple(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("want three comma-separated values, got %d", len(parts))
	}
	var out [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
