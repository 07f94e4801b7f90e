package viz

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// FramePose is one frame's placement as seen by a plotting consumer:
// its pose with respect to world, expressed in world axes.
type FramePose struct {
	Name        string        `json:"name"`
	Parent      string        `json:"parent,omitempty"`
	Rotation    [3][3]float64 `json:"rotation"`
	Translation [3]float64    `json:"translation"`
}

// Snapshot walks every frame of the world and resolves its world-expressed
// pose: ListFrames, then Get(name).Wrt("world").Ei("world") per name.
// This is the read surface plotting consumers build on. Results are
// sorted by frame name.
func Snapshot(ctx context.Context, w *world.World) ([]FramePose, error) {
	names, err := w.ListFrames(ctx)
	if err != nil {
		return nil, err
	}
	records, err := w.Frames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]FramePose, 0, len(names))
	for _, name := range names {
		p, err := w.Get(name).Wrt(frame.Root).Ei(ctx, frame.Root)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		out = append(out, FramePose{
			Name:        name,
			Parent:      records[name].Parent,
			Rotation:    p.R,
			Translation: p.T,
		})
	}
	return out, nil
}

// RenderTree writes the world's parent tree in ASCII, one frame per line,
// children sorted by name, each annotated with its world translation:
//
//	world
//	└── a  t=(1, 1, 1)
//	    └── b  t=(1, 1, 1)
//
// Frames whose parent chain is broken (orphans) are listed beneath the
// tree so the rendering never hides a frame.
func RenderTree(snapshot []FramePose) string {
	children := map[string][]string{}
	byName := map[string]FramePose{}
	for _, fp := range snapshot {
		byName[fp.Name] = fp
		if fp.Name != frame.Root {
			children[fp.Parent] = append(children[fp.Parent], fp.Name)
		}
	}
	for _, kids := range children {
		sort.Strings(kids)
	}

	var b strings.Builder
	seen := map[string]bool{}
	if _, ok := byName[frame.Root]; ok {
		renderSubtree(&b, children, byName, frame.Root, "", seen)
	}

	var orphans []string
	for _, fp := range snapshot {
		if !seen[fp.Name] {
			orphans = append(orphans, fp.Name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		fmt.Fprintf(&b, "%s  (orphaned, parent %q missing)\n", name, byName[name].Parent)
	}
	return b.String()
}

func renderSubtree(b *strings.Builder, children map[string][]string, byName map[string]FramePose, name, prefix string, seen map[string]bool) {
	if seen[name] {
		return
	}
	seen[name] = true

	if name == frame.Root {
		fmt.Fprintf(b, "%s\n", name)
	}
	kids := children[name]
	for i, kid := range kids {
		connector, childPrefix := "├── ", prefix+"│   "
		if i == len(kids)-1 {
			connector, childPrefix = "└── ", prefix+"    "
		}
		fp := byName[kid]
		fmt.Fprintf(b, "%s%s%s  t=(%s)\n", prefix, connector, kid, formatVec(fp.Translation))
		renderSubtree(b, children, byName, kid, childPrefix, seen)
	}
}

// RenderTable writes one row per frame: name, parent, world translation,
// and world orientation as roll/pitch/yaw in degrees.
func RenderTable(snapshot []FramePose) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-16s %-24s %s\n", "NAME", "PARENT", "T (WORLD)", "RPY DEG (WORLD)")
	for _, fp := range snapshot {
		parent := fp.Parent
		if parent == "" {
			parent = "-"
		}
		p := pose.Pose{R: fp.Rotation, T: fp.Translation}
		roll, pitch, yaw := p.ToRPY()
		fmt.Fprintf(&b, "%-16s %-16s %-24s (%s)\n",
			fp.Name, parent,
			"("+formatVec(fp.Translation)+")",
			formatVec([3]float64{roll, pitch, yaw}))
	}
	return b.String()
}

func formatVec(v [3]float64) string {
	return fmt.Sprintf("%s, %s, %s", formatNum(v[0]), formatNum(v[1]), formatNum(v[2]))
}

// formatNum avoids "-0" and trailing noise for the axis-aligned values
// that dominate real trees, while keeping full precision otherwise.
func formatNum(x float64) string {
	if x == 0 {
		return "0"
	}
	return fmt.Sprintf("%.6g", x)
}
