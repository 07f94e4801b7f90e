package scene

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// Apply places every frame of the scene into the world, in document
// order. Frames already present are replaced. The first failure aborts
// the apply; earlier placements remain (applies are not transactional
// across frames, matching one fluent Set per document entry).
func Apply(ctx context.Context, w *world.World, s *Scene) error {
	for i, f := range s.Frames {
		p, err := f.Pose()
		if err != nil {
			return fmt.Errorf("frame %d (%q): %w", i, f.Name, err)
		}
		if err := w.Set(f.Name).Wrt(f.Wrt).Ei(f.ExpressedIn()).As(ctx, p); err != nil {
			return fmt.Errorf("frame %d (%q): %w", i, f.Name, err)
		}
	}
	return nil
}

// Export reconstructs a scene document from a world: every non-root
// frame relative to its stored parent, in parents-before-children order
// so the document can be applied to an empty world as-is. Poses are
// written in matrix form, which round-trips exactly.
//
// Frames whose parent chain is broken are appended at the end; applying
// such a document reports UNKNOWN_FRAME at the offending entry.
func Export(ctx context.Context, w *world.World) (*Scene, error) {
	records, err := w.Frames(ctx)
	if err != nil {
		return nil, err
	}

	children := map[string][]string{}
	for name, f := range records {
		if name == frame.Root {
			continue
		}
		children[f.Parent] = append(children[f.Parent], name)
	}
	for _, kids := range children {
		sort.Strings(kids)
	}

	var s Scene
	emitted := map[string]bool{frame.Root: true}
	queue := []string{frame.Root}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, name := range children[parent] {
			if emitted[name] {
				continue
			}
			emitted[name] = true
			s.Frames = append(s.Frames, exportFrame(records[name]))
			queue = append(queue, name)
		}
	}

	var orphans []string
	for name := range records {
		if !emitted[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		s.Frames = append(s.Frames, exportFrame(records[name]))
	}
	return &s, nil
}

func exportFrame(f frame.Frame) Frame {
	m := f.Pose.Matrix()
	rows := make([][]float64, 4)
	for i := 0; i < 4; i++ {
		rows[i] = append([]float64(nil), m[i][:]...)
	}
	return Frame{
		Name:   f.Name,
		Wrt:    f.Parent,
		Matrix: rows,
	}
}

// Marshal renders a scene back to YAML.
func Marshal(s *Scene) ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return out, nil
}
