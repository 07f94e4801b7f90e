// Package testutil provides shared fixtures for tests that need a
// populated world: a temporary registry and the worked demo tree used
// throughout the test suite.
package testutil

import (
	"context"
	"testing"

	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/world"
)

// TempRegistry returns a Registry rooted in a per-test temporary
// directory, closed automatically when the test ends.
func TempRegistry(t *testing.T) *world.Registry {
	t.Helper()
	r := world.NewRegistry(t.TempDir())
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("close registry: %v", err)
		}
	})
	return r
}

// DemoWorld opens the named world and seeds the worked reference tree:
//
//	a: at world, translation (1,1,1)
//	b: at a, rotated 90° about X
//	c: at b, translation (1,0,0)
//	d: at b, rotated 90° about Z, translation (1,1,0)
func DemoWorld(t *testing.T, r *world.Registry, name string) *world.World {
	t.Helper()
	ctx := context.Background()

	w, err := r.In(name)
	if err != nil {
		t.Fatalf("open world %q: %v", name, err)
	}

	d := pose.RotZ(90)
	d.T = [3]float64{1, 1, 0}

	steps := []struct {
		frame, wrt, ei string
		pose           pose.Pose
	}{
		{"a", "world", "world", pose.Translation(1, 1, 1)},
		{"b", "a", "a", pose.RotX(90)},
		{"c", "b", "b", pose.Translation(1, 0, 0)},
		{"d", "b", "b", d},
	}
	for _, s := range steps {
		if err := w.Set(s.frame).Wrt(s.wrt).Ei(s.ei).As(ctx, s.pose); err != nil {
			t.Fatalf("seed frame %q: %v", s.frame, err)
		}
	}
	return w
}
