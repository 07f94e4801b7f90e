// Package harness runs YAML-described conformance scenarios against the
// full stack: registry, fluent façade, mutation engine, resolver. Each
// scenario places frames, queries poses, and compares results exactly;
// a scenario can additionally pin the rendered frame tree to a golden
// file.
package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/testutil"
	"github.com/PhilNad/with-respect-to/internal/viz"
)

// RunScenario executes the scenario file at path inside a fresh temporary
// world. Placement failures abort the run; check mismatches are reported
// individually.
func RunScenario(t *testing.T, path string) {
	t.Helper()
	ctx := context.Background()

	scenario, err := LoadScenario(path)
	require.NoError(t, err, "load scenario %s", path)

	reg := testutil.TempRegistry(t)
	w, err := reg.In(scenario.Name)
	require.NoError(t, err)

	for i, step := range scenario.Setup {
		p := pose.RPY(step.RPYDeg[0], step.RPYDeg[1], step.RPYDeg[2])
		p.T = step.Translation
		err := w.Set(step.Frame).Wrt(step.Wrt).Ei(step.expressedIn()).As(ctx, p)
		require.NoError(t, err, "setup[%d]: set %q", i, step.Frame)
	}

	for i, check := range scenario.Checks {
		got, err := w.Get(check.Frame).Wrt(check.Wrt).Ei(ctx, check.expressedIn())
		require.NoError(t, err, "checks[%d]: get %q", i, check.Frame)

		want := pose.Pose{R: check.Rotation, T: check.Translation}
		if want.R == ([3][3]float64{}) {
			want.R = pose.Identity().R
		}
		assert.True(t, got.Equal(want),
			"checks[%d]: Get(%s).Wrt(%s).Ei(%s)\n got %+v\nwant %+v",
			i, check.Frame, check.Wrt, check.expressedIn(), got, want)
	}

	if scenario.TreeGolden {
		snap, err := viz.Snapshot(ctx, w)
		require.NoError(t, err)
		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, scenario.Name, []byte(viz.RenderTree(snap)))
	}
}
