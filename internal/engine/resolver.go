package engine

import (
	"context"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/store"
)

// Resolver answers "pose of frame F with respect to reference R, expressed
// in the axes of frame I" against one store.
//
// Each resolution loads a full snapshot of the tree in a single query and
// walks parent pointers in memory, so the cost is one round trip per
// Resolve call rather than one per ancestor.
type Resolver struct {
	store *store.Store
}

// NewResolver creates a Resolver over the given store.
func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// index is the per-resolution in-memory view of the tree.
type index map[string]frame.Frame

// poseWrtWorld climbs the parent chain from name to the root, composing
// relative poses into the frame's pose with respect to world, expressed in
// world axes: pw(f) = pw(parent) ∘ rel(f), with pw(world) = identity.
//
// Fails with UNKNOWN_FRAME if any name in the chain is missing and with
// CYCLE_DETECTED if the chain revisits a frame. String-keyed parent
// pointers admit cycles, so the walk never trusts the tree to terminate.
func (ix index) poseWrtWorld(name string) (pose.Pose, error) {
	result := pose.Identity()
	visited := map[string]bool{}
	var path []string

	for cur := name; cur != frame.Root; {
		if visited[cur] {
			return pose.Pose{}, frame.NewCycleDetected(cur, append(path, cur))
		}
		visited[cur] = true
		path = append(path, cur)

		f, ok := ix[cur]
		if !ok {
			return pose.Pose{}, frame.NewUnknownFrame(cur)
		}
		// Climbing child to parent pre-multiplies the accumulated pose.
		result = f.Pose.Compose(result)
		cur = f.Parent
	}
	return result, nil
}

// PoseWrtWorld returns the pose of name with respect to world, expressed
// in world axes.
func (r *Resolver) PoseWrtWorld(ctx context.Context, name string) (pose.Pose, error) {
	ix, err := r.snapshot(ctx)
	if err != nil {
		return pose.Pose{}, err
	}
	return ix.poseWrtWorld(name)
}

// Resolve computes the pose of frameName with respect to reference,
// expressed in the axes of expressedIn.
//
// The reference frame's placement is removed by negating only its world
// translation; no rotational inverse is applied at that step. This
// preserves the reference behavior of the system verbatim (see DESIGN.md:
// the worked fixtures depend on it, and the round-trip property holds
// under it exactly).
//
// Switching the expressed-in basis applies only the rotation of the
// inverted expressed-in world pose: the quantity being re-expressed is a
// relative pose, so only a change of basis is meaningful and no
// translation term participates.
func (r *Resolver) Resolve(ctx context.Context, frameName, reference, expressedIn string) (pose.Pose, error) {
	ix, err := r.snapshot(ctx)
	if err != nil {
		return pose.Pose{}, err
	}
	return ix.resolve(frameName, reference, expressedIn)
}

func (ix index) resolve(frameName, reference, expressedIn string) (pose.Pose, error) {
	xWF, err := ix.poseWrtWorld(frameName)
	if err != nil {
		return pose.Pose{}, err
	}
	xWR, err := ix.poseWrtWorld(reference)
	if err != nil {
		return pose.Pose{}, err
	}

	// Remove the reference placement: translation-only, identity rotation.
	xRW := pose.Translation(-xWR.T[0], -xWR.T[1], -xWR.T[2])
	xRFw := xRW.Compose(xWF)

	xWI, err := ix.poseWrtWorld(expressedIn)
	if err != nil {
		return pose.Pose{}, err
	}
	xIW := xWI.Inverse()

	return xRFw.RotateBy(xIW.R), nil
}

// snapshot loads the current tree into an index.
func (r *Resolver) snapshot(ctx context.Context) (index, error) {
	all, err := r.store.All(ctx)
	if err != nil {
		return nil, err
	}
	return index(all), nil
}
