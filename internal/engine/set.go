package engine

import (
	"context"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
	"github.com/PhilNad/with-respect-to/internal/store"
)

// Mutator writes frame placements into one store.
type Mutator struct {
	store *store.Store
}

// NewMutator creates a Mutator over the given store.
func NewMutator(s *store.Store) *Mutator {
	return &Mutator{store: s}
}

// Set records that frameName sits at p relative to reference, with p's
// components expressed in the axes of expressedIn. The frame's previous
// row (if any) is replaced; its parent becomes reference.
//
// Validation runs in full before anything is written, and the write itself
// is one atomic replace, so a failing Set never loses the existing frame.
//
// Fails with INVALID_NAME for a malformed identifier, IMMUTABLE_ROOT when
// frameName is the root, and UNKNOWN_FRAME when reference or expressedIn
// is absent.
func (m *Mutator) Set(ctx context.Context, frameName, reference, expressedIn string, p pose.Pose) error {
	for _, name := range []string{frameName, reference, expressedIn} {
		if err := frame.CheckName(name); err != nil {
			return err
		}
	}
	if frameName == frame.Root {
		return frame.NewImmutableRoot()
	}

	ix, err := newResolverIndex(ctx, m.store)
	if err != nil {
		return err
	}
	if _, ok := ix[reference]; !ok {
		return frame.NewUnknownFrame(reference)
	}

	stored := p
	if expressedIn != reference {
		// Re-express p's components in the reference frame's axes.
		// The basis change Rot(pw(ref))ᵀ·Rot(pw(ei)) is the exact inverse
		// of the resolver's expressed-in reframe, which keeps
		// set-then-get round trips exact.
		if _, ok := ix[expressedIn]; !ok {
			return frame.NewUnknownFrame(expressedIn)
		}
		xWR, err := ix.poseWrtWorld(reference)
		if err != nil {
			return err
		}
		xWE, err := ix.poseWrtWorld(expressedIn)
		if err != nil {
			return err
		}
		basis := xWR.Inverse().RotationOnly().Compose(xWE.RotationOnly())
		stored = p.RotateBy(basis.R)
	}

	return m.store.Replace(ctx, frame.Frame{
		Name:   frameName,
		Parent: reference,
		Pose:   stored,
	})
}

// Delete removes frameName from the store. Absent frames are a no-op;
// the root frame cannot be removed.
//
// Frames parented to the removed frame keep their rows; resolving them
// afterwards reports UNKNOWN_FRAME for the missing link.
func (m *Mutator) Delete(ctx context.Context, frameName string) error {
	if err := frame.CheckName(frameName); err != nil {
		return err
	}
	return m.store.Delete(ctx, frameName)
}

func newResolverIndex(ctx context.Context, s *store.Store) (index, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return index(all), nil
}
