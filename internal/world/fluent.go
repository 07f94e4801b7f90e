package world

import (
	"context"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
)

// The fluent chain is staged: each call returns the only type that can
// continue the sentence, so a partially-built request is unrepresentable
// and the complete request dispatches in one place at the terminal call.
// Stages validate their argument eagerly and latch the first error; later
// stages are inert and the terminal call reports the original failure,
// aborting the chain at the offending argument.

// Getter is a pose query with its target frame chosen.
type Getter struct {
	world     *World
	frameName string
	err       error
}

// GetExpressedIn is a pose query with target and reference chosen.
type GetExpressedIn struct {
	world     *World
	frameName string
	reference string
	err       error
}

// Get starts the query "pose of frameName ...".
func (w *World) Get(frameName string) *Getter {
	g := &Getter{world: w, frameName: frameName}
	g.err = frame.CheckName(frameName)
	return g
}

// Wrt names the reference frame the pose is measured against.
func (g *Getter) Wrt(reference string) *GetExpressedIn {
	next := &GetExpressedIn{world: g.world, frameName: g.frameName, reference: reference, err: g.err}
	if next.err == nil {
		next.err = frame.CheckName(reference)
	}
	return next
}

// Ei names the basis the components are expressed in and runs the query.
func (g *GetExpressedIn) Ei(ctx context.Context, expressedIn string) (pose.Pose, error) {
	if g.err != nil {
		return pose.Pose{}, g.err
	}
	if err := frame.CheckName(expressedIn); err != nil {
		return pose.Pose{}, err
	}
	return g.world.resolver.Resolve(ctx, g.frameName, g.reference, expressedIn)
}

// Setter is a placement command with its target frame chosen.
type Setter struct {
	world     *World
	frameName string
	err       error
}

// SetExpressedIn is a placement command with target and reference chosen.
type SetExpressedIn struct {
	world     *World
	frameName string
	reference string
	err       error
}

// SetAs is a fully-specified placement command awaiting its pose.
type SetAs struct {
	world       *World
	frameName   string
	reference   string
	expressedIn string
	err         error
}

// Set starts the command "place frameName ...". The root frame is
// rejected immediately, before any further argument is evaluated:
// "world" can never be a mutation target, only a reference or
// expressed-in frame.
func (w *World) Set(frameName string) *Setter {
	s := &Setter{world: w, frameName: frameName}
	if frameName == frame.Root {
		s.err = frame.NewImmutableRoot()
		return s
	}
	s.err = frame.CheckName(frameName)
	return s
}

// Wrt names the reference frame the new pose is relative to. The frame's
// parent becomes this reference.
func (s *Setter) Wrt(reference string) *SetExpressedIn {
	next := &SetExpressedIn{world: s.world, frameName: s.frameName, reference: reference, err: s.err}
	if next.err == nil {
		next.err = frame.CheckName(reference)
	}
	return next
}

// Ei names the basis the supplied pose components are expressed in.
func (s *SetExpressedIn) Ei(expressedIn string) *SetAs {
	next := &SetAs{
		world:       s.world,
		frameName:   s.frameName,
		reference:   s.reference,
		expressedIn: expressedIn,
		err:         s.err,
	}
	if next.err == nil {
		next.err = frame.CheckName(expressedIn)
	}
	return next
}

// As supplies the pose and executes the command.
func (s *SetAs) As(ctx context.Context, p pose.Pose) error {
	if s.err != nil {
		return s.err
	}
	return s.world.mutator.Set(ctx, s.frameName, s.reference, s.expressedIn, p)
}

// AsMatrix supplies the pose as a 4x4 homogeneous matrix and executes the
// command. The matrix must decompose into a rigid transform; a malformed
// input fails with INVALID_POSE before anything is written.
func (s *SetAs) AsMatrix(ctx context.Context, m [4][4]float64) error {
	if s.err != nil {
		return s.err
	}
	p, err := pose.FromMatrix(m)
	if err != nil {
		return frame.NewInvalidPose(err)
	}
	return s.As(ctx, p)
}
