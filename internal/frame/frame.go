package frame

import (
	"regexp"

	"github.com/PhilNad/with-respect-to/internal/pose"
)

// Root is the name of the distinguished root frame of every world. Its
// pose is always identity and it can never be mutated or deleted.
const Root = "world"

// Frame is the sole persisted entity: a named coordinate system positioned
// relative to its parent.
type Frame struct {
	// Name uniquely identifies the frame within its world.
	Name string

	// Parent names the frame this one is positioned relative to.
	// Empty only for the root frame.
	Parent string

	// Pose is this frame's pose with respect to its parent, expressed in
	// the parent's coordinate axes.
	Pose pose.Pose
}

// IsRoot reports whether f is the root frame.
func (f Frame) IsRoot() bool {
	return f.Name == Root
}

// namePattern is the wire-level contract for frame and world identifiers.
var namePattern = regexp.MustCompile(`^[0-9a-z-]+$`)

// ValidName reports whether s is a legal frame or world identifier:
// one or more of [0-9a-z-].
func ValidName(s string) bool {
	return namePattern.MatchString(s)
}

// CheckName returns an INVALID_NAME error if s is not a legal identifier.
func CheckName(s string) error {
	if !ValidName(s) {
		return NewInvalidName(s)
	}
	return nil
}
