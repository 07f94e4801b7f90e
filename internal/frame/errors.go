package frame

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes frame-tree failures.
type ErrorCode string

const (
	// ErrCodeInvalidName indicates an identifier outside [0-9a-z-]+.
	ErrCodeInvalidName ErrorCode = "INVALID_NAME"

	// ErrCodeUnknownFrame indicates a referenced frame does not exist.
	ErrCodeUnknownFrame ErrorCode = "UNKNOWN_FRAME"

	// ErrCodeDuplicateName indicates an insert collided with an existing frame.
	ErrCodeDuplicateName ErrorCode = "DUPLICATE_NAME"

	// ErrCodeImmutableRoot indicates an attempt to mutate the root frame.
	ErrCodeImmutableRoot ErrorCode = "IMMUTABLE_ROOT"

	// ErrCodeInvalidPose indicates a malformed or non-rigid input pose.
	ErrCodeInvalidPose ErrorCode = "INVALID_POSE"

	// ErrCodeCycleDetected indicates a parent chain that revisits a frame.
	ErrCodeCycleDetected ErrorCode = "CYCLE_DETECTED"
)

// Error is the typed failure surfaced by every layer of the frame tree.
//
// All validation is synchronous and there is no local recovery: an Error
// aborts the operation that produced it and propagates to the caller,
// possibly wrapped with fmt.Errorf("...: %w", err).
type Error struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Name is the offending frame or world identifier, when known.
	Name string

	// Path is the parent chain that revealed a cycle (for CYCLE_DETECTED).
	Path []string

	// Err is the underlying cause, if any (for INVALID_POSE).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case len(e.Path) > 0:
		return fmt.Sprintf("%s: parent chain revisits %q: %s", e.Code, e.Name, strings.Join(e.Path, " -> "))
	case e.Err != nil && e.Name != "":
		return fmt.Sprintf("%s: frame %q: %v", e.Code, e.Name, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	case e.Name != "":
		return fmt.Sprintf("%s: %q", e.Code, e.Name)
	default:
		return string(e.Code)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf extracts the ErrorCode from err, unwrapping as needed.
// Returns "" if err carries no frame Error.
func CodeOf(err error) ErrorCode {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}

// IsInvalidName reports whether err is an INVALID_NAME failure.
func IsInvalidName(err error) bool { return CodeOf(err) == ErrCodeInvalidName }

// IsUnknownFrame reports whether err is an UNKNOWN_FRAME failure.
func IsUnknownFrame(err error) bool { return CodeOf(err) == ErrCodeUnknownFrame }

// IsDuplicateName reports whether err is a DUPLICATE_NAME failure.
func IsDuplicateName(err error) bool { return CodeOf(err) == ErrCodeDuplicateName }

// IsImmutableRoot reports whether err is an IMMUTABLE_ROOT failure.
func IsImmutableRoot(err error) bool { return CodeOf(err) == ErrCodeImmutableRoot }

// IsInvalidPose reports whether err is an INVALID_POSE failure.
func IsInvalidPose(err error) bool { return CodeOf(err) == ErrCodeInvalidPose }

// IsCycleDetected reports whether err is a CYCLE_DETECTED failure.
func IsCycleDetected(err error) bool { return CodeOf(err) == ErrCodeCycleDetected }

// NewInvalidName creates an INVALID_NAME error for the given identifier.
func NewInvalidName(name string) *Error {
	return &Error{Code: ErrCodeInvalidName, Name: name}
}

// NewUnknownFrame creates an UNKNOWN_FRAME error for the given frame.
func NewUnknownFrame(name string) *Error {
	return &Error{Code: ErrCodeUnknownFrame, Name: name}
}

// NewDuplicateName creates a DUPLICATE_NAME error for the given frame.
func NewDuplicateName(name string) *Error {
	return &Error{Code: ErrCodeDuplicateName, Name: name}
}

// NewImmutableRoot creates an IMMUTABLE_ROOT error.
func NewImmutableRoot() *Error {
	return &Error{Code: ErrCodeImmutableRoot, Name: Root}
}

// NewInvalidPose creates an INVALID_POSE error wrapping the cause.
func NewInvalidPose(err error) *Error {
	return &Error{Code: ErrCodeInvalidPose, Err: err}
}

// NewCycleDetected creates a CYCLE_DETECTED error. name is the frame whose
// resolution revealed the cycle and path the parent chain walked so far,
// ending at the revisited frame.
func NewCycleDetected(name string, path []string) *Error {
	return &Error{Code: ErrCodeCycleDetected, Name: name, Path: path}
}
