package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PhilNad/with-respect-to/internal/frame"
	"github.com/PhilNad/with-respect-to/internal/pose"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (unknown frame, invalid name, cycle, ...)
	ExitCommandError = 2 // Command error (invalid paths, bad flags, unreadable files)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Typed frame failures
// map to ExitFailure; anything else defaults to ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if frame.CodeOf(err) != "" {
		return ExitFailure
	}
	return ExitCommandError
}

// poseJSON is the wire shape of a pose in --format=json output.
type poseJSON struct {
	Rotation    [3][3]float64 `json:"rotation"`
	Translation [3]float64    `json:"translation"`
}

// writePose renders a pose in the selected format.
func writePose(w io.Writer, format string, p pose.Pose) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		return enc.Encode(poseJSON{Rotation: p.R, Translation: p.T})
	}
	m := p.Matrix()
	for i := 0; i < 4; i++ {
		fmt.Fprintf(w, "% .6f % .6f % .6f % .6f\n", m[i][0], m[i][1], m[i][2], m[i][3])
	}
	return nil
}

// writeJSON renders any value as a single JSON document.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
