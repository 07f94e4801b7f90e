// Package cli implements the wrt command-line interface: pose queries and
// frame placement against named world databases, tree rendering, and
// scene import/export. Commands return errors rather than exiting; the
// main package maps them to exit codes with GetExitCode.
package cli
