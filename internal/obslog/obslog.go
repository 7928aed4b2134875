// Package obslog is the core's diagnostic sink. Errors never propagate out
// of the core as exceptions: per-node failures, ranges that cannot be
// reconstructed, and ceiling hits are swallowed and logged here instead.
// A range with no rectangles simply gets no overlay and is not logged.
// ANSI-coded prefixes go to stderr, never stdout, so they never interleave
// with structured output a caller might be capturing from stdout.
package obslog

import (
	"fmt"
	"os"
)

const (
	red   = "\033[31m"
	blue  = "\033[34m"
	reset = "\033[0m"
)

// Diagnosef records a non-fatal diagnostic: a skipped node, a truncated
// traversal, a match whose range could not be reconstructed. Never called
// on the happy path.
func Diagnosef(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%sDIAG: %s%s\n", blue, fmt.Sprintf(format, args...), reset)
}

// Errorf records an error that a command has already reported through a
// response with ok=false.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%sERROR: %s%s\n", red, fmt.Sprintf(format, args...), reset)
}
