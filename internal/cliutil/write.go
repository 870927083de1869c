// Package cliutil provides small helpers shared by the CLI commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer. A failed write is noted on
// stderr instead of aborting the command.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Errorf writes an error line to stderr in the standard CLI shape.
func Errorf(format string, args ...any) {
	Writef(os.Stderr, "Error: "+format+"\n", args...)
}
