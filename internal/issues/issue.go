// Package issues provides the structured violation record emitted for every
// conversion problem, and the Reporter sink that receives them.
package issues

import (
	"fmt"
	"io"

	"github.com/wixtools/wixconv/internal/severity"
)

// Issue represents a single violation found during conversion.
type Issue struct {
	// Code is the numeric diagnostic code for the violation category
	Code int
	// Test is the name of the test type that detected the violation
	Test string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// File is the source file path (empty when converting in-memory documents)
	File string
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	loc := i.File
	if loc == "" {
		loc = "<document>"
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): WXCP%04d: %s", symbol, loc, i.Line, i.Code, i.Message)
	}
	return fmt.Sprintf("%s %s: WXCP%04d: %s", symbol, loc, i.Code, i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "file:line" if both are known, the file alone when the line is
// unknown, or "<document>" when converting an in-memory document.
func (i Issue) Location() string {
	if i.File == "" {
		return "<document>"
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s:%d", i.File, i.Line)
	}
	return i.File
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Reporter is the diagnostic sink that receives one record per violation.
type Reporter interface {
	Report(issue Issue)
}

// WriterReporter renders each issue to an io.Writer, one line per issue.
type WriterReporter struct {
	W io.Writer
}

// Report writes the rendered issue. Write failures are ignored; the sink is
// diagnostic output, not part of the conversion result.
func (r WriterReporter) Report(issue Issue) {
	_, _ = fmt.Fprintln(r.W, issue.String())
}

// DiscardReporter drops every issue. Useful for callers that only inspect
// the accumulated result.
type DiscardReporter struct{}

// Report does nothing.
func (DiscardReporter) Report(Issue) {}
