// Package severity provides severity level constants and utilities for
// issues reported by the converter package.
//
// The severity levels are ordered from most to least severe:
// Error > Warning > Info
package severity

// Severity indicates the severity level of an issue found during conversion.
type Severity int

const (
	// SeverityError indicates a violation that must be fixed for the
	// document to conform to the current schema dialect.
	SeverityError Severity = iota

	// SeverityWarning indicates a violation that was downgraded through
	// configuration. The fix is still applied but the issue does not count
	// against a clean exit.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	// These are non-actionable notices that may be useful for debugging.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}
