package issues

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wixtools/wixconv/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "error with line",
			issue: Issue{
				Code:     1009,
				Test:     "XmlnsMissing",
				Message:  "missing xmlns declaration",
				Severity: severity.SeverityError,
				File:     "Product.wxs",
				Line:     3,
			},
			want: "✗ Product.wxs (line 3): WXCP1009: missing xmlns declaration",
		},
		{
			name: "warning without line",
			issue: Issue{
				Code:     1005,
				Test:     "WhitespacePrecedingNodeWrong",
				Message:  "wrong indentation",
				Severity: severity.SeverityWarning,
				File:     "Product.wxs",
			},
			want: "⚠ Product.wxs: WXCP1005: wrong indentation",
		},
		{
			name: "in-memory document",
			issue: Issue{
				Code:     1000,
				Message:  "unknown test type",
				Severity: severity.SeverityError,
			},
			want: "✗ <document>: WXCP1000: unknown test type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestIssueLocation(t *testing.T) {
	assert.Equal(t, "a.wxs:7", Issue{File: "a.wxs", Line: 7}.Location())
	assert.Equal(t, "a.wxs", Issue{File: "a.wxs"}.Location())
	assert.Equal(t, "<document>", Issue{}.Location())
}

func TestIssueHasLocation(t *testing.T) {
	assert.True(t, Issue{Line: 1}.HasLocation())
	assert.False(t, Issue{}.HasLocation())
}

func TestWriterReporter(t *testing.T) {
	var sb strings.Builder
	r := WriterReporter{W: &sb}
	r.Report(Issue{Code: 1002, Message: "unable to save", Severity: severity.SeverityError, File: "x.wxs"})
	assert.Equal(t, "✗ x.wxs: WXCP1002: unable to save\n", sb.String())
}
