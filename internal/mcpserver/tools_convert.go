package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wixtools/wixconv/converter"
	"github.com/wixtools/wixconv/internal/issues"
	"github.com/wixtools/wixconv/xmldoc"
)

type convertInput struct {
	Source           sourceInput `json:"source"                       jsonschema:"The WiX document to convert"`
	Write            bool        `json:"write,omitempty"              jsonschema:"Save the converted document back over the input file (file input only)"`
	Output           string      `json:"output,omitempty"             jsonschema:"File path to write the converted document. If omitted the document is returned inline."`
	Indentation      *int        `json:"indentation,omitempty"        jsonschema:"Spaces per nesting level (default from WIXCONV_INDENTATION)"`
	ErrorsAsWarnings []string    `json:"errors_as_warnings,omitempty" jsonschema:"Test type names to downgrade to warnings"`
	IgnoreErrors     []string    `json:"ignore_errors,omitempty"      jsonschema:"Test type names to suppress entirely"`
}

type convertIssue struct {
	Code     int    `json:"code"`
	Test     string `json:"test"`
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

type convertOutput struct {
	Success      bool           `json:"success"`
	Fixed        bool           `json:"fixed"`
	ErrorCount   int            `json:"error_count"`
	WarningCount int            `json:"warning_count"`
	Issues       []convertIssue `json:"issues,omitempty"`
	Saved        bool           `json:"saved,omitempty"`
	WrittenTo    string         `json:"written_to,omitempty"`
	Document     string         `json:"document,omitempty"`
}

func handleConvert(_ context.Context, _ *mcp.CallToolRequest, input convertInput) (*mcp.CallToolResult, convertOutput, error) {
	if input.Write && input.Source.File == "" {
		return errResult(fmt.Errorf("write requires a file input")), convertOutput{}, nil
	}

	c, err := newConverter(input)
	if err != nil {
		return errResult(err), convertOutput{}, nil
	}

	var result *converter.ConvertResult
	if input.Source.File != "" {
		result, err = c.ConvertFile(input.Source.File, input.Write)
		if err != nil {
			return errResult(err), convertOutput{}, nil
		}
	} else {
		var doc *xmldoc.Document
		doc, err = input.Source.resolve()
		if err != nil {
			return errResult(err), convertOutput{}, nil
		}
		result = c.ConvertDocument(doc)
	}

	output := convertOutput{
		Success:      result.Success(),
		Fixed:        result.Fixed(),
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		Saved:        result.Saved,
	}

	output.Issues = makeSlice[convertIssue](len(result.Issues))
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, convertIssue{
			Code:     issue.Code,
			Test:     issue.Test,
			Severity: issue.Severity.String(),
			Line:     issue.Line,
			Message:  issue.Message,
		})
	}

	// An unreadable document carries no tree to render.
	if result.Document == nil {
		return nil, output, nil
	}

	data := result.Document.Bytes()
	switch {
	case input.Output != "":
		if err := os.WriteFile(input.Output, data, 0o644); err != nil {
			return errResult(fmt.Errorf("failed to write output file: %w", err)), convertOutput{}, nil
		}
		output.WrittenTo = input.Output
	case !input.Write:
		output.Document = string(data)
	}

	return nil, output, nil
}

// newConverter translates the MCP input into a configured converter. Issues
// are collected from the result rather than streamed, so the reporter sink
// is silenced.
func newConverter(input convertInput) (*converter.Converter, error) {
	opts := []converter.Option{
		converter.WithReporter(issues.DiscardReporter{}),
		converter.WithIndentation(cfg.Indentation),
	}
	if input.Indentation != nil {
		opts = append(opts, converter.WithIndentation(*input.Indentation))
	}
	if len(input.ErrorsAsWarnings) > 0 {
		opts = append(opts, converter.WithErrorsAsWarnings(input.ErrorsAsWarnings...))
	}
	if len(input.IgnoreErrors) > 0 {
		opts = append(opts, converter.WithIgnoreErrors(input.IgnoreErrors...))
	}
	return converter.New(opts...)
}
