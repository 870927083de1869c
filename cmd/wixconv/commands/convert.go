package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wixtools/wixconv"
	"github.com/wixtools/wixconv/converter"
	"github.com/wixtools/wixconv/internal/cliutil"
	"github.com/wixtools/wixconv/internal/issues"
	"github.com/wixtools/wixconv/xmldoc"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	Indent           int
	Settings         string
	ErrorsAsWarnings stringList
	IgnoreErrors     stringList
	Write            bool
	Output           string
	Format           string
	Quiet            bool
}

// SetupConvertFlags creates and configures a FlagSet for the convert command.
// Returns the FlagSet and a ConvertFlags struct with bound flag variables.
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.IntVar(&flags.Indent, "indent", converter.DefaultIndentation, "spaces per nesting level in converted output")
	fs.StringVar(&flags.Settings, "settings", "", "path to a YAML settings file")
	fs.Var(&flags.ErrorsAsWarnings, "error-as-warning", "test type to downgrade to a warning (repeatable)")
	fs.Var(&flags.IgnoreErrors, "ignore", "test type to suppress entirely (repeatable)")
	fs.BoolVar(&flags.Write, "w", false, "write converted documents back over their source files")
	fs.StringVar(&flags.Output, "o", "", "output file path (single input only; default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (single input only; default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatText, "report format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: wixconv convert [flags] <file...|->\n\n")
		cliutil.Writef(fs.Output(), "Convert WiX v3 authoring to the v4 schema.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  wixconv convert -w Product.wxs\n")
		cliutil.Writef(fs.Output(), "  wixconv convert -w src/*.wxs\n")
		cliutil.Writef(fs.Output(), "  wixconv convert Product.wxs -o Product-v4.wxs\n")
		cliutil.Writef(fs.Output(), "  wixconv convert -settings wixconv.yaml -w Product.wxs\n")
		cliutil.Writef(fs.Output(), "  wixconv convert -ignore WhitespacePrecedingNodeWrong -w Product.wxs\n")
		cliutil.Writef(fs.Output(), "  wixconv convert -format json Product.wxs\n")
		cliutil.Writef(fs.Output(), "  cat Product.wxs | wixconv convert -q - > Product-v4.wxs\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		cliutil.Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Without -w the converted document is printed to stdout\n")
		cliutil.Writef(fs.Output(), "  - With -w only files with violations are rewritten\n")
		cliutil.Writef(fs.Output(), "  - Each violation carries a WXCP code and the source line it was found on\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    No violations found (or all downgraded/suppressed)\n")
		cliutil.Writef(fs.Output(), "  1    Violations with error severity were found\n")
	}

	return fs, flags
}

// fileReport is the per-file entry in a structured conversion report.
type fileReport struct {
	Path     string        `json:"path"`
	Fixed    bool          `json:"fixed"`
	Saved    bool          `json:"saved,omitempty"`
	Errors   int           `json:"errors"`
	Warnings int           `json:"warnings"`
	Issues   []issueReport `json:"issues,omitempty"`
}

type issueReport struct {
	Code     int    `json:"code"`
	Test     string `json:"test"`
	Severity string `json:"severity"`
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
}

type convertReport struct {
	Files        []fileReport `json:"files"`
	ErrorCount   int          `json:"error_count"`
	WarningCount int          `json:"warning_count"`
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires at least one file path, or '-' for stdin")
	}
	inputs := fs.Args()

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Output != "" && len(inputs) != 1 {
		return fmt.Errorf("-o requires exactly one input file")
	}
	for _, input := range inputs {
		if input == StdinFilePath {
			if len(inputs) != 1 {
				return fmt.Errorf("'-' cannot be combined with other inputs")
			}
			if flags.Write {
				return fmt.Errorf("-w cannot be used with stdin input")
			}
		}
	}

	c, err := newConverter(fs, flags)
	if err != nil {
		return err
	}

	report := convertReport{Files: make([]fileReport, 0, len(inputs))}
	for _, input := range inputs {
		result, err := convertOne(c, input, flags)
		if err != nil {
			return err
		}

		entry := fileReport{
			Path:     FormatSourcePath(input),
			Fixed:    result.Fixed(),
			Saved:    result.Saved,
			Errors:   result.ErrorCount,
			Warnings: result.WarningCount,
		}
		for _, issue := range result.Issues {
			entry.Issues = append(entry.Issues, issueReport{
				Code:     issue.Code,
				Test:     issue.Test,
				Severity: issue.Severity.String(),
				Line:     issue.Line,
				Message:  issue.Message,
			})
		}
		report.Files = append(report.Files, entry)
		report.ErrorCount += result.ErrorCount
		report.WarningCount += result.WarningCount
	}

	switch {
	case flags.Format != FormatText:
		if err := OutputStructured(report, flags.Format); err != nil {
			return err
		}
	case !flags.Quiet:
		printSummary(report)
	}

	if report.ErrorCount > 0 {
		osExit(1)
	}
	return nil
}

// newConverter builds the converter from the parsed flags. Settings from a
// file apply first so explicitly passed flags override them.
func newConverter(fs *flag.FlagSet, flags *ConvertFlags) (*converter.Converter, error) {
	var opts []converter.Option
	if flags.Settings != "" {
		opts = append(opts, converter.WithSettingsFile(flags.Settings))
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "indent" {
			opts = append(opts, converter.WithIndentation(flags.Indent))
		}
	})
	if len(flags.ErrorsAsWarnings) > 0 {
		opts = append(opts, converter.WithErrorsAsWarnings(flags.ErrorsAsWarnings...))
	}
	if len(flags.IgnoreErrors) > 0 {
		opts = append(opts, converter.WithIgnoreErrors(flags.IgnoreErrors...))
	}

	// In quiet or structured mode issues come out of the report, not the
	// live stderr stream.
	if flags.Quiet || flags.Format != FormatText {
		opts = append(opts, converter.WithReporter(issues.DiscardReporter{}))
	}

	return converter.New(opts...)
}

// convertOne converts a single input and routes the document to its
// destination: back over the source with -w, to -o, or to stdout.
func convertOne(c *converter.Converter, input string, flags *ConvertFlags) (*converter.ConvertResult, error) {
	var result *converter.ConvertResult

	if input == StdinFilePath {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		doc, err := xmldoc.ParseString(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing stdin: %w", err)
		}
		result = c.ConvertDocument(doc)
	} else {
		var err error
		result, err = c.ConvertFile(input, flags.Write)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", input, err)
		}
	}

	if flags.Write || result.Document == nil {
		return result, nil
	}

	data := result.Document.Bytes()
	if flags.Output != "" {
		if err := os.WriteFile(flags.Output, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing output file: %w", err)
		}
		if !flags.Quiet && flags.Format == FormatText {
			cliutil.Writef(os.Stderr, "Output written to: %s\n", flags.Output)
		}
	} else if flags.Format == FormatText {
		if _, err := os.Stdout.Write(data); err != nil {
			return nil, fmt.Errorf("writing converted document to stdout: %w", err)
		}
	}

	return result, nil
}

// printSummary renders the text-format report to stderr.
func printSummary(report convertReport) {
	cliutil.Writef(os.Stderr, "\nwixconv version: %s\n", wixconv.Version())
	for _, f := range report.Files {
		switch {
		case f.Errors == 0 && f.Warnings == 0:
			cliutil.Writef(os.Stderr, "✓ %s: clean\n", f.Path)
		case f.Saved:
			cliutil.Writef(os.Stderr, "✗ %s: %d error(s), %d warning(s), saved\n", f.Path, f.Errors, f.Warnings)
		default:
			cliutil.Writef(os.Stderr, "✗ %s: %d error(s), %d warning(s)\n", f.Path, f.Errors, f.Warnings)
		}
	}
	if len(report.Files) > 1 {
		cliutil.Writef(os.Stderr, "Converted %d file(s): %d error(s), %d warning(s)\n",
			len(report.Files), report.ErrorCount, report.WarningCount)
	}
}
