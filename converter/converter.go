package converter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/wixtools/wixconv/internal/issues"
	"github.com/wixtools/wixconv/internal/severity"
	"github.com/wixtools/wixconv/xmldoc"
)

// Severity indicates the severity level of a conversion issue
type Severity = severity.Severity

const (
	// SeverityError indicates a violation counted against a clean exit
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a violation downgraded through configuration
	SeverityWarning = severity.SeverityWarning
)

// Issue represents a single violation found during conversion
type Issue = issues.Issue

// Reporter is the diagnostic sink that receives one record per violation
type Reporter = issues.Reporter

// DefaultIndentation is the spaces-per-level used when no indentation is
// configured.
const DefaultIndentation = 4

// ConvertResult contains the results of converting one document.
type ConvertResult struct {
	// Document is the converted document, mutated in place
	Document *xmldoc.Document
	// SourcePath is the path the document was read from (empty for
	// in-memory documents)
	SourcePath string
	// Issues contains every reported violation in detection order
	Issues []Issue
	// ErrorCount is the number of issues with error severity
	ErrorCount int
	// WarningCount is the number of issues downgraded to warnings
	WarningCount int
	// Saved is true when the converted document was written back to its
	// source
	Saved bool
}

// Fixed returns true if any violation was found. Persistence is only
// warranted when the conversion changed or wanted to change something.
func (r *ConvertResult) Fixed() bool {
	return len(r.Issues) > 0
}

// Success returns true if no error-severity violations remain.
func (r *ConvertResult) Success() bool {
	return r.ErrorCount == 0
}

// Converter migrates documents from the deprecated schema dialect to the
// current one, enforcing canonical whitespace along the way.
//
// A Converter may be reused sequentially across documents; its run-scoped
// state is reset at the start of each conversion. It must not be used
// concurrently - create separate instances for concurrent use.
type Converter struct {
	indentation int
	warnings    map[TestType]bool
	ignored     map[TestType]bool
	reporter    issues.Reporter

	// unresolved configuration names, reported once on first conversion
	unknownNames []string

	// run state, reset per conversion
	sourcePath string
	result     *ConvertResult
}

// Option configures a Converter.
type Option func(*config) error

// config holds configuration collected from options before resolution.
type config struct {
	indentation      int
	errorsAsWarnings []string
	ignoreErrors     []string
	reporter         issues.Reporter
	settingsPath     string
}

// WithIndentation sets the number of spaces per nesting level used for
// canonical whitespace. Must be non-negative.
func WithIndentation(spaces int) Option {
	return func(cfg *config) error {
		if spaces < 0 {
			return fmt.Errorf("indentation must be non-negative, got %d", spaces)
		}
		cfg.indentation = spaces
		return nil
	}
}

// WithErrorsAsWarnings downgrades the named test types to warning
// severity. Names resolve case-insensitively; unresolvable names are
// reported once as ConverterTestTypeUnknown rather than failing.
func WithErrorsAsWarnings(names ...string) Option {
	return func(cfg *config) error {
		cfg.errorsAsWarnings = append(cfg.errorsAsWarnings, names...)
		return nil
	}
}

// WithIgnoreErrors suppresses the named test types entirely: the violation
// is not counted and the corresponding fix is never applied. Names resolve
// like WithErrorsAsWarnings.
func WithIgnoreErrors(names ...string) Option {
	return func(cfg *config) error {
		cfg.ignoreErrors = append(cfg.ignoreErrors, names...)
		return nil
	}
}

// WithReporter sets the diagnostic sink. The default reporter renders each
// issue to stderr.
func WithReporter(r issues.Reporter) Option {
	return func(cfg *config) error {
		if r == nil {
			return errors.New("reporter cannot be nil")
		}
		cfg.reporter = r
		return nil
	}
}

// WithSettingsFile loads indentation and test-type configuration from a
// YAML settings file. Options given after this one override the file.
func WithSettingsFile(path string) Option {
	return func(cfg *config) error {
		if path == "" {
			return errors.New("settings file path cannot be empty")
		}
		cfg.settingsPath = path
		return nil
	}
}

// settingsFile is the YAML shape of a converter settings file.
type settingsFile struct {
	Indentation      *int     `yaml:"indentation"`
	ErrorsAsWarnings []string `yaml:"errorsAsWarnings"`
	IgnoreErrors     []string `yaml:"ignoreErrors"`
}

// New creates a Converter. It returns an error only for unusable
// configuration (bad indentation, unreadable settings file); unrecognized
// test-type names are reported during the first conversion instead.
func New(opts ...Option) (*Converter, error) {
	cfg := &config{
		indentation: DefaultIndentation,
		reporter:    issues.WriterReporter{W: os.Stderr},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("converter: invalid options: %w", err)
		}
	}

	if cfg.settingsPath != "" {
		if err := loadSettings(cfg); err != nil {
			return nil, fmt.Errorf("converter: %w", err)
		}
	}

	c := &Converter{
		indentation: cfg.indentation,
		warnings:    map[TestType]bool{},
		ignored:     map[TestType]bool{},
		reporter:    cfg.reporter,
	}
	c.resolveNames(cfg.errorsAsWarnings, c.warnings)
	c.resolveNames(cfg.ignoreErrors, c.ignored)
	return c, nil
}

// loadSettings merges the settings file under the explicitly given options.
func loadSettings(cfg *config) error {
	data, err := os.ReadFile(cfg.settingsPath)
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	var settings settingsFile
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing settings %s: %w", cfg.settingsPath, err)
	}
	if settings.Indentation != nil {
		if *settings.Indentation < 0 {
			return fmt.Errorf("parsing settings %s: indentation must be non-negative, got %d", cfg.settingsPath, *settings.Indentation)
		}
		cfg.indentation = *settings.Indentation
	}
	cfg.errorsAsWarnings = append(settings.ErrorsAsWarnings, cfg.errorsAsWarnings...)
	cfg.ignoreErrors = append(settings.IgnoreErrors, cfg.ignoreErrors...)
	return nil
}

// resolveNames resolves configured test-type names into the given set,
// stashing unresolvable names for a one-time report.
func (c *Converter) resolveNames(names []string, into map[TestType]bool) {
	for _, name := range names {
		t, ok := ParseTestType(name)
		if !ok {
			c.unknownNames = append(c.unknownNames, name)
			continue
		}
		into[t] = true
	}
}

// ConvertFile converts the document at path. When write is true and at
// least one violation was found, the rewritten document is saved back over
// path; a write failure is reported as UnableToSaveFile rather than
// returned.
//
// A structural parse failure is terminal for the document: it is reported
// once as XmlUnreadable and the returned result carries no document.
// File-open errors are returned as-is.
func (c *Converter) ConvertFile(path string, write bool) (*ConvertResult, error) {
	doc, err := xmldoc.ParseFile(path)
	if err != nil {
		if errors.Is(err, xmldoc.ErrMalformed) {
			c.beginRun(path)
			c.onError(XmlUnreadable, nil, "The xml is invalid. Detail: %v", err)
			return c.endRun(), nil
		}
		return nil, err
	}

	result := c.ConvertDocument(doc)

	if write && result.Fixed() {
		if err := doc.Save(path); err != nil {
			// Re-enter the run so the save failure lands in the same result.
			c.result = result
			c.sourcePath = path
			c.onError(UnableToSaveFile, nil, "Unable to save converted file. Detail: %v", err)
			c.result = nil
		} else {
			result.Saved = true
		}
	}

	return result, nil
}

// ConvertDocument converts a parsed document in place and returns the
// accumulated result.
func (c *Converter) ConvertDocument(doc *xmldoc.Document) *ConvertResult {
	c.beginRun(doc.SourcePath)
	c.result.Document = doc

	c.convertDeclaration(doc)

	// Top-level whitespace obeys the same law as element content; the
	// root element sits at depth 0.
	nodes := append([]xmldoc.Node(nil), doc.Nodes...)
	for i, n := range nodes {
		switch t := n.(type) {
		case *xmldoc.Element:
			c.convertElement(t, nil, 0)
		case *xmldoc.Text:
			c.convertTopLevelText(t, nextSibling(nodes, i))
		}
	}

	return c.endRun()
}

// beginRun resets the run-scoped state for a new conversion.
func (c *Converter) beginRun(sourcePath string) {
	c.sourcePath = sourcePath
	c.result = &ConvertResult{SourcePath: sourcePath}

	// Unrecognized configuration names are reported exactly once per
	// converter, on the first conversion that could carry them.
	for _, name := range c.unknownNames {
		c.onError(ConverterTestTypeUnknown, nil, "The converter test type '%s' is unknown.", name)
	}
	c.unknownNames = nil
}

// endRun detaches and returns the accumulated result.
func (c *Converter) endRun() *ConvertResult {
	result := c.result
	c.result = nil
	return result
}

// convertDeclaration checks the XML declaration per the declaration rules:
// it must exist and declare utf-8.
func (c *Converter) convertDeclaration(doc *xmldoc.Document) {
	if doc.Declaration == nil {
		if c.onError(DeclarationMissing, nil, "This file is missing an XML declaration on the first line.") {
			doc.Declaration = &xmldoc.Declaration{Version: "1.0", Encoding: "utf-8"}
			// Keep the root on its own line below the new declaration.
			if _, ok := firstNode(doc).(*xmldoc.Text); !ok {
				doc.Nodes = append([]xmldoc.Node{xmldoc.NewText("\n")}, doc.Nodes...)
			}
		}
		return
	}
	if !strings.EqualFold(doc.Declaration.Encoding, "utf-8") {
		if c.onError(DeclarationEncodingWrong, nil, "The XML declaration encoding is not properly set to 'utf-8'.") {
			doc.Declaration.Encoding = "utf-8"
		}
	}
}

func firstNode(doc *xmldoc.Document) xmldoc.Node {
	if len(doc.Nodes) == 0 {
		return nil
	}
	return doc.Nodes[0]
}

// onError routes a detected violation through the ignore/downgrade
// configuration. It returns whether the caller may apply the corresponding
// fix: false means the test type is ignored and the tree must be left
// as-is; true means the violation was counted and reported (possibly as a
// warning) and the fix is authorized.
func (c *Converter) onError(t TestType, n xmldoc.Node, format string, args ...any) bool {
	if c.ignored[t] {
		return false
	}

	sev := severity.SeverityError
	if c.warnings[t] {
		sev = severity.SeverityWarning
	}

	line := 0
	if n != nil {
		line = n.Line()
	}

	issue := issues.Issue{
		Code:     t.Code(),
		Test:     t.String(),
		Message:  fmt.Sprintf(format, args...),
		Severity: sev,
		File:     c.sourcePath,
		Line:     line,
	}

	c.result.Issues = append(c.result.Issues, issue)
	switch sev {
	case severity.SeverityError:
		c.result.ErrorCount++
	case severity.SeverityWarning:
		c.result.WarningCount++
	}

	c.reporter.Report(issue)
	return true
}
