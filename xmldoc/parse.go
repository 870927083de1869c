package xmldoc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// ErrMalformed is wrapped by Parse for structural XML failures, so callers
// can distinguish malformed input from I/O errors with errors.Is.
var ErrMalformed = errors.New("malformed XML")

var (
	declVersionPattern    = regexp.MustCompile(`version\s*=\s*["']([^"']*)["']`)
	declEncodingPattern   = regexp.MustCompile(`encoding\s*=\s*["']([^"']*)["']`)
	declStandalonePattern = regexp.MustCompile(`standalone\s*=\s*["']([^"']*)["']`)
)

// ParseFile parses the XML document at path. File-open errors are returned
// as-is (e.g. fs.ErrNotExist); structural failures wrap ErrMalformed.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	doc.SourcePath = path
	return doc, nil
}

// ParseString parses an XML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Parse builds the document tree, preserving whitespace-only text nodes,
// distinguishing CDATA sections from plain character data, and recording
// the source line every node starts on. Processing instructions other than
// the XML declaration, and DTD directives, are dropped.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	lines := newLineIndex(data)
	dec := xml.NewDecoder(bytes.NewReader(data))

	doc := &Document{}
	var stack []*Element
	appendNode := func(n Node) {
		if len(stack) == 0 {
			doc.Nodes = append(doc.Nodes, n)
			return
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		line := lines.lineAt(start)

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{
				Name: Name{Space: t.Name.Space, Local: t.Name.Local},
				line: line,
			}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{
					Name:  Name{Space: a.Name.Space, Local: a.Name.Local},
					Value: a.Value,
				})
			}
			appendNode(el)
			stack = append(stack, el)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			// The decoder reports CDATA sections and plain character data
			// as the same token type; the raw input at the token's start
			// offset tells them apart.
			if bytes.HasPrefix(data[start:], []byte("<![CDATA[")) {
				appendNode(&CData{Value: string(t), line: line})
			} else {
				appendNode(&Text{Value: string(t), line: line})
			}

		case xml.Comment:
			appendNode(&Comment{Value: string(t), line: line})

		case xml.ProcInst:
			if t.Target == "xml" && len(stack) == 0 && doc.Declaration == nil && len(doc.Nodes) == 0 {
				doc.Declaration = parseDeclaration(string(t.Inst))
			}

		case xml.Directive:
			// DOCTYPE and friends are outside the converter's node model.
		}
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	return doc, nil
}

// parseDeclaration extracts version/encoding/standalone from the body of an
// <?xml ...?> processing instruction.
func parseDeclaration(inst string) *Declaration {
	decl := &Declaration{}
	if m := declVersionPattern.FindStringSubmatch(inst); m != nil {
		decl.Version = m[1]
	}
	if m := declEncodingPattern.FindStringSubmatch(inst); m != nil {
		decl.Encoding = m[1]
	}
	if m := declStandalonePattern.FindStringSubmatch(inst); m != nil {
		decl.Standalone = m[1]
	}
	return decl
}

// lineIndex maps byte offsets in the raw input to 1-based line numbers.
type lineIndex struct {
	newlines []int
}

func newLineIndex(data []byte) *lineIndex {
	idx := &lineIndex{}
	for i, b := range data {
		if b == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	return idx
}

// lineAt returns the 1-based line containing the byte at offset.
func (idx *lineIndex) lineAt(offset int64) int {
	return 1 + sort.SearchInts(idx.newlines, int(offset))
}
