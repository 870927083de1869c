package xmldoc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#xA;",
		"\t", "&#x9;",
	)
)

// Bytes serializes the document without any formatting beyond the
// whitespace nodes already in the tree.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	// bytes.Buffer never returns a write error.
	_ = d.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo serializes the document to w in unformatted mode: no
// auto-indentation, prefixes resolved from the xmlns declarations held in
// the tree, and no duplicate namespace declarations emitted.
func (d *Document) WriteTo(w io.Writer) error {
	sw := &stateWriter{w: w}
	if d.Declaration != nil {
		sw.writeString("<?xml")
		if d.Declaration.Version != "" {
			sw.writeString(fmt.Sprintf(" version=%q", d.Declaration.Version))
		}
		if d.Declaration.Encoding != "" {
			sw.writeString(fmt.Sprintf(" encoding=%q", d.Declaration.Encoding))
		}
		if d.Declaration.Standalone != "" {
			sw.writeString(fmt.Sprintf(" standalone=%q", d.Declaration.Standalone))
		}
		sw.writeString("?>")
	}
	scope := nsScope{defaultURI: "", prefixes: map[string]string{}}
	for _, n := range d.Nodes {
		writeNode(sw, n, scope)
	}
	return sw.err
}

// Save writes the serialized document over path. The caller decides when
// persistence is warranted; Save itself is unconditional.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// nsScope carries the in-scope namespace bindings while writing.
// Maps are copied on extension so sibling subtrees cannot see each other's
// declarations.
type nsScope struct {
	defaultURI string
	prefixes   map[string]string // URI -> prefix
}

func (s nsScope) extend(attrs []Attr) nsScope {
	extended := false
	for _, a := range attrs {
		if !a.IsNamespaceDecl() {
			continue
		}
		if !extended {
			copied := make(map[string]string, len(s.prefixes)+1)
			for uri, p := range s.prefixes {
				copied[uri] = p
			}
			s.prefixes = copied
			extended = true
		}
		if prefix := a.DeclaredPrefix(); prefix != "" {
			s.prefixes[a.Value] = prefix
		} else {
			s.defaultURI = a.Value
		}
	}
	return s
}

// tagName resolves the serialized name for an element in this scope.
func (s nsScope) tagName(n Name) string {
	if n.Space == "" || n.Space == s.defaultURI {
		return n.Local
	}
	if prefix, ok := s.prefixes[n.Space]; ok {
		return prefix + ":" + n.Local
	}
	// Unbound namespace; nothing in the tree declares it. Fall back to the
	// local name rather than invent a prefix.
	return n.Local
}

// attrName resolves the serialized name for an attribute in this scope.
// Attributes never take the default namespace.
func (s nsScope) attrName(a Attr) string {
	if a.IsNamespaceDecl() {
		if prefix := a.DeclaredPrefix(); prefix != "" {
			return "xmlns:" + prefix
		}
		return "xmlns"
	}
	if a.Name.Space == "" {
		return a.Name.Local
	}
	if prefix, ok := s.prefixes[a.Name.Space]; ok {
		return prefix + ":" + a.Name.Local
	}
	return a.Name.Local
}

func writeNode(sw *stateWriter, n Node, scope nsScope) {
	switch t := n.(type) {
	case *Element:
		scope = scope.extend(t.Attrs)
		sw.writeString("<" + scope.tagName(t.Name))
		for _, a := range t.Attrs {
			sw.writeString(" " + scope.attrName(a) + `="` + attrEscaper.Replace(a.Value) + `"`)
		}
		if len(t.Children) == 0 {
			sw.writeString(" />")
			return
		}
		sw.writeString(">")
		for _, child := range t.Children {
			writeNode(sw, child, scope)
		}
		sw.writeString("</" + scope.tagName(t.Name) + ">")

	case *Text:
		sw.writeString(textEscaper.Replace(t.Value))

	case *CData:
		sw.writeString("<![CDATA[" + t.Value + "]]>")

	case *Comment:
		sw.writeString("<!--" + t.Value + "-->")
	}
}

// stateWriter remembers the first write error so the node writers stay
// uncluttered.
type stateWriter struct {
	w   io.Writer
	err error
}

func (sw *stateWriter) writeString(s string) {
	if sw.err != nil {
		return
	}
	_, sw.err = io.WriteString(sw.w, s)
}
