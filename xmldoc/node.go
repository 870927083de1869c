package xmldoc

import (
	"strings"
)

// Name identifies an element or attribute by (namespace URI, local name),
// independent of any textual prefix. An empty Space means "no namespace".
type Name struct {
	Space string
	Local string
}

// String renders the name for diagnostics, as "space:local" when the name
// is namespace-qualified.
func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// Node is implemented by the four node kinds that can appear in a document:
// Element, Text, CData, and Comment.
type Node interface {
	// Line returns the 1-based source line the node started on, or 0 when
	// the node was built in memory.
	Line() int

	node()
}

// Attr is a single attribute on an element. Namespace declarations are kept
// in the attribute list like any other attribute: xmlns="u" has
// Name{Local: "xmlns"} and xmlns:p="u" has Name{Space: "xmlns", Local: "p"}.
type Attr struct {
	Name  Name
	Value string
}

// IsNamespaceDecl reports whether the attribute declares a namespace.
func (a Attr) IsNamespaceDecl() bool {
	return a.Name.Local == "xmlns" && a.Name.Space == "" || a.Name.Space == "xmlns"
}

// DeclaredPrefix returns the prefix a namespace declaration binds, or ""
// for the default declaration (or a non-declaration attribute).
func (a Attr) DeclaredPrefix() string {
	if a.Name.Space == "xmlns" {
		return a.Name.Local
	}
	return ""
}

// Element is an XML element with an ordered attribute list and ordered
// children. Attribute insertion order is preserved unless a caller
// explicitly reorders.
type Element struct {
	Name     Name
	Attrs    []Attr
	Children []Node

	line int
}

// NewElement creates an in-memory element with the given namespace URI and
// local name.
func NewElement(space, local string) *Element {
	return &Element{Name: Name{Space: space, Local: local}}
}

// Line returns the source line of the start tag, or 0 if unknown.
func (e *Element) Line() int { return e.line }

func (e *Element) node() {}

// AttrValue returns the value of the unqualified attribute with the given
// local name and whether it exists.
func (e *Element) AttrValue(local string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the unqualified attribute exists.
func (e *Element) HasAttr(local string) bool {
	_, ok := e.AttrValue(local)
	return ok
}

// SetAttr sets the unqualified attribute with the given local name,
// replacing its value in place or appending a new attribute at the end.
func (e *Element) SetAttr(local, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Space == "" && e.Attrs[i].Name.Local == local {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: Name{Local: local}, Value: value})
}

// InsertAttrFirst inserts an unqualified attribute at the front of the
// attribute list, preserving the order of the remaining attributes.
func (e *Element) InsertAttrFirst(local, value string) {
	e.Attrs = append([]Attr{{Name: Name{Local: local}, Value: value}}, e.Attrs...)
}

// RemoveAttr removes the unqualified attribute with the given local name.
// It reports whether an attribute was removed.
func (e *Element) RemoveAttr(local string) bool {
	for i := range e.Attrs {
		if e.Attrs[i].Name.Space == "" && e.Attrs[i].Name.Local == local {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveChild removes the first child identical to n. It reports whether a
// child was removed.
func (e *Element) RemoveChild(n Node) bool {
	for i := range e.Children {
		if e.Children[i] == n {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Text is a character-data node. Whitespace-only text nodes are preserved
// by the parser since the converter governs them.
type Text struct {
	Value string

	line int
}

// NewText creates an in-memory text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// Line returns the source line the text started on, or 0 if unknown.
func (t *Text) Line() int { return t.line }

func (t *Text) node() {}

// IsWhitespace reports whether the node consists entirely of XML whitespace.
func (t *Text) IsWhitespace() bool {
	return strings.Trim(t.Value, " \t\r\n") == ""
}

// CData is a CDATA section.
type CData struct {
	Value string

	line int
}

// NewCData creates an in-memory CDATA node.
func NewCData(value string) *CData {
	return &CData{Value: value}
}

// Line returns the source line the section started on, or 0 if unknown.
func (c *CData) Line() int { return c.line }

func (c *CData) node() {}

// Comment is an XML comment. Value excludes the <!-- --> markers.
type Comment struct {
	Value string

	line int
}

// NewComment creates an in-memory comment node.
func NewComment(value string) *Comment {
	return &Comment{Value: value}
}

// Line returns the source line the comment started on, or 0 if unknown.
func (c *Comment) Line() int { return c.line }

func (c *Comment) node() {}

// Declaration is the optional XML declaration at the top of a document.
type Declaration struct {
	Version    string
	Encoding   string
	Standalone string
}

// Document is a parsed XML document: an optional declaration plus the
// ordered top-level nodes (comments, whitespace, and exactly one root
// element for well-formed input).
type Document struct {
	Declaration *Declaration
	Nodes       []Node

	// SourcePath is the file the document was parsed from, when known.
	SourcePath string
}

// Root returns the document's root element, or nil when the document has no
// element at the top level.
func (d *Document) Root() *Element {
	for _, n := range d.Nodes {
		if e, ok := n.(*Element); ok {
			return e
		}
	}
	return nil
}

// Walk traverses the document's nodes in document order, depth-first,
// calling fn with each node and its depth. The root element is at depth 0
// and its children at depth 1. Traversal stops when fn returns false.
func Walk(d *Document, fn func(n Node, depth int) bool) {
	for _, n := range d.Nodes {
		if !walkNode(n, 0, fn) {
			return
		}
	}
}

func walkNode(n Node, depth int, fn func(Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	if e, ok := n.(*Element); ok {
		// Snapshot in case fn mutates the live list.
		children := append([]Node(nil), e.Children...)
		for _, child := range children {
			if !walkNode(child, depth+1, fn) {
				return false
			}
		}
	}
	return true
}
