package converter

import (
	"strings"

	"github.com/wixtools/wixconv/xmldoc"
)

// convertElement processes a single element: namespace migration first, so
// no rule ever sees a deprecated name, then rule dispatch, then recursion
// into children with the depth incremented.
func (c *Converter) convertElement(e, parent *xmldoc.Element, depth int) {
	c.migrateNamespaces(e)

	if rule, ok := elementRules[e.Name]; ok {
		rule(c, e, parent)
	}

	// Rules may add or remove children; iterate a snapshot of the list as
	// it stands now and mutate the live tree.
	children := append([]xmldoc.Node(nil), e.Children...)
	for i, child := range children {
		switch t := child.(type) {
		case *xmldoc.Element:
			c.convertElement(t, e, depth+1)
		case *xmldoc.Text:
			c.convertText(t, e, nextSibling(children, i), i == 0 || isCData(children[i-1]), depth+1)
		}
	}
}

func nextSibling(children []xmldoc.Node, i int) xmldoc.Node {
	if i+1 < len(children) {
		return children[i+1]
	}
	return nil
}

func isCData(n xmldoc.Node) bool {
	_, ok := n.(*xmldoc.CData)
	return ok
}

// convertText normalizes one text node at the given depth. next is the
// following sibling (nil when the text runs up against the parent's close
// tag); openAdjacent is true when nothing but the parent's open tag or a
// CDATA section precedes the text.
func (c *Converter) convertText(t *xmldoc.Text, parent *xmldoc.Element, next xmldoc.Node, openAdjacent bool, depth int) {
	if !t.IsWhitespace() {
		t.Value = strings.Trim(t.Value, " \t\r\n")
		return
	}

	switch {
	case next == nil:
		// Whitespace against the close tag.
		if openAdjacent {
			if c.onError(WhitespaceFollowingCDataWrong, t, "There should be no whitespace preceding the end of this element.") {
				parent.RemoveChild(t)
			}
			return
		}
		if !isLegalWhitespace(c.indentation, depth-1, t.Value) {
			if c.onError(WhitespaceFollowingNodeWrong, t, "The whitespace preceding this element's close is incorrect.") {
				t.Value = fixWhitespace(c.indentation, depth-1, t.Value)
			}
		}

	case isCData(next):
		if c.onError(WhitespacePrecedingCDataWrong, t, "There should be no whitespace preceding a CDATA node.") {
			parent.RemoveChild(t)
		}

	default:
		if _, ok := next.(*xmldoc.Element); !ok {
			return
		}
		if !isLegalWhitespace(c.indentation, depth, t.Value) {
			if c.onError(WhitespacePrecedingNodeWrong, t, "The whitespace preceding this node is incorrect.") {
				t.Value = fixWhitespace(c.indentation, depth, t.Value)
			}
		}
	}
}

// convertTopLevelText normalizes whitespace between the document's
// top-level nodes. There is no enclosing element at this level, so
// canonical form is newlines with no indentation on either side of the
// root. next is the following top-level sibling (nil after the root).
func (c *Converter) convertTopLevelText(t *xmldoc.Text, next xmldoc.Node) {
	if !t.IsWhitespace() {
		return
	}
	if next != nil {
		if _, ok := next.(*xmldoc.Element); !ok {
			return
		}
	}
	if isLegalWhitespace(c.indentation, 0, t.Value) {
		return
	}

	test := WhitespacePrecedingNodeWrong
	message := "The whitespace preceding this node is incorrect."
	if next == nil {
		test = WhitespaceFollowingNodeWrong
		message = "The whitespace following the root element is incorrect."
	}
	if c.onError(test, t, "%s", message) {
		t.Value = fixWhitespace(c.indentation, 0, t.Value)
	}
}

// isLegalWhitespace reports whether s is canonical inter-element
// whitespace: one or more newlines followed by exactly depth*indentation
// spaces.
func isLegalWhitespace(indentation, depth int, s string) bool {
	spaces := 0
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
		spaces++
	}
	if spaces != indentation*depth {
		return false
	}

	rest := s[:i]
	if rest == "" {
		return false
	}
	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "\r\n"):
			rest = rest[2:]
		case rest[0] == '\n':
			rest = rest[1:]
		default:
			return false
		}
	}
	return true
}

// fixWhitespace rewrites s to canonical form, keeping the number of blank
// lines the author had (but at least one newline).
func fixWhitespace(indentation, depth int, s string) string {
	newlines := strings.Count(s, "\n")
	if newlines < 1 {
		newlines = 1
	}
	if depth < 0 {
		depth = 0
	}
	return strings.Repeat("\n", newlines) + strings.Repeat(" ", indentation*depth)
}
