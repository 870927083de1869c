// Package xmldoc provides the XML document model the converter operates on.
//
// Unlike encoding/xml's struct mapping, xmldoc keeps the document as a tree
// of nodes that preserves whitespace-only text, CDATA sections, comments,
// attribute order, and the source line each node started on. Serialization
// is unformatted: the writer emits exactly the whitespace held in the tree
// and never invents indentation or duplicate namespace declarations.
package xmldoc
