// Package converter migrates XML authoring documents from the deprecated
// WiX v3 schema dialect to the current v4 dialect, enforcing a canonical
// whitespace style along the way.
//
// The converter walks the document tree in document order. Namespace
// declarations naming a deprecated schema URI are migrated for the whole
// subtree before any element rule runs, per-element rules rewrite
// deprecated attributes and values, and inter-element whitespace is
// normalized to one or more newlines plus depth x indentation spaces.
//
// # Quick Start
//
// Convert a file and write the result back in place:
//
//	c, err := converter.New(converter.WithIndentation(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := c.ConvertFile("Product.wxs", true)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Found %d issue(s)\n", len(result.Issues))
//
// # Report-Then-Fix
//
// Every detected violation is classified by a TestType and routed through
// the ignore/downgrade configuration before any mutation happens. An
// ignored test type never mutates the tree; a test type downgraded with
// WithErrorsAsWarnings is still fixed but reported with warning severity.
// Conversion is idempotent: converting an already-converted document
// reports nothing and changes nothing.
//
// Converter instances are not goroutine-safe; create separate instances
// for concurrent use.
package converter
