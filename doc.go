// Package wixconv provides tools for migrating WiX v3 authoring documents to
// the WiX v4 schema dialect.
//
// The library consists of two primary packages:
//
//   - xmldoc: Parse and serialize XML authoring documents while preserving
//     whitespace, attribute order, and per-node source line numbers
//   - converter: Convert documents from the deprecated v3 namespaces and
//     element rules to their v4 equivalents, enforcing a canonical
//     indentation style along the way
//
// # Quick Start
//
// Convert an authoring file in place:
//
//	import "github.com/wixtools/wixconv/converter"
//
//	c, err := converter.New(converter.WithIndentation(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := c.ConvertFile("Product.wxs", true)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if result.Saved {
//		fmt.Printf("rewrote %s (%d issue(s) fixed)\n", result.SourcePath, len(result.Issues))
//	}
//
// Every violation the converter detects is classified by a TestType. A test
// type may be downgraded to a warning or suppressed entirely through the
// converter options, so the same engine serves both a lint-style dry run and
// an in-place rewrite.
//
// # Command-Line Interface
//
// The wixconv CLI wraps the library:
//
//	# Report violations without modifying the file
//	wixconv convert Product.wxs
//
//	# Rewrite the file in place
//	wixconv convert -w Product.wxs
//
// Install the CLI:
//
//	go install github.com/wixtools/wixconv/cmd/wixconv@latest
//
// Converter instances are not goroutine-safe; create separate instances for
// concurrent use.
package wixconv
