// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes wixconv capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wixtools/wixconv"
)

const serverInstructions = `wixconv MCP server — converts WiX v3 authoring (.wxs, .wxi, .wxl) to WiX v4.

Configuration: All defaults are configurable via WIXCONV_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- WIXCONV_INDENTATION (default: 4) — spaces per nesting level in converted output
- WIXCONV_MAX_INLINE_SIZE (default: 10485760) — maximum inline content size in bytes

Use the convert tool to migrate a document; each violation is returned with its WXCP code and source line. Use the inspect tool to summarize a document (root element, namespaces in use, deprecated namespaces) without changing it.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "wixconv", Version: wixconv.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert a WiX v3 source document to WiX v4. Migrates deprecated namespaces, renames deprecated attributes and identifiers, and normalizes whitespace. Returns every violation with its WXCP code and source line, plus the converted document. Use write=true with a file input to save the result in place, or output to write it elsewhere. Test types can be downgraded (errors_as_warnings) or suppressed entirely (ignore_errors) by name.",
	}, handleConvert)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect",
		Description: "Inspect a WiX source document without converting it. Returns the root element, declared namespaces, any deprecated namespaces that a conversion would migrate, element count, and the XML declaration. Useful to gauge what a conversion would touch before running it.",
	}, handleInspect)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
