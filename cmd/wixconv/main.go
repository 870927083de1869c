package main

import (
	"fmt"
	"os"

	"github.com/wixtools/wixconv"
	"github.com/wixtools/wixconv/cmd/wixconv/commands"
	"github.com/wixtools/wixconv/internal/cliutil"
)

const usageText = `wixconv - WiX v3 to v4 source converter

Usage:
  wixconv <command> [flags] [arguments]

Commands:
  convert    Convert WiX authoring (.wxs, .wxi, .wxl) to the v4 schema
  mcp        Run the MCP server over stdio
  version    Print the wixconv version
  help       Show this help

Run 'wixconv <command> -h' for command-specific flags.
`

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("wixconv v%s\n", wixconv.Version())
	case "help", "-h", "--help":
		printUsage()
	case "convert":
		if err := commands.HandleConvert(os.Args[2:]); err != nil {
			cliutil.Errorf("%v", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			cliutil.Errorf("%v", err)
			os.Exit(1)
		}
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	cliutil.Writef(os.Stdout, "%s", usageText)
}
