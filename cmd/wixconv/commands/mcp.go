package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/wixtools/wixconv/internal/cliutil"
	"github.com/wixtools/wixconv/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: wixconv mcp\n\n")
		cliutil.Writef(fs.Output(), "Run the MCP (Model Context Protocol) server over stdio.\n\n")
		cliutil.Writef(fs.Output(), "The server exposes convert and inspect tools. Defaults are\n")
		cliutil.Writef(fs.Output(), "configured through WIXCONV_* environment variables:\n")
		cliutil.Writef(fs.Output(), "  WIXCONV_INDENTATION       spaces per nesting level (default 4)\n")
		cliutil.Writef(fs.Output(), "  WIXCONV_MAX_INLINE_SIZE   inline content cap in bytes (default 10485760)\n")
	}

	return fs
}

// HandleMCP executes the mcp command. It blocks until the client disconnects
// or the process receives an interrupt.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return mcpserver.Run(ctx)
}
