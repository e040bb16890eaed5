// Package server wires the tool handlers into an MCP server.
package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/tools"
)

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	scanHandler *tools.ScanHandler,
	cancelHandler *tools.CancelHandler,
	filesHandler *tools.FilesHandler,
	assembleHandler *tools.AssembleHandler,
	statusHandler *tools.StatusHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "pastemax",
			Version: "0.3.0",
		},
		&mcp.ServerOptions{
			Instructions: `This server scans a project directory, keeps the result live via a filesystem watcher, and assembles selected files into a single formatted text block.

Typical flow:
- pastemax_scan to ingest a directory (respects .gitignore plus built-in defaults; token-counts every text file)
- pastemax_files to inspect what was scanned (sizes, token counts, binary/skipped state)
- pastemax_format to assemble a selection into one artifact with an optional file map and instructions block
- The record set updates automatically while the watcher is armed; rescan after editing .gitignore.`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "pastemax_scan",
		Description: `Scan a directory recursively. Applies .gitignore and built-in ignore rules, classifies binary and oversized files, reads and token-counts the rest, then arms a filesystem watcher that keeps the result current.

Only one scan runs at a time; a second request is rejected as busy. Scans are bounded by a 60 second safety timeout.`,
	}, scanHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "pastemax_cancel",
		Description: "Cancel the active scan. The scan stops at its next batch boundary and keeps the files processed so far.",
	}, cancelHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "pastemax_files",
		Description: `List the scanned files with size, token count, and state (binary, skipped, excluded by default). Optional glob filter over relative paths, e.g. "**/*.ts".`,
	}, filesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "pastemax_format",
		Description: `Assemble selected files into one formatted text block: optional ASCII file map, then each file's content in a language-tagged fenced block, then optional instructions. Deterministic for identical inputs.`,
	}, assembleHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "pastemax_status",
		Description: "Show engine status: scan root, file and token counts, watcher state, uptime.",
	}, statusHandler.Handle)

	return mcpServer
}
