// Package tools implements the MCP tool handlers that expose the engine to
// its collaborators: scan, cancel, file listing, content assembly, status.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
	"github.com/mathivhahy/pastemax/scan"
)

// ScanArgs defines the input parameters for the pastemax_scan tool.
type ScanArgs struct {
	Root string `json:"root,omitempty" jsonschema:"Directory to scan (default: the server's configured root)"`
}

// ScanHandler holds the dependencies for the scan tool.
type ScanHandler struct {
	Engine      *engine.Coordinator
	DefaultRoot string
	Logger      *slog.Logger
}

// Handle processes a pastemax_scan request. The call is synchronous: it
// returns once the scan reaches a terminal state. A concurrent scan request
// is rejected as busy, never queued.
func (h *ScanHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ScanArgs) (*mcp.CallToolResult, any, error) {
	root := args.Root
	if root == "" {
		root = h.DefaultRoot
	}
	if root == "" {
		return errorResult("Error: root parameter is required"), nil, nil
	}

	start := time.Now()
	result, err := h.Engine.Scan(root)
	if err != nil {
		if errors.Is(err, engine.ErrBusy) {
			h.Logger.Warn("pastemax_scan rejected, scan already active")
			return errorResult("Busy: a scan is already in progress. Cancel it or wait for it to finish."), nil, nil
		}
		h.Logger.Error("pastemax_scan failed", "root", root, "error", err)
		return errorResult(fmt.Sprintf("Scan error: %v", err)), nil, nil
	}

	h.Logger.Info("pastemax_scan",
		"root", root,
		"outcome", result.Outcome.String(),
		"files", len(result.Files),
		"elapsed", time.Since(start),
	)

	return textResult(renderScanSummary(result)), nil, nil
}

// renderScanSummary formats a terminal scan result as human-readable text.
func renderScanSummary(result *scan.Result) string {
	var normal, binary, skipped, excluded, tokens int
	for _, record := range result.Files {
		switch {
		case record.IsBinary:
			binary++
		case record.IsSkipped:
			skipped++
		default:
			normal++
			tokens += record.TokenCount
		}
		if record.ExcludedByDefault {
			excluded++
		}
	}

	header := "Scan " + result.Outcome.String()
	if result.Err != nil {
		header += ": " + result.Err.Error()
	}
	return fmt.Sprintf(
		"%s in %s\n\n  %d files (%d text, %d binary, %d skipped)\n  %d excluded by default\n  %d tokens total\n",
		header,
		result.Duration.Round(time.Millisecond),
		len(result.Files), normal, binary, skipped,
		excluded,
		tokens,
	)
}
