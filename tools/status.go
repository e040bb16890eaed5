package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
)

// StatusArgs defines the (empty) input for the pastemax_status tool.
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Engine    *engine.Coordinator
	StartTime time.Time
	Logger    *slog.Logger
}

// Handle reports engine state: root, scan/watch status, record counts.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	status := h.Engine.Snapshot()

	var b strings.Builder
	b.WriteString("PasteMax engine status:\n\n")
	if status.Root == "" {
		b.WriteString("  No scan performed yet.\n")
	} else {
		b.WriteString(fmt.Sprintf("  Root: %s\n", status.Root))
		b.WriteString(fmt.Sprintf("  Files: %d (%d tokens)\n", status.FileCount, status.TotalTokens))
		if status.Scanning {
			b.WriteString("  Scan: in progress\n")
		} else if status.LastOutcome != "" {
			b.WriteString(fmt.Sprintf("  Last scan: %s in %s (%s ago)\n",
				status.LastOutcome,
				status.LastDuration.Round(time.Millisecond),
				time.Since(status.LastScanAt).Round(time.Second),
			))
		}
		if status.WatcherArmed {
			b.WriteString("  Watcher: armed\n")
		} else {
			b.WriteString("  Watcher: not armed\n")
		}
	}
	b.WriteString(fmt.Sprintf("  Uptime: %s\n", time.Since(h.StartTime).Round(time.Second)))

	h.Logger.Debug("pastemax_status")
	return textResult(b.String()), nil, nil
}
