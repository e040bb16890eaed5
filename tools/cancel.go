package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
)

// CancelArgs defines the (empty) input for the pastemax_cancel tool.
type CancelArgs struct{}

// CancelHandler holds the dependencies for the cancel tool.
type CancelHandler struct {
	Engine *engine.Coordinator
	Logger *slog.Logger
}

// Handle requests cooperative cancellation of the active scan. Cancellation
// is asynchronous: the scan terminates at its next batch or directory
// boundary, keeping whatever it accumulated.
func (h *CancelHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CancelArgs) (*mcp.CallToolResult, any, error) {
	h.Engine.Cancel()
	h.Logger.Info("pastemax_cancel")
	return textResult("Cancellation requested. The scan stops at the next batch boundary."), nil, nil
}
