package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
	"github.com/mathivhahy/pastemax/scan"
)

// FilesArgs defines the input parameters for the pastemax_files tool.
type FilesArgs struct {
	Pattern    string `json:"pattern,omitempty" jsonschema:"Optional glob filtering by relative path (e.g. **/*.go)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of files to list (default 200)"`
}

// FilesHandler holds the dependencies for the files tool.
type FilesHandler struct {
	Engine *engine.Coordinator
	Logger *slog.Logger
}

// Handle lists the current record set: every file the last scan admitted plus
// watcher deltas since, with token counts and binary/skipped/excluded state.
func (h *FilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FilesArgs) (*mcp.CallToolResult, any, error) {
	maxResults := args.MaxResults
	if maxResults <= 0 {
		maxResults = 200
	}

	records := h.Engine.Records()
	if args.Pattern != "" {
		pattern := strings.ReplaceAll(args.Pattern, "\\", "/")
		if !doublestar.ValidatePattern(pattern) {
			return errorResult(fmt.Sprintf("Error: invalid glob pattern: %s", pattern)), nil, nil
		}
		filtered := make([]*scan.FileRecord, 0, len(records))
		for _, record := range records {
			if matched, err := doublestar.Match(pattern, record.RelativePath); err == nil && matched {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	truncated := false
	if len(records) > maxResults {
		records = records[:maxResults]
		truncated = true
	}

	h.Logger.Info("pastemax_files", "pattern", args.Pattern, "results", len(records))

	output := renderFileList(records)
	if truncated {
		output += fmt.Sprintf("\n(truncated at %d results)\n", maxResults)
	}
	return textResult(output), nil, nil
}
