package tools

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/engine"
	"github.com/mathivhahy/pastemax/format"
	"github.com/mathivhahy/pastemax/pathutil"
)

// AssembleArgs defines the input parameters for the pastemax_format tool.
type AssembleArgs struct {
	Paths         []string `json:"paths" jsonschema:"Files to include, as scanned paths (absolute or root-relative)"`
	SortBy        string   `json:"sortBy,omitempty" jsonschema:"Sort key: name | tokens | size (default name)"`
	SortDirection string   `json:"sortDirection,omitempty" jsonschema:"Sort direction: asc | desc (default asc)"`
	IncludeTree   bool     `json:"includeTree,omitempty" jsonschema:"Prepend an ASCII file map of the scanned root"`
	Instructions  string   `json:"instructions,omitempty" jsonschema:"Free-form instructions appended as a final block"`
}

// AssembleHandler holds the dependencies for the format tool.
type AssembleHandler struct {
	Engine *engine.Coordinator
	Logger *slog.Logger
}

// Handle assembles the selected files into the deterministic text artifact.
// Relative selections are resolved against the current scan root; an empty or
// unmatched selection yields the literal no-selection message.
func (h *AssembleHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args AssembleArgs) (*mcp.CallToolResult, any, error) {
	root := h.Engine.Root()

	selected := make([]string, 0, len(args.Paths))
	for _, p := range args.Paths {
		selected = append(selected, resolveSelection(root, p))
	}

	sortBy := format.SortKey(args.SortBy)
	switch sortBy {
	case format.SortByName, format.SortByTokens, format.SortBySize:
	default:
		sortBy = format.SortByName
	}
	sortDir := format.SortDir(args.SortDirection)
	if sortDir != format.Descending {
		sortDir = format.Ascending
	}

	artifact := format.Format(h.Engine.Records(), selected, format.Options{
		SortBy:       sortBy,
		SortDir:      sortDir,
		IncludeTree:  args.IncludeTree,
		Root:         root,
		Instructions: args.Instructions,
	})

	h.Logger.Info("pastemax_format",
		"selected", len(args.Paths),
		"sortBy", string(sortBy),
		"includeTree", args.IncludeTree,
		"bytes", len(artifact),
	)
	return textResult(artifact), nil, nil
}

// resolveSelection maps a caller-supplied path onto the normalized absolute
// form records are keyed by. Root-relative selections are joined to the root;
// absolute ones pass through normalization.
func resolveSelection(root, selection string) string {
	normalized := pathutil.Normalize(selection)
	if root == "" || isAbsolutePath(normalized) {
		return normalized
	}
	return root + "/" + normalized
}

func isAbsolutePath(normalized string) bool {
	if len(normalized) >= 1 && normalized[0] == '/' {
		return true
	}
	// Windows drive form after normalization: "c:/..."
	return len(normalized) >= 3 && normalized[1] == ':' && normalized[2] == '/'
}
