package tools

import (
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mathivhahy/pastemax/scan"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

// renderFileList formats records as one line per file with its state.
func renderFileList(records []*scan.FileRecord) string {
	if len(records) == 0 {
		return "No files scanned. Run pastemax_scan first."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d files:\n\n", len(records)))
	for _, record := range records {
		b.WriteString("  ")
		b.WriteString(record.RelativePath)
		switch {
		case record.IsBinary:
			b.WriteString(fmt.Sprintf("  [binary %s, %s]", record.FileTypeTag, formatFileSize(record.SizeBytes)))
		case record.IsSkipped:
			b.WriteString(fmt.Sprintf("  [skipped: %s]", record.SkipReason))
		default:
			b.WriteString(fmt.Sprintf("  (%s, %d tokens)", formatFileSize(record.SizeBytes), record.TokenCount))
		}
		if record.ExcludedByDefault {
			b.WriteString("  [excluded by default]")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
