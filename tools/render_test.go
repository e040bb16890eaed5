package tools

import (
	"strings"
	"testing"

	"github.com/mathivhahy/pastemax/scan"
)

func Test_FormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tt := range tests {
		if got := formatFileSize(tt.bytes); got != tt.expected {
			t.Errorf("formatFileSize(%d) = %s, want %s", tt.bytes, got, tt.expected)
		}
	}
}

func Test_RenderFileList_Empty(t *testing.T) {
	got := renderFileList(nil)
	if !strings.Contains(got, "No files scanned") {
		t.Errorf("expected empty-store hint, got %q", got)
	}
}

func Test_RenderFileList_States(t *testing.T) {
	records := []*scan.FileRecord{
		{RelativePath: "main.go", SizeBytes: 100, TokenCount: 25},
		{RelativePath: "logo.png", SizeBytes: 5000, IsBinary: true, FileTypeTag: "PNG"},
		{RelativePath: "huge.txt", IsSkipped: true, SkipReason: "file too large (6.0 MB, limit 5.0 MB)"},
		{RelativePath: "package-lock.json", SizeBytes: 900, TokenCount: 200, ExcludedByDefault: true},
	}

	got := renderFileList(records)

	if !strings.Contains(got, "main.go  (100 B, 25 tokens)") {
		t.Errorf("expected text file line, got:\n%s", got)
	}
	if !strings.Contains(got, "[binary PNG, 4.9 KB]") {
		t.Errorf("expected binary annotation, got:\n%s", got)
	}
	if !strings.Contains(got, "[skipped: file too large") {
		t.Errorf("expected skip reason, got:\n%s", got)
	}
	if !strings.Contains(got, "[excluded by default]") {
		t.Errorf("expected default-exclusion annotation, got:\n%s", got)
	}
}

func Test_RenderScanSummary_Counts(t *testing.T) {
	result := &scan.Result{
		Outcome: scan.OutcomeCompleted,
		Files: []*scan.FileRecord{
			{RelativePath: "a.go", TokenCount: 10},
			{RelativePath: "b.png", IsBinary: true},
			{RelativePath: "c.txt", IsSkipped: true, SkipReason: "unreadable"},
			{RelativePath: "go.sum", TokenCount: 5, ExcludedByDefault: true},
		},
	}

	got := renderScanSummary(result)

	if !strings.Contains(got, "Scan completed") {
		t.Errorf("expected outcome header, got:\n%s", got)
	}
	if !strings.Contains(got, "4 files (2 text, 1 binary, 1 skipped)") {
		t.Errorf("expected state breakdown, got:\n%s", got)
	}
	if !strings.Contains(got, "1 excluded by default") {
		t.Errorf("expected exclusion count, got:\n%s", got)
	}
	if !strings.Contains(got, "15 tokens total") {
		t.Errorf("expected token total, got:\n%s", got)
	}
}
