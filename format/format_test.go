package format

import (
	"strings"
	"testing"

	"github.com/mathivhahy/pastemax/scan"
)

func fixtureRecords() []*scan.FileRecord {
	return []*scan.FileRecord{
		{
			AbsolutePath: "/proj/src/main.go",
			RelativePath: "src/main.go",
			Name:         "main.go",
			SizeBytes:    120,
			Content:      "package main\n",
			TokenCount:   4,
		},
		{
			AbsolutePath: "/proj/README.md",
			RelativePath: "README.md",
			Name:         "README.md",
			SizeBytes:    40,
			Content:      "# Readme",
			TokenCount:   2,
		},
		{
			AbsolutePath: "/proj/assets/logo.png",
			RelativePath: "assets/logo.png",
			Name:         "logo.png",
			SizeBytes:    9000,
			IsBinary:     true,
			FileTypeTag:  "PNG",
		},
	}
}

func Test_Format_EmptySelectionMessage(t *testing.T) {
	got := Format(fixtureRecords(), nil, Options{Root: "/proj"})
	if got != NoSelectionMessage {
		t.Errorf("expected %q, got %q", NoSelectionMessage, got)
	}

	got = Format(fixtureRecords(), []string{"/proj/not-scanned.txt"}, Options{Root: "/proj"})
	if got != NoSelectionMessage {
		t.Errorf("expected unmatched selection to yield %q, got %q", NoSelectionMessage, got)
	}
}

func Test_Format_Deterministic(t *testing.T) {
	selection := []string{"/proj/src/main.go", "/proj/README.md"}
	opts := Options{SortBy: SortByName, SortDir: Ascending, IncludeTree: true, Root: "/proj", Instructions: "Do the thing."}

	first := Format(fixtureRecords(), selection, opts)
	second := Format(fixtureRecords(), selection, opts)

	if first != second {
		t.Error("expected byte-identical output for identical inputs")
	}
}

func Test_Format_HeadersAndFences(t *testing.T) {
	got := Format(fixtureRecords(), []string{"/proj/src/main.go"}, Options{Root: "/proj"})

	if !strings.Contains(got, "<file_contents>") || !strings.Contains(got, "</file_contents>") {
		t.Error("expected file contents delimiter block")
	}
	if !strings.Contains(got, "File: proj/src/main.go\n") {
		t.Errorf("expected root-name-prefixed header, got:\n%s", got)
	}
	if !strings.Contains(got, "```go\npackage main\n```") {
		t.Errorf("expected go-tagged fenced content, got:\n%s", got)
	}
}

func Test_Format_AbsolutePathHeaderOutsideRoot(t *testing.T) {
	records := []*scan.FileRecord{{
		AbsolutePath: "/elsewhere/notes.txt",
		Name:         "notes.txt",
		Content:      "hi",
	}}

	got := Format(records, []string{"/elsewhere/notes.txt"}, Options{Root: "/proj"})
	if !strings.Contains(got, "File: /elsewhere/notes.txt\n") {
		t.Errorf("expected absolute path header, got:\n%s", got)
	}
}

func Test_Format_SortByTokensDescending(t *testing.T) {
	selection := []string{"/proj/src/main.go", "/proj/README.md"}
	got := Format(fixtureRecords(), selection, Options{SortBy: SortByTokens, SortDir: Descending, Root: "/proj"})

	mainIdx := strings.Index(got, "File: proj/src/main.go")
	readmeIdx := strings.Index(got, "File: proj/README.md")
	if mainIdx < 0 || readmeIdx < 0 {
		t.Fatalf("expected both headers present, got:\n%s", got)
	}
	if mainIdx > readmeIdx {
		t.Error("expected higher token count first when sorting descending")
	}
}

func Test_Format_TreeCoversAllFilesNotJustSelection(t *testing.T) {
	got := Format(fixtureRecords(), []string{"/proj/README.md"}, Options{IncludeTree: true, Root: "/proj"})

	if !strings.Contains(got, "<file_map>") {
		t.Fatal("expected file map block")
	}
	// logo.png is not selected but lives inside the root, so the map shows it.
	if !strings.Contains(got, "logo.png") {
		t.Errorf("expected unselected file in tree, got:\n%s", got)
	}
	if !strings.Contains(got, "└── ") {
		t.Error("expected ASCII tree connectors")
	}
}

func Test_Format_TreeOmittedWithoutRoot(t *testing.T) {
	got := Format(fixtureRecords(), []string{"/proj/README.md"}, Options{IncludeTree: true})
	if strings.Contains(got, "<file_map>") {
		t.Error("expected no tree block when root is unknown")
	}
}

func Test_Format_InstructionsBlock(t *testing.T) {
	got := Format(fixtureRecords(), []string{"/proj/README.md"}, Options{Root: "/proj", Instructions: "  Summarize.  "})
	if !strings.Contains(got, "<user_instructions>\nSummarize.\n</user_instructions>") {
		t.Errorf("expected trimmed instructions block, got:\n%s", got)
	}

	got = Format(fixtureRecords(), []string{"/proj/README.md"}, Options{Root: "/proj", Instructions: "   "})
	if strings.Contains(got, "<user_instructions>") {
		t.Error("expected blank instructions to be omitted")
	}
}

func Test_RenderTree_Structure(t *testing.T) {
	got := renderTree("/proj", fixtureRecords())

	expected := "/proj\n" +
		"├── assets\n" +
		"│   └── logo.png\n" +
		"├── src\n" +
		"│   └── main.go\n" +
		"└── README.md\n"
	if got != expected {
		t.Errorf("tree mismatch:\nwant:\n%s\ngot:\n%s", expected, got)
	}
}
