package scan

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mathivhahy/pastemax/ignore"
	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/token"
)

func testPipeline(t *testing.T, root string) *Pipeline {
	t.Helper()
	absRoot, err := pathutil.ToAbsolute(root)
	if err != nil {
		t.Fatalf("ToAbsolute: %v", err)
	}
	return &Pipeline{
		Root:    absRoot,
		Rules:   ignore.Build(absRoot),
		Counter: token.EstimateCounter{},
	}
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func Test_Pipeline_TextFile(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "a.txt", "hello world")

	rec, err := testPipeline(t, root).Process(path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if rec.IsBinary || rec.IsSkipped {
		t.Errorf("expected a normal record, got %+v", rec)
	}
	if rec.Content != "hello world" {
		t.Errorf("expected content preserved, got %q", rec.Content)
	}
	if rec.TokenCount < 1 {
		t.Errorf("expected at least 1 token, got %d", rec.TokenCount)
	}
	if rec.RelativePath != "a.txt" {
		t.Errorf("expected relative path a.txt, got %q", rec.RelativePath)
	}
	if rec.Name != "a.txt" {
		t.Errorf("expected name a.txt, got %q", rec.Name)
	}
}

func Test_Pipeline_BinaryExtensionNeverRead(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "logo.png", "not really a png")

	rec, err := testPipeline(t, root).Process(path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !rec.IsBinary {
		t.Error("expected binary classification from extension")
	}
	if rec.FileTypeTag != "PNG" {
		t.Errorf("expected file type tag PNG, got %q", rec.FileTypeTag)
	}
	if rec.Content != "" || rec.TokenCount != 0 {
		t.Errorf("expected empty content and 0 tokens, got %q / %d", rec.Content, rec.TokenCount)
	}
}

func Test_Pipeline_OversizedSkippedRegardlessOfExtension(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "big.txt", strings.Repeat("x", 2048))

	p := testPipeline(t, root)
	p.MaxFileSize = 1024

	rec, err := p.Process(path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !rec.IsSkipped {
		t.Error("expected oversized file to be skipped")
	}
	if rec.SkipReason == "" {
		t.Error("expected a human-readable skip reason")
	}
	if rec.Content != "" || rec.TokenCount != 0 {
		t.Errorf("expected empty content and 0 tokens, got %q / %d", rec.Content, rec.TokenCount)
	}
}

func Test_Pipeline_VanishedFileDowngradesToSkipped(t *testing.T) {
	root := t.TempDir()

	rec, err := testPipeline(t, root).Process(filepath.Join(root, "gone.txt"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !rec.IsSkipped || rec.SkipReason == "" {
		t.Errorf("expected skipped record with reason, got %+v", rec)
	}
}

func Test_Pipeline_OutsideRootRejected(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	path := writeFile(t, other, "x.txt", "outside")

	_, err := testPipeline(t, root).Process(path)
	if !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("expected ErrOutsideRoot, got %v", err)
	}
}

func Test_Pipeline_IgnoredPathRejected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "b.txt\n")
	path := writeFile(t, root, "b.txt", "ignored")

	absRoot, _ := pathutil.ToAbsolute(root)
	p := &Pipeline{Root: absRoot, Rules: ignore.Build(absRoot), Counter: token.EstimateCounter{}}

	_, err := p.Process(path)
	if !errors.Is(err, ErrIgnored) {
		t.Errorf("expected ErrIgnored, got %v", err)
	}
}

func Test_Pipeline_DefaultExclusionStillListed(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "package-lock.json", "{}")

	rec, err := testPipeline(t, root).Process(path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !rec.ExcludedByDefault {
		t.Error("expected lock file to be marked excluded by default")
	}
	if rec.IsSkipped || rec.IsBinary {
		t.Error("expected lock file to still be a normal listed record")
	}
}
