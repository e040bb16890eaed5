package pathutil

import (
	"path/filepath"
	"testing"
)

func Test_Normalize_BackslashSeparators(t *testing.T) {
	got := Normalize(`src\components\App.tsx`)
	if got != "src/components/App.tsx" {
		t.Errorf("expected forward slashes, got %q", got)
	}
}

func Test_Normalize_CollapsesDoubledSlashes(t *testing.T) {
	got := Normalize("a//b///c")
	if got != "a/b/c" {
		t.Errorf("expected collapsed slashes, got %q", got)
	}
}

func Test_Normalize_PreservesUNCPrefix(t *testing.T) {
	for _, input := range []string{`\\server\share\dir`, "//server/share/dir"} {
		got := Normalize(input)
		if got != "//server/share/dir" {
			t.Errorf("Normalize(%q): expected //server/share/dir, got %q", input, got)
		}
	}
}

func Test_Normalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func Test_RelativeOf_SeparatorIndependent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")

	forward := Normalize(root) + "/src/main.go"
	backward := filepath.FromSlash(forward)

	relForward, err := RelativeOf(root, forward)
	if err != nil {
		t.Fatalf("RelativeOf forward: %v", err)
	}
	relBackward, err := RelativeOf(root, backward)
	if err != nil {
		t.Fatalf("RelativeOf backward: %v", err)
	}

	if relForward != "src/main.go" {
		t.Errorf("expected src/main.go, got %q", relForward)
	}
	if relForward != relBackward {
		t.Errorf("separator style changed the result: %q vs %q", relForward, relBackward)
	}
}

func Test_RelativeOf_OutsideRootYieldsTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "root")
	outside := filepath.Join(tmpDir, "elsewhere", "x.txt")

	rel, err := RelativeOf(root, outside)
	if err != nil {
		t.Fatalf("RelativeOf: %v", err)
	}
	if IsInsideRoot(rel) {
		t.Errorf("expected %q to be rejected by IsInsideRoot", rel)
	}
}

func Test_IsInsideRoot(t *testing.T) {
	tests := []struct {
		rel    string
		inside bool
	}{
		{"", true},
		{".", true},
		{"a.txt", true},
		{"src/deep/file.go", true},
		{"..", false},
		{"../sibling.txt", false},
		{"..weird-but-inside", true},
	}
	for _, tt := range tests {
		if got := IsInsideRoot(tt.rel); got != tt.inside {
			t.Errorf("IsInsideRoot(%q) = %v, want %v", tt.rel, got, tt.inside)
		}
	}
}

func Test_ContainsPath(t *testing.T) {
	if !ContainsPath("/proj", "/proj/src/a.go") {
		t.Error("expected descendant to be contained")
	}
	if !ContainsPath("/proj", "/proj") {
		t.Error("expected root to contain itself")
	}
	if ContainsPath("/proj", "/project/a.go") {
		t.Error("expected sibling with shared prefix to NOT be contained")
	}
	if ContainsPath("/proj", "/other/a.go") {
		t.Error("expected unrelated path to NOT be contained")
	}
}

func Test_ToAbsolute_NormalizesResult(t *testing.T) {
	abs, err := ToAbsolute("some/relative/file.txt")
	if err != nil {
		t.Fatalf("ToAbsolute: %v", err)
	}
	if abs != Normalize(abs) {
		t.Errorf("expected normalized output, got %q", abs)
	}
	rel, err := RelativeOf(mustWorkingDir(t), abs)
	if err != nil {
		t.Fatalf("RelativeOf: %v", err)
	}
	if rel != "some/relative/file.txt" {
		t.Errorf("expected path resolved against working directory, got %q", rel)
	}
}

func mustWorkingDir(t *testing.T) string {
	t.Helper()
	wd, err := WorkingDir()
	if err != nil {
		t.Fatalf("WorkingDir: %v", err)
	}
	return wd
}
