// Package pathutil canonicalizes file paths so that every other package can
// compare them without caring about platform separator or case conventions.
// All paths leaving this package use forward slashes.
package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// caseInsensitive reports whether the host filesystem folds letter case.
// Windows and macOS default filesystems do; everything else is assumed not to.
var caseInsensitive = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// Normalize rewrites all separators to forward slashes. A UNC prefix
// (\\server\share or //server/share) keeps its leading double slash so the
// share reference survives the round trip through path comparison.
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	unc := strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, "//")
	normalized := strings.ReplaceAll(path, `\`, "/")
	for strings.Contains(normalized, "//") {
		normalized = strings.ReplaceAll(normalized, "//", "/")
	}
	if unc {
		normalized = "/" + normalized
	}
	return normalized
}

// ToAbsolute resolves a possibly-relative path against the process working
// directory and normalizes the result.
func ToAbsolute(path string) (string, error) {
	abs, err := filepath.Abs(filepath.FromSlash(path))
	if err != nil {
		return "", err
	}
	return Normalize(abs), nil
}

// RelativeOf computes the normalized path of target relative to root. On
// case-insensitive platforms both operands are lower-cased first so that
// "C:\Proj" and "c:\proj\a.txt" relate cleanly. The result uses forward
// slashes; a target outside root yields a "../"-prefixed path, which callers
// must reject via IsInsideRoot.
func RelativeOf(root, target string) (string, error) {
	rootClean := filepath.FromSlash(Normalize(root))
	targetClean := filepath.FromSlash(Normalize(target))
	if caseInsensitive {
		rootClean = strings.ToLower(rootClean)
		targetClean = strings.ToLower(targetClean)
	}
	rel, err := filepath.Rel(rootClean, targetClean)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsInsideRoot reports whether a root-relative path stays inside the root.
// The root itself ("." or "") counts as inside. Parent traversals do not.
func IsInsideRoot(relativePath string) bool {
	if relativePath == "" || relativePath == "." {
		return true
	}
	if relativePath == ".." || strings.HasPrefix(relativePath, "../") {
		return false
	}
	return true
}

// ContainsPath reports whether target is root itself or a descendant of root,
// by prefix containment on normalized (and case-folded, where applicable) forms.
func ContainsPath(root, target string) bool {
	rootNorm := strings.TrimSuffix(Normalize(root), "/")
	targetNorm := Normalize(target)
	if caseInsensitive {
		rootNorm = strings.ToLower(rootNorm)
		targetNorm = strings.ToLower(targetNorm)
	}
	if targetNorm == rootNorm {
		return true
	}
	return strings.HasPrefix(targetNorm, rootNorm+"/")
}

// CanonicalKey returns the form of a path used as a map key: normalized, and
// case-folded on platforms where the filesystem is.
func CanonicalKey(path string) string {
	key := Normalize(path)
	if caseInsensitive {
		key = strings.ToLower(key)
	}
	return key
}

// Equal compares two normalized paths, folding case on platforms where the
// filesystem does.
func Equal(a, b string) bool {
	an, bn := Normalize(a), Normalize(b)
	if caseInsensitive {
		return strings.EqualFold(an, bn)
	}
	return an == bn
}

// WorkingDir returns the normalized process working directory.
func WorkingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return Normalize(wd), nil
}
