// Package ignore compiles gitignore-style rules into an immutable per-scan
// ruleset. A ruleset combines the root's .gitignore, a fixed default-ignore
// list, and the soft default-exclusion list. It is built once when a scan
// starts and shared, unmodified, with the watcher armed for the same root.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// RuleSet answers hard-ignore and soft-exclusion questions for root-relative
// paths (forward slashes). Immutable after Build; safe for concurrent use.
type RuleSet struct {
	root           string
	gitIgnore      gitignore.GitIgnore
	customPatterns []string
}

// Build compiles a ruleset for the given root directory. A missing .gitignore
// is not an error; the ruleset then consists of defaults and custom patterns
// only. Custom patterns are extra hard-ignore globs (CLI-supplied).
func Build(root string, customPatterns ...string) *RuleSet {
	return &RuleSet{
		root:           root,
		gitIgnore:      loadIgnoreFile(filepath.Join(filepath.FromSlash(root), ".gitignore"), root),
		customPatterns: customPatterns,
	}
}

// Match reports whether a root-relative path is hard-ignored: removed from
// scan output and watcher events entirely. The root itself (empty relative
// path) never matches. Later .gitignore patterns can re-include earlier
// excludes; directory matches cover all descendants.
func (rs *RuleSet) Match(relativePath string, isDir bool) bool {
	relativePath = strings.TrimPrefix(relativePath, "./")
	if relativePath == "" || relativePath == "." {
		return false
	}

	if matchesDefaultNames(relativePath) {
		return true
	}

	if rs.gitIgnore != nil {
		if match := rs.gitIgnore.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	return rs.matchesCustomPatterns(relativePath)
}

// ExcludedByDefault reports whether a root-relative path matches the static
// soft-exclusion list. Distinct from Match: the file is still listed, just
// deselected by default.
func (rs *RuleSet) ExcludedByDefault(relativePath string) bool {
	if relativePath == "" || relativePath == "." {
		return false
	}
	baseName := lastSegment(relativePath)
	for _, pattern := range defaultExclusionPatterns {
		if matched, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(baseName)); err == nil && matched {
			return true
		}
	}
	return false
}

// Root returns the root directory the ruleset was built for.
func (rs *RuleSet) Root() string {
	return rs.root
}

// matchesDefaultNames checks every path component against the hard default
// list, so "node_modules/express/index.js" is caught at any depth.
func matchesDefaultNames(relativePath string) bool {
	for _, part := range strings.Split(relativePath, "/") {
		for _, name := range defaultIgnoreNames {
			if strings.EqualFold(part, name) {
				return true
			}
		}
	}
	return false
}

func (rs *RuleSet) matchesCustomPatterns(relativePath string) bool {
	baseName := lastSegment(relativePath)
	for _, pattern := range rs.customPatterns {
		pattern = strings.ReplaceAll(pattern, "\\", "/")
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// lastSegment is filepath.Base for forward-slash paths without the platform
// separator rewrite.
func lastSegment(relativePath string) string {
	if idx := strings.LastIndex(relativePath, "/"); idx >= 0 {
		return relativePath[idx+1:]
	}
	return relativePath
}

// loadIgnoreFile reads an ignore file into a gitignore matcher. Uses the
// io.Reader form so the handle is closed promptly on Windows. Returns nil
// when the file does not exist or cannot be read.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
