// Package format assembles a selection of scanned files into one text
// artifact. Pure functions, no I/O: output is byte-identical for identical
// inputs.
package format

import (
	"sort"
	"strings"

	"github.com/mathivhahy/pastemax/language"
	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/scan"
)

// SortKey selects the ordering field.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByTokens SortKey = "tokens"
	SortBySize   SortKey = "size"
)

// SortDir selects the ordering direction.
type SortDir string

const (
	Ascending  SortDir = "asc"
	Descending SortDir = "desc"
)

// NoSelectionMessage is returned when the selection is empty.
const NoSelectionMessage = "No files selected."

// Block delimiters of the assembled artifact.
const (
	fileMapOpen       = "<file_map>"
	fileMapClose      = "</file_map>"
	fileContentsOpen  = "<file_contents>"
	fileContentsClose = "</file_contents>"
	instructionsOpen  = "<user_instructions>"
	instructionsClose = "</user_instructions>"
)

// Options control the shape of the artifact.
type Options struct {
	SortBy       SortKey
	SortDir      SortDir
	IncludeTree  bool
	Root         string // scan root; enables the tree banner and relative headers
	Instructions string // appended as a final block when non-blank
}

// Format serializes the selected subset of allFiles. Selection is matched by
// normalized absolute path. Ties under the requested sort retain the filtered
// order (stable). The tree banner, when requested, covers every file of
// allFiles inside Root, not just the selection.
func Format(allFiles []*scan.FileRecord, selectedPaths []string, opts Options) string {
	selected := filterSelection(allFiles, selectedPaths)
	if len(selected) == 0 {
		return NoSelectionMessage
	}
	sortRecords(selected, opts.SortBy, opts.SortDir)

	var b strings.Builder

	if opts.IncludeTree && opts.Root != "" {
		b.WriteString(fileMapOpen)
		b.WriteString("\n")
		b.WriteString(renderTree(opts.Root, allFiles))
		b.WriteString(fileMapClose)
		b.WriteString("\n\n")
	}

	b.WriteString(fileContentsOpen)
	b.WriteString("\n")
	for _, record := range selected {
		b.WriteString("File: ")
		b.WriteString(displayPath(opts.Root, record))
		b.WriteString("\n```")
		b.WriteString(language.FenceTag(record.AbsolutePath))
		b.WriteString("\n")
		b.WriteString(record.Content)
		if !strings.HasSuffix(record.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n\n")
	}
	b.WriteString(fileContentsClose)

	if instructions := strings.TrimSpace(opts.Instructions); instructions != "" {
		b.WriteString("\n\n")
		b.WriteString(instructionsOpen)
		b.WriteString("\n")
		b.WriteString(instructions)
		b.WriteString("\n")
		b.WriteString(instructionsClose)
	}

	b.WriteString("\n")
	return b.String()
}

// filterSelection keeps records whose path is selected, preserving the input
// order of allFiles.
func filterSelection(allFiles []*scan.FileRecord, selectedPaths []string) []*scan.FileRecord {
	wanted := make(map[string]bool, len(selectedPaths))
	for _, p := range selectedPaths {
		wanted[pathutil.CanonicalKey(p)] = true
	}

	var selected []*scan.FileRecord
	for _, record := range allFiles {
		if wanted[pathutil.CanonicalKey(record.AbsolutePath)] {
			selected = append(selected, record)
		}
	}
	return selected
}

func sortRecords(records []*scan.FileRecord, key SortKey, dir SortDir) {
	descending := dir == Descending
	less := func(a, b *scan.FileRecord) bool {
		switch key {
		case SortByTokens:
			return a.TokenCount < b.TokenCount
		case SortBySize:
			return a.SizeBytes < b.SizeBytes
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if descending {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}

// displayPath prefers the root-folder-name-prefixed relative path, falling
// back to the absolute path when the record is not inside root.
func displayPath(root string, record *scan.FileRecord) string {
	if root == "" || !pathutil.ContainsPath(root, record.AbsolutePath) {
		return record.AbsolutePath
	}
	rel, err := pathutil.RelativeOf(root, record.AbsolutePath)
	if err != nil || !pathutil.IsInsideRoot(rel) {
		return record.AbsolutePath
	}
	rootName := baseName(pathutil.Normalize(root))
	if rootName == "" {
		return rel
	}
	return rootName + "/" + rel
}

func baseName(normalizedPath string) string {
	trimmed := strings.TrimSuffix(normalizedPath, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
