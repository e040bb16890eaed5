package format

import (
	"sort"
	"strings"

	"github.com/mathivhahy/pastemax/pathutil"
	"github.com/mathivhahy/pastemax/scan"
)

// treeNode is one directory or file in the rendered file map.
type treeNode struct {
	name     string
	isFile   bool
	children map[string]*treeNode
}

// renderTree draws the ASCII directory tree of every record inside root.
// Membership is prefix containment on normalized paths, independent of the
// caller's selection, so the map always shows the whole scanned folder.
func renderTree(root string, allFiles []*scan.FileRecord) string {
	rootNode := &treeNode{children: make(map[string]*treeNode)}

	for _, record := range allFiles {
		if !pathutil.ContainsPath(root, record.AbsolutePath) {
			continue
		}
		rel, err := pathutil.RelativeOf(root, record.AbsolutePath)
		if err != nil || !pathutil.IsInsideRoot(rel) || rel == "." {
			continue
		}
		insert(rootNode, strings.Split(rel, "/"))
	}

	var b strings.Builder
	b.WriteString(pathutil.Normalize(root))
	b.WriteString("\n")
	renderChildren(&b, rootNode, "")
	return b.String()
}

func insert(node *treeNode, segments []string) {
	if len(segments) == 0 {
		return
	}
	name := segments[0]
	child, ok := node.children[name]
	if !ok {
		child = &treeNode{name: name, children: make(map[string]*treeNode)}
		node.children[name] = child
	}
	if len(segments) == 1 {
		child.isFile = true
		return
	}
	insert(child, segments[1:])
}

// renderChildren draws a node's children, directories before files, each
// group alphabetical case-insensitively.
func renderChildren(b *strings.Builder, node *treeNode, prefix string) {
	children := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		children = append(children, child)
	}
	sort.Slice(children, func(i, j int) bool {
		if children[i].isFile != children[j].isFile {
			return !children[i].isFile
		}
		left, right := strings.ToLower(children[i].name), strings.ToLower(children[j].name)
		if left != right {
			return left < right
		}
		return children[i].name < children[j].name
	})

	for i, child := range children {
		last := i == len(children)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if last {
			connector, childPrefix = "└── ", prefix+"    "
		}
		b.WriteString(prefix)
		b.WriteString(connector)
		b.WriteString(child.name)
		b.WriteString("\n")
		renderChildren(b, child, childPrefix)
	}
}
