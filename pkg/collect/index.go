// File: pkg/collect/index.go
package collect

import (
	"fmt"
	"sort"
	"strings"
)

// ProjectIndex is the read-only header document derived from the final
// record and omission lists. It is never mutated after construction; when
// multiple chunks exist it is prepended to chunk 1.
type ProjectIndex struct {
	root        string
	files       []FileRecord
	omissions   []OmissionRecord
	totalChunks int
}

// BuildIndex derives the index from the records (with chunk indices already
// assigned) and the collected omissions.
func BuildIndex(root string, files []FileRecord, omissions []OmissionRecord, totalChunks int) *ProjectIndex {
	return &ProjectIndex{
		root:        root,
		files:       files,
		omissions:   omissions,
		totalChunks: totalChunks,
	}
}

// Render produces the index document: summary header, tree of included files,
// file-to-chunk map (multi-chunk runs only) and the omission list.
func (ix *ProjectIndex) Render() string {
	var b strings.Builder

	b.WriteString("# Repopack index\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", strings.ReplaceAll(ix.root, "\\", "/"))
	fmt.Fprintf(&b, "- Files included: %d\n", len(ix.files))
	fmt.Fprintf(&b, "- Chunks: %d\n\n", ix.totalChunks)

	b.WriteString("## Included file tree\n\n```text\n")
	if len(ix.files) == 0 {
		b.WriteString("(no files included)\n")
	} else {
		b.WriteString(ix.renderTree())
	}
	b.WriteString("```\n\n")

	// A single-chunk run has no mapping to convey.
	if ix.totalChunks > 1 {
		b.WriteString("## File to chunk map\n\n")
		for _, entry := range ix.chunkMap() {
			fmt.Fprintf(&b, "- [%03d] %s\n", entry.chunk, entry.path)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Omitted paths\n\n")
	if len(ix.omissions) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, om := range ix.omissions {
			if om.Detail != "" {
				fmt.Fprintf(&b, "- %s: %s (%s)\n", om.Path, om.Reason.Label(), om.Detail)
			} else {
				fmt.Fprintf(&b, "- %s: %s\n", om.Path, om.Reason.Label())
			}
		}
	}
	b.WriteString("\n---\n\n")

	return b.String()
}

type chunkMapEntry struct {
	chunk int
	path  string
}

// chunkMap orders the file-to-chunk entries by chunk, then path.
func (ix *ProjectIndex) chunkMap() []chunkMapEntry {
	entries := make([]chunkMapEntry, 0, len(ix.files))
	for _, rec := range ix.files {
		entries = append(entries, chunkMapEntry{chunk: rec.ChunkIndex, path: rec.Path})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].chunk != entries[j].chunk {
			return entries[i].chunk < entries[j].chunk
		}
		return strings.ToLower(entries[i].path) < strings.ToLower(entries[j].path)
	})
	return entries
}

// treeNode is one directory or file in the included-files tree.
type treeNode struct {
	children map[string]*treeNode
	isDir    bool
}

// renderTree draws the tree of included files only. Omitted files do not
// appear here; the omission list discloses that something was excluded
// without leaking its layout.
func (ix *ProjectIndex) renderTree() string {
	root := &treeNode{children: map[string]*treeNode{}, isDir: true}
	for _, rec := range ix.files {
		node := root
		parts := strings.Split(rec.Path, "/")
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{children: map[string]*treeNode{}, isDir: i < len(parts)-1}
				node.children[part] = child
			}
			node = child
		}
	}

	var b strings.Builder
	renderTreeLevel(&b, root, "")
	return b.String()
}

// renderTreeLevel draws one directory level: directories first, then files,
// case-insensitive alphabetical within each group.
func renderTreeLevel(b *strings.Builder, node *treeNode, prefix string) {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di, dj := node.children[names[i]].isDir, node.children[names[j]].isDir
		if di != dj {
			return di
		}
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for i, name := range names {
		connector, extension := "├── ", "│   "
		if i == len(names)-1 {
			connector, extension = "└── ", "    "
		}

		child := node.children[name]
		if child.isDir {
			fmt.Fprintf(b, "%s%s%s/\n", prefix, connector, name)
			renderTreeLevel(b, child, prefix+extension)
		} else {
			fmt.Fprintf(b, "%s%s%s\n", prefix, connector, name)
		}
	}
}
