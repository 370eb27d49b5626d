// File: pkg/collect/walk.go
package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// Walker enumerates every path under the root in deterministic order,
// consulting the classifier to split candidates into included file records
// and omissions. Content is not read here; records stay lazy until the
// assembly stage.
type Walker struct {
	root       string
	classifier *Classifier
	logger     *zap.Logger

	visited   map[string]bool
	files     []FileRecord
	omissions []OmissionRecord
}

// NewWalker builds a Walker for an absolute root path.
func NewWalker(root string, classifier *Classifier, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		root:       root,
		classifier: classifier,
		logger:     logger,
		visited:    map[string]bool{},
	}
}

// Walk traverses the tree and returns the included records and omissions,
// both in traversal order. Directory entries are visited in lexicographic
// order per level, so the result is reproducible on an unchanged tree.
func (w *Walker) Walk() ([]FileRecord, []OmissionRecord, error) {
	resolved, err := filepath.EvalSymlinks(w.root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve root %q: %w", w.root, err)
	}
	w.visited[resolved] = true

	w.walkDir(w.root, "")

	w.logger.Debug("Completed traversal",
		zap.Int("includedFiles", len(w.files)),
		zap.Int("omittedPaths", len(w.omissions)))
	return w.files, w.omissions, nil
}

func (w *Walker) walkDir(absDir, relDir string) {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		w.logger.Warn("Failed to read directory", zap.String("path", absDir), zap.Error(err))
		w.omit(relDir+"/", ReasonUnreadable, "")
		return
	}

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		abs := filepath.Join(absDir, entry.Name())
		rel := path.Join(relDir, entry.Name())

		switch {
		case entry.IsDir():
			w.descend(abs, rel, entry.Name())

		case entry.Type()&fs.ModeSymlink != 0:
			info, err := os.Stat(abs)
			if err != nil {
				w.logger.Warn("Broken symlink", zap.String("path", abs), zap.Error(err))
				w.omit(rel, ReasonUnreadable, "")
				continue
			}
			if info.IsDir() {
				w.descend(abs, rel, entry.Name())
				continue
			}
			w.classifyFile(abs, rel, info.Size())

		case entry.Type().IsRegular():
			info, err := entry.Info()
			if err != nil {
				w.logger.Warn("Failed to stat file", zap.String("path", abs), zap.Error(err))
				w.omit(rel, ReasonUnreadable, "")
				continue
			}
			w.classifyFile(abs, rel, info.Size())

		default:
			// Sockets, devices and pipes cannot be collected.
			w.omit(rel, ReasonUnreadable, "not a regular file")
		}
	}
}

// descend recurses into a directory unless it is pruned by the exclusion
// rules or has already been visited through another symlink.
func (w *Walker) descend(abs, rel, name string) {
	if w.classifier.ShouldPruneDir(name, rel) {
		w.omit(rel+"/", ReasonExcludedPattern, "")
		return
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		w.logger.Warn("Failed to resolve directory", zap.String("path", abs), zap.Error(err))
		w.omit(rel+"/", ReasonUnreadable, "")
		return
	}
	if w.visited[resolved] {
		// A directory reached twice means a symlink cycle.
		w.omit(rel+"/", ReasonUnreadable, "symlink cycle")
		return
	}
	w.visited[resolved] = true

	w.walkDir(abs, rel)
}

func (w *Walker) classifyFile(abs, rel string, sizeBytes int64) {
	verdict := w.classifier.Classify(abs, rel, sizeBytes)
	if !verdict.Included {
		w.omit(rel, verdict.Reason, verdict.Detail)
		return
	}

	w.files = append(w.files, FileRecord{
		Path:      rel,
		AbsPath:   abs,
		SizeBytes: sizeBytes,
		Extension: extOf(rel),
		Language:  LanguageFor(rel),
	})
}

func (w *Walker) omit(rel string, reason Reason, detail string) {
	w.omissions = append(w.omissions, OmissionRecord{Path: rel, Reason: reason, Detail: detail})
}
