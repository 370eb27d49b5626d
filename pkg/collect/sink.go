// File: pkg/collect/sink.go
package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Sink persists finished chunks. A sink failure is fatal to the run; chunks
// already written stay on disk with no rollback guarantee.
type Sink interface {
	WriteChunk(name string, data []byte) error
}

// DirSink writes chunks as files, creating parent directories as needed.
type DirSink struct {
	logger *zap.Logger
}

// NewDirSink builds a filesystem-backed sink.
func NewDirSink(logger *zap.Logger) *DirSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirSink{logger: logger}
}

// WriteChunk writes one chunk file.
func (s *DirSink) WriteChunk(name string, data []byte) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			s.logger.Error("Failed to create output directory", zap.String("path", dir), zap.Error(err))
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		s.logger.Error("Failed to write chunk file", zap.String("path", name), zap.Error(err))
		return fmt.Errorf("failed to write chunk file %s: %w", name, err)
	}
	s.logger.Debug("Wrote chunk file", zap.String("path", name), zap.Int("bytes", len(data)))
	return nil
}

// ChunkFileName returns the output name for a chunk: "<prefix>.txt" for a
// single-chunk run, "<prefix>.part<N>.txt" otherwise. The convention is
// stable and must not change; downstream consumers rely on it.
func ChunkFileName(prefix string, index, total int) string {
	if total <= 1 {
		return prefix + ".txt"
	}
	return fmt.Sprintf("%s.part%d.txt", prefix, index)
}
