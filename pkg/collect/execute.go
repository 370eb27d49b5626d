// File: pkg/collect/execute.go
package collect

import (
	"fmt"
	"path/filepath"
	"time"

	"repopack/pkg/ignore"

	"go.uber.org/zap"
)

// Run executes the collection pipeline: validate, compile exclusion rules,
// walk, rank, assemble, index, persist. The pipeline is strictly sequential;
// each stage hands an explicit value to the next.
func Run(cfg *Config, sink Sink, logger *zap.Logger) (*Summary, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	startTime := time.Now()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	rootAbs, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	logger.Info("Starting collection", zap.String("root", rootAbs))

	rules := ignore.NewRuleSet(logger)
	if cfg.IgnoreFile != "" {
		if err := rules.CompileFile(filepath.Join(rootAbs, cfg.IgnoreFile)); err != nil {
			logger.Warn("Failed to load ignore file, continuing without it",
				zap.String("file", cfg.IgnoreFile), zap.Error(err))
		}
	}
	rules.CompileLines(cfg.Exclude...)
	logger.Debug("Compiled exclusion rules", zap.Int("totalPatterns", rules.Len()))

	classifier := NewClassifier(cfg, rules, logger)
	walker := NewWalker(rootAbs, classifier, logger)
	files, omissions, err := walker.Walk()
	if err != nil {
		logger.Error("Failed to traverse root", zap.Error(err))
		return nil, fmt.Errorf("failed to traverse root: %w", err)
	}

	ranker := NewRanker(cfg.PrimaryExts, cfg.ConfigExts)
	files = ranker.Rank(files)

	assembler := NewAssembler(cfg, logger)
	chunks, files, lateOmissions := assembler.Assemble(files)
	omissions = append(omissions, lateOmissions...)

	totalChunks := len(chunks)
	if totalChunks == 0 {
		totalChunks = 1 // An empty run still emits one file carrying the index.
	}

	index := BuildIndex(rootAbs, files, omissions, totalChunks)
	preamble := []byte(index.Render())

	summary := &Summary{
		IncludedFiles: len(files),
		OmittedFiles:  len(omissions),
		Chunks:        totalChunks,
	}

	// The index always travels in chunk 1, ahead of its blocks. The chunk
	// byte budget governs block payload only, not this preamble.
	if len(chunks) == 0 {
		name := ChunkFileName(cfg.OutputPrefix, 1, 1)
		if err := sink.WriteChunk(name, preamble); err != nil {
			return nil, err
		}
		summary.ChunkNames = []string{name}
	}
	for _, chunk := range chunks {
		data := chunk.Body
		if chunk.Index == 1 {
			data = append(append([]byte{}, preamble...), chunk.Body...)
		}
		name := ChunkFileName(cfg.OutputPrefix, chunk.Index, len(chunks))
		if err := sink.WriteChunk(name, data); err != nil {
			return nil, err
		}
		summary.ChunkNames = append(summary.ChunkNames, name)
		summary.BlockBytes += int64(chunk.ByteSize)
	}

	logger.Info("Collection completed",
		zap.Int("files", summary.IncludedFiles),
		zap.Int("omitted", summary.OmittedFiles),
		zap.Int("chunks", summary.Chunks),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}
