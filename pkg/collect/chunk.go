// File: pkg/collect/chunk.go
package collect

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Assembler renders each file as a fenced block and packs blocks into chunks
// bounded by the configured byte budget. A file's block is never split across
// chunks; a block that alone exceeds the budget gets a dedicated oversized
// chunk instead of being truncated.
type Assembler struct {
	chunkBytes   int
	headerLine   string
	maxFileBytes int64
	logger       *zap.Logger
}

// NewAssembler builds an Assembler from the run configuration.
func NewAssembler(cfg *Config, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		chunkBytes:   cfg.ChunkBytes,
		headerLine:   cfg.HeaderLine,
		maxFileBytes: cfg.MaxFileBytes,
		logger:       logger,
	}
}

// Assemble consumes the ranked records in order, reading each file's content
// just before rendering so at most one file is held alongside the chunk
// buffers. Records that fail to read at this stage degrade to unreadable
// omissions. It returns the chunks, the surviving records (with their chunk
// index assigned), and any late omissions, in that order.
func (a *Assembler) Assemble(records []FileRecord) ([]Chunk, []FileRecord, []OmissionRecord) {
	var (
		chunks    []Chunk
		kept      []FileRecord
		omissions []OmissionRecord
		current   = -1
	)

	open := func() {
		chunks = append(chunks, Chunk{Index: len(chunks) + 1})
		current = len(chunks) - 1
	}

	for i := range records {
		rec := records[i]
		block, verdict := a.renderBlock(&rec)
		if !verdict.Included {
			omissions = append(omissions, OmissionRecord{Path: rec.Path, Reason: verdict.Reason, Detail: verdict.Detail})
			continue
		}
		rec.Content = "" // Released once rendered.
		rec.BlockBytes = len(block)

		oversized := a.chunkBytes > 0 && rec.BlockBytes > a.chunkBytes
		switch {
		case oversized:
			// The block gets a chunk of its own; never append to a chunk
			// that already has content, never reuse it afterwards.
			if current < 0 || chunks[current].ByteSize > 0 {
				open()
			}
			chunks[current].Oversized = true
		case current < 0, chunks[current].Oversized,
			a.chunkBytes > 0 && chunks[current].ByteSize+rec.BlockBytes > a.chunkBytes:
			open()
		}

		chunks[current].Body = append(chunks[current].Body, block...)
		chunks[current].ByteSize += rec.BlockBytes
		chunks[current].Files = append(chunks[current].Files, rec.Path)
		rec.ChunkIndex = chunks[current].Index
		kept = append(kept, rec)

		if oversized {
			a.logger.Debug("Emitted oversized chunk",
				zap.String("path", rec.Path),
				zap.Int("blockBytes", rec.BlockBytes),
				zap.Int("budget", a.chunkBytes))
			current = -1
		}
	}

	a.logger.Debug("Completed chunk assembly",
		zap.Int("files", len(kept)),
		zap.Int("chunks", len(chunks)))
	return chunks, kept, omissions
}

// renderBlock reads the file and renders its fenced block. Sizes are measured
// on the encoded block, so budgets bound the actual output bytes.
func (a *Assembler) renderBlock(rec *FileRecord) ([]byte, Verdict) {
	data, err := os.ReadFile(rec.AbsPath)
	if err != nil {
		a.logger.Warn("Failed to read file content",
			zap.String("path", rec.AbsPath), zap.Error(err))
		return nil, omitted(ReasonUnreadable)
	}
	// The size may have grown between classification and read.
	if a.maxFileBytes > 0 && int64(len(data)) > a.maxFileBytes {
		return nil, omitted(ReasonTooLarge)
	}

	// Best-effort decode: invalid UTF-8 sequences are replaced, never dropped.
	rec.Content = strings.ToValidUTF8(string(data), "�")

	var block bytes.Buffer
	fmt.Fprintf(&block, "%s\n%s\n```%s\n%s\n```\n\n", rec.Path, a.headerLine, rec.Language, rec.Content)
	return block.Bytes(), included()
}
