// File: pkg/collect/types.go
package collect

// Reason classifies why a path was omitted from the collection.
type Reason string

// Omission reasons. Every path that is not collected carries exactly one.
const (
	ReasonBinary            Reason = "binary"
	ReasonTooLarge          Reason = "too_large"
	ReasonExcludedPattern   Reason = "excluded_pattern"
	ReasonExcludedExtension Reason = "excluded_extension"
	ReasonUnreadable        Reason = "unreadable"
)

// Label returns the human-readable form used in the omission list.
func (r Reason) Label() string {
	switch r {
	case ReasonBinary:
		return "binary content"
	case ReasonTooLarge:
		return "exceeds size limit"
	case ReasonExcludedPattern:
		return "matches exclusion pattern"
	case ReasonExcludedExtension:
		return "excluded extension"
	case ReasonUnreadable:
		return "unreadable"
	}
	return string(r)
}

// FileRecord represents one included file flowing through the pipeline.
// Content is empty until loadContents reads it, and is only held until the
// record has been serialized into a chunk.
type FileRecord struct {
	Path       string // Relative to the root, slash-normalized.
	AbsPath    string // Absolute path used for reading.
	SizeBytes  int64  // Size reported at classification time.
	Extension  string // Lower-cased extension, including the dot.
	Language   string // Fence label assigned by the language tagger.
	Tier       int    // Relevance tier, lower means higher priority.
	Content    string // File content, loaded lazily.
	ChunkIndex int    // 1-based chunk assignment, set by the assembler.
	BlockBytes int    // UTF-8 byte length of the rendered block.
}

// OmissionRecord represents one path deliberately or necessarily excluded.
// Immutable once created; collected in traversal order.
type OmissionRecord struct {
	Path   string
	Reason Reason
	Detail string // Optional annotation, e.g. a humanized size for too_large.
}

// Chunk is one output document: a budget-bounded concatenation of blocks.
type Chunk struct {
	Index     int      // 1-based.
	ByteSize  int      // Total UTF-8 byte length of the blocks in Body.
	Files     []string // Relative paths of the blocks, in block order.
	Body      []byte   // Rendered blocks, ready for the sink.
	Oversized bool     // True when a single block alone exceeded the budget.
}

// Summary reports what a completed run produced.
type Summary struct {
	IncludedFiles int
	OmittedFiles  int
	Chunks        int
	BlockBytes    int64
	ChunkNames    []string
}
