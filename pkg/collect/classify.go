// File: pkg/collect/classify.go
package collect

import (
	"strings"

	"repopack/pkg/ignore"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Built-in excludes, disabled by Config.NoDefaultExcludes.
var (
	defaultIgnoredDirs = map[string]bool{
		".git": true, ".svn": true, ".hg": true, ".idea": true, ".vscode": true,
		"node_modules": true, "dist": true, "build": true, "out": true, "target": true,
		"__pycache__": true, ".mypy_cache": true, ".pytest_cache": true, ".tox": true,
		".venv": true, "venv": true, ".next": true, ".turbo": true, ".parcel-cache": true,
		"coverage": true, ".gradle": true, ".DS_Store": true,
	}

	defaultExcludedNames = map[string]bool{
		".env": true, ".env.local": true, ".env.production": true, ".env.development": true,
	}

	defaultExcludedExts = map[string]bool{
		".log": true, ".lock": true,
	}
)

// Verdict is the outcome of classifying one path.
type Verdict struct {
	Included bool
	Reason   Reason
	Detail   string
}

func included() Verdict             { return Verdict{Included: true} }
func omitted(reason Reason) Verdict { return Verdict{Reason: reason} }

func omittedDetail(reason Reason, detail string) Verdict {
	return Verdict{Reason: reason, Detail: detail}
}

// Classifier decides, for a single path, whether it is textual and includable,
// and if not, why. All failures become verdicts; Classify never returns an error.
type Classifier struct {
	rules        *ignore.RuleSet
	includeExt   map[string]bool
	denyExt      map[string]bool
	ignoredDirs  map[string]bool
	useDefaults  bool
	maxFileBytes int64
	logger       *zap.Logger
}

// NewClassifier builds a Classifier from the run configuration and the
// compiled exclusion rules.
func NewClassifier(cfg *Config, rules *ignore.RuleSet, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}

	ignoredDirs := make(map[string]bool)
	if !cfg.NoDefaultExcludes {
		for d := range defaultIgnoredDirs {
			ignoredDirs[d] = true
		}
	}
	for _, d := range cfg.IgnoredDirs {
		if d = strings.TrimSpace(d); d != "" {
			ignoredDirs[d] = true
		}
	}

	return &Classifier{
		rules:        rules,
		includeExt:   normalizeExts(cfg.IncludeExt),
		denyExt:      normalizeExts(cfg.DenyExt),
		ignoredDirs:  ignoredDirs,
		useDefaults:  !cfg.NoDefaultExcludes,
		maxFileBytes: cfg.MaxFileBytes,
		logger:       logger,
	}
}

// ShouldPruneDir reports whether a directory is excluded entirely, so the
// walker can skip descending into it.
func (c *Classifier) ShouldPruneDir(name, relPath string) bool {
	if c.ignoredDirs[name] {
		return true
	}
	return c.rules.Matches(relPath + "/")
}

// Classify applies the inclusion checks in order: exclusion pattern (no I/O),
// extension rules, size ceiling, binary extension, then the bounded-peek
// binary heuristic. relPath is slash-normalized and relative to the root.
func (c *Classifier) Classify(absPath, relPath string, sizeBytes int64) Verdict {
	if c.rules.Matches(relPath) {
		return omitted(ReasonExcludedPattern)
	}

	name := strings.ToLower(baseName(relPath))
	ext := strings.ToLower(extOf(relPath))

	if c.useDefaults && (defaultExcludedNames[name] || defaultExcludedExts[ext]) {
		return omitted(ReasonExcludedExtension)
	}
	if c.denyExt[ext] {
		return omitted(ReasonExcludedExtension)
	}
	if len(c.includeExt) > 0 && !c.includeExt[ext] {
		return omitted(ReasonExcludedExtension)
	}

	if c.maxFileBytes > 0 && sizeBytes > c.maxFileBytes {
		return omittedDetail(ReasonTooLarge, humanize.IBytes(uint64(sizeBytes)))
	}

	// An explicitly allow-listed extension bypasses the binary checks.
	if c.includeExt[ext] {
		return included()
	}

	if hasBinaryExtension(relPath) {
		return omitted(ReasonBinary)
	}

	isBinary, err := peekIsBinary(absPath)
	if err != nil {
		c.logger.Warn("Failed to read file prefix for binary check",
			zap.String("path", absPath), zap.Error(err))
		return omitted(ReasonUnreadable)
	}
	if isBinary {
		return omitted(ReasonBinary)
	}

	return included()
}

// baseName returns the last slash-separated element of a relative path.
func baseName(relPath string) string {
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		return relPath[i+1:]
	}
	return relPath
}

// extOf returns the extension of the last path element, including the dot.
func extOf(relPath string) string {
	name := baseName(relPath)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}
