// File: pkg/collect/rank.go
package collect

import (
	"sort"
	"strings"
)

// Relevance tiers, lower means higher priority. The tier predicates are
// evaluated top to bottom; the first match wins.
const (
	tierManifest = iota // Canonical manifest and readme names.
	tierPrimary         // Primary source extensions.
	tierConfig          // Configuration and markup extensions.
	tierOther           // Everything else.
)

// manifestNames holds canonical top-of-output filenames, lower-cased.
var manifestNames = map[string]bool{
	"requirements.txt": true, "pyproject.toml": true, "poetry.lock": true,
	"package.json": true, "package-lock.json": true, "pnpm-lock.yaml": true, "yarn.lock": true,
	"go.mod": true, "go.sum": true, "cargo.toml": true, "gemfile": true,
	".env.example": true, ".tool-versions": true,
	"dockerfile": true, "docker-compose.yml": true, "compose.yml": true, ".dockerignore": true,
	"makefile": true,
}

// defaultPrimaryExts covers common general-purpose language sources.
var defaultPrimaryExts = []string{
	".py", ".ts", ".tsx", ".js", ".jsx", ".go", ".rs", ".java", ".kt",
	".c", ".h", ".cpp", ".hpp", ".cs", ".rb", ".php",
}

// defaultConfigExts covers configuration and markup formats.
var defaultConfigExts = []string{
	".json", ".yml", ".yaml", ".toml", ".ini", ".md", ".rst",
	".html", ".css", ".scss", ".sql", ".sh", ".xml",
}

// Ranker assigns relevance tiers so higher-priority files appear first in
// the output. The sort is stable: within a tier, records keep the walker's
// traversal order.
type Ranker struct {
	primaryExts map[string]bool
	configExts  map[string]bool
}

// NewRanker builds a Ranker; empty extension lists fall back to the defaults.
func NewRanker(primaryExts, configExts []string) *Ranker {
	if len(primaryExts) == 0 {
		primaryExts = defaultPrimaryExts
	}
	if len(configExts) == 0 {
		configExts = defaultConfigExts
	}
	return &Ranker{
		primaryExts: normalizeExts(primaryExts),
		configExts:  normalizeExts(configExts),
	}
}

// Rank assigns each record its tier and stably sorts the slice by tier.
func (r *Ranker) Rank(records []FileRecord) []FileRecord {
	for i := range records {
		records[i].Tier = r.tierFor(&records[i])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Tier < records[j].Tier
	})
	return records
}

func (r *Ranker) tierFor(rec *FileRecord) int {
	name := strings.ToLower(baseName(rec.Path))
	switch {
	case manifestNames[name] || strings.HasPrefix(name, "readme"):
		return tierManifest
	case r.primaryExts[rec.Extension]:
		return tierPrimary
	case r.configExts[rec.Extension]:
		return tierConfig
	}
	return tierOther
}
