package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordsFor(paths ...string) []FileRecord {
	records := make([]FileRecord, 0, len(paths))
	for _, p := range paths {
		records = append(records, FileRecord{Path: p, Extension: extOf(p)})
	}
	return records
}

func rankedPaths(records []FileRecord) []string {
	paths := make([]string, 0, len(records))
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	return paths
}

func TestRankTiers(t *testing.T) {
	ranker := NewRanker(nil, nil)
	records := ranker.Rank(recordsFor(
		"assets/logo.svg", // other
		"config.yaml",     // config/markup
		"src/main.go",     // primary source
		"README.md",       // manifest tier
	))

	assert.Equal(t, []string{"README.md", "src/main.go", "config.yaml", "assets/logo.svg"},
		rankedPaths(records))
}

func TestRankManifestNames(t *testing.T) {
	ranker := NewRanker(nil, nil)

	for _, name := range []string{
		"README.md", "readme.txt", "go.mod", "package.json",
		"requirements.txt", "pyproject.toml", "Makefile", "Dockerfile",
		"docker-compose.yml",
	} {
		records := ranker.Rank(recordsFor("src/deep.go", name))
		require.Equal(t, name, records[0].Path, "expected %s in the manifest tier", name)
		assert.Equal(t, tierManifest, records[0].Tier)
	}
}

func TestRankIsStableWithinTiers(t *testing.T) {
	ranker := NewRanker(nil, nil)
	records := ranker.Rank(recordsFor(
		"zeta.go",
		"docs/notes.md",
		"alpha.go",
		"config.toml",
	))

	// Within each tier the walker's order survives: zeta.go stays ahead of
	// alpha.go, docs/notes.md ahead of config.toml.
	assert.Equal(t, []string{"zeta.go", "alpha.go", "docs/notes.md", "config.toml"},
		rankedPaths(records))
}

func TestRankCustomExtensionSets(t *testing.T) {
	ranker := NewRanker([]string{".lua"}, []string{".cfg"})
	records := ranker.Rank(recordsFor(
		"main.go", // not primary under the custom set
		"init.lua",
		"app.cfg",
	))

	assert.Equal(t, []string{"init.lua", "app.cfg", "main.go"}, rankedPaths(records))
	assert.Equal(t, tierOther, records[2].Tier)
}

func TestRankAssignsTierToEveryRecord(t *testing.T) {
	ranker := NewRanker(nil, nil)
	records := ranker.Rank(recordsFor("a.go", "b.bin", "README.md"))
	for _, r := range records {
		assert.GreaterOrEqual(t, r.Tier, tierManifest)
		assert.LessOrEqual(t, r.Tier, tierOther)
	}
}
