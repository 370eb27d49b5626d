package collect

import (
	"os"
	"path/filepath"
	"testing"

	"repopack/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, cfg *Config, patterns ...string) *Classifier {
	t.Helper()
	rules := ignore.NewRuleSet(nil)
	rules.CompileLines(patterns...)
	return NewClassifier(cfg, rules, nil)
}

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestClassifyExcludedPatternWinsBeforeIO(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig(), "*.env")

	// The path does not exist on disk; the pattern check must not need it.
	v := c.Classify("/nonexistent/secrets.env", "secrets.env", 10)
	assert.False(t, v.Included)
	assert.Equal(t, ReasonExcludedPattern, v.Reason)
}

func TestClassifyDefaultExcludedNamesAndExtensions(t *testing.T) {
	dir := t.TempDir()
	c := newTestClassifier(t, DefaultConfig())

	envPath := writeTestFile(t, dir, ".env", []byte("KEY=value\n"))
	v := c.Classify(envPath, ".env", 10)
	assert.Equal(t, ReasonExcludedExtension, v.Reason)

	logPath := writeTestFile(t, dir, "server.log", []byte("ok\n"))
	v = c.Classify(logPath, "server.log", 3)
	assert.Equal(t, ReasonExcludedExtension, v.Reason)
}

func TestClassifyDefaultsCanBeDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.NoDefaultExcludes = true
	c := newTestClassifier(t, cfg)

	logPath := writeTestFile(t, dir, "server.log", []byte("plain text\n"))
	v := c.Classify(logPath, "server.log", 11)
	assert.True(t, v.Included)
}

func TestClassifyAllowListIsExclusive(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.IncludeExt = []string{".md"}
	c := newTestClassifier(t, cfg)

	goPath := writeTestFile(t, dir, "main.go", []byte("package main\n"))
	v := c.Classify(goPath, "main.go", 13)
	assert.Equal(t, ReasonExcludedExtension, v.Reason)

	mdPath := writeTestFile(t, dir, "notes.md", []byte("# notes\n"))
	v = c.Classify(mdPath, "notes.md", 8)
	assert.True(t, v.Included)
}

func TestClassifyAllowListBypassesBinaryChecks(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.IncludeExt = []string{".snap"}
	c := newTestClassifier(t, cfg)

	// .snap is on the binary extension list, but the allow-list forces it in.
	path := writeTestFile(t, dir, "view.snap", []byte{0x00, 0x01, 0x02})
	v := c.Classify(path, "view.snap", 3)
	assert.True(t, v.Included)
}

func TestClassifyDenyList(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DenyExt = []string{"md"} // No leading dot; normalization adds it.
	c := newTestClassifier(t, cfg)

	path := writeTestFile(t, dir, "README.md", []byte("# hi\n"))
	v := c.Classify(path, "README.md", 5)
	assert.Equal(t, ReasonExcludedExtension, v.Reason)
}

func TestClassifyTooLargeWithoutReadingContent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFileBytes = 100
	c := newTestClassifier(t, cfg)

	// Size alone decides; the file never has to exist.
	v := c.Classify("/nonexistent/huge.txt", "huge.txt", 101)
	assert.Equal(t, ReasonTooLarge, v.Reason)
	assert.NotEmpty(t, v.Detail)
}

func TestClassifyBinaryExtension(t *testing.T) {
	dir := t.TempDir()
	c := newTestClassifier(t, DefaultConfig())

	path := writeTestFile(t, dir, "image.png", []byte("not really a png"))
	v := c.Classify(path, "image.png", 16)
	assert.Equal(t, ReasonBinary, v.Reason)
}

func TestClassifyBinaryHeuristic(t *testing.T) {
	dir := t.TempDir()
	c := newTestClassifier(t, DefaultConfig())

	nulPath := writeTestFile(t, dir, "blob.dat", []byte{'a', 0x00, 'b'})
	v := c.Classify(nulPath, "blob.dat", 3)
	assert.Equal(t, ReasonBinary, v.Reason)

	ctrlPath := writeTestFile(t, dir, "ctrl.dat", []byte{0x01, 0x02, 0x03, 'a'})
	v = c.Classify(ctrlPath, "ctrl.dat", 4)
	assert.Equal(t, ReasonBinary, v.Reason)

	textPath := writeTestFile(t, dir, "fine.dat", []byte("tabs\tand\nnewlines are fine\n"))
	v = c.Classify(textPath, "fine.dat", 27)
	assert.True(t, v.Included)
}

func TestClassifyUnreadableBecomesVerdict(t *testing.T) {
	c := newTestClassifier(t, DefaultConfig())

	v := c.Classify("/nonexistent/ghost.txt", "ghost.txt", 5)
	assert.False(t, v.Included)
	assert.Equal(t, ReasonUnreadable, v.Reason)
}

func TestShouldPruneDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoredDirs = []string{"generated"}
	c := newTestClassifier(t, cfg, "private/")

	assert.True(t, c.ShouldPruneDir("node_modules", "web/node_modules"))
	assert.True(t, c.ShouldPruneDir("generated", "api/generated"))
	assert.True(t, c.ShouldPruneDir("private", "private"))
	assert.False(t, c.ShouldPruneDir("src", "src"))
}

func TestIsProbablyBinary(t *testing.T) {
	assert.False(t, isProbablyBinary(nil))
	assert.False(t, isProbablyBinary([]byte("plain text\n")))
	assert.True(t, isProbablyBinary([]byte{'x', 0x00}))
	// Exactly at the 30% threshold is still text; above it is binary.
	assert.False(t, isProbablyBinary([]byte{0x01, 0x01, 0x01, 'a', 'b', 'c', 'd', 'e', 'f', 'g'}))
	assert.True(t, isProbablyBinary([]byte{0x01, 0x01, 0x01, 0x01, 'a', 'b', 'c', 'd', 'e', 'f'}))
}
