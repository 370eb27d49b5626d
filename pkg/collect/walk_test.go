package collect

import (
	"os"
	"path/filepath"
	"testing"

	"repopack/pkg/ignore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWalker(t *testing.T, root string, cfg *Config, patterns ...string) *Walker {
	t.Helper()
	rules := ignore.NewRuleSet(nil)
	rules.CompileLines(patterns...)
	return NewWalker(root, NewClassifier(cfg, rules, nil), nil)
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

func TestWalkAccountsForEveryPath(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "README.md", []byte("# readme\n"))
	writeTestFile(t, root, "image.png", []byte("png"))
	mustMkdir(t, filepath.Join(root, "src"))
	writeTestFile(t, filepath.Join(root, "src"), "main.go", []byte("package main\n"))

	files, omissions, err := newTestWalker(t, root, DefaultConfig()).Walk()
	require.NoError(t, err)

	var seen []string
	for _, f := range files {
		seen = append(seen, f.Path)
	}
	for _, om := range omissions {
		seen = append(seen, om.Path)
	}
	assert.ElementsMatch(t, []string{"README.md", "image.png", "src/main.go"}, seen)
}

func TestWalkDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "zeta.txt", []byte("z\n"))
	writeTestFile(t, root, "alpha.txt", []byte("a\n"))
	mustMkdir(t, filepath.Join(root, "mid"))
	writeTestFile(t, filepath.Join(root, "mid"), "beta.txt", []byte("b\n"))

	cfg := DefaultConfig()
	first, _, err := newTestWalker(t, root, cfg).Walk()
	require.NoError(t, err)
	second, _, err := newTestWalker(t, root, cfg).Walk()
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
	}

	// Lexicographic per level: alpha.txt, mid/beta.txt, zeta.txt.
	assert.Equal(t, []string{"alpha.txt", "mid/beta.txt", "zeta.txt"},
		[]string{first[0].Path, first[1].Path, first[2].Path})
}

func TestWalkPrunesExcludedDirectories(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "node_modules", "react"))
	writeTestFile(t, filepath.Join(root, "node_modules", "react"), "index.js", []byte("x\n"))
	writeTestFile(t, root, "app.js", []byte("app\n"))

	files, omissions, err := newTestWalker(t, root, DefaultConfig()).Walk()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "app.js", files[0].Path)

	// The pruned directory is recorded once; its contents never enumerated.
	require.Len(t, omissions, 1)
	assert.Equal(t, "node_modules/", omissions[0].Path)
	assert.Equal(t, ReasonExcludedPattern, omissions[0].Reason)
}

func TestWalkPrunesPatternMatchedDirectories(t *testing.T) {
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "secrets"))
	writeTestFile(t, filepath.Join(root, "secrets"), "key.txt", []byte("k\n"))
	writeTestFile(t, root, "main.txt", []byte("m\n"))

	files, omissions, err := newTestWalker(t, root, DefaultConfig(), "secrets/").Walk()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "main.txt", files[0].Path)
	require.Len(t, omissions, 1)
	assert.Equal(t, "secrets/", omissions[0].Path)
}

func TestWalkClassifiesFiles(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.py", []byte("print('ok')\n"))
	writeTestFile(t, root, "photo.jpg", []byte("jpg"))

	files, omissions, err := newTestWalker(t, root, DefaultConfig()).Walk()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "main.py", files[0].Path)
	assert.Equal(t, "python", files[0].Language)
	assert.Equal(t, ".py", files[0].Extension)
	assert.Equal(t, int64(12), files[0].SizeBytes)
	assert.Empty(t, files[0].Content, "content must stay lazy during the walk")

	require.Len(t, omissions, 1)
	assert.Equal(t, "photo.jpg", omissions[0].Path)
	assert.Equal(t, ReasonBinary, omissions[0].Reason)
}

func TestWalkSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "file.txt", []byte("f\n"))
	mustMkdir(t, filepath.Join(root, "sub"))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "sub", "loop")))

	files, omissions, err := newTestWalker(t, root, DefaultConfig()).Walk()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "file.txt", files[0].Path)

	require.Len(t, omissions, 1)
	assert.Equal(t, "sub/loop/", omissions[0].Path)
	assert.Equal(t, ReasonUnreadable, omissions[0].Reason)
}

func TestWalkBrokenSymlinkIsUnreadable(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling")))

	files, omissions, err := newTestWalker(t, root, DefaultConfig()).Walk()
	require.NoError(t, err)

	assert.Empty(t, files)
	require.Len(t, omissions, 1)
	assert.Equal(t, "dangling", omissions[0].Path)
	assert.Equal(t, ReasonUnreadable, omissions[0].Reason)
}
