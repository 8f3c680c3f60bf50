package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppkg "github.com/kk-code-lab/fileripper/internal/app"
	"github.com/kk-code-lab/fileripper/internal/search"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{
		"FILERIPPER_ROOT", "FILERIPPER_HIDE_HIDDEN", "FILERIPPER_MAX_RATIO",
		"FILERIPPER_LIMIT", "FILERIPPER_WORKERS", "FILERIPPER_LOG_LEVEL", "FILERIPPER_DEBUG",
	} {
		t.Setenv(key, "")
	}
	return filepath.Join(t.TempDir(), "config.yaml")
}

func makeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSearchPrintsRankedResults(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "notes.txt", "docs/notesfinal.txt", "report.pdf")

	out, err := execute(t, "--config", cfgPath, "--root", root, "notes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "0  "+filepath.Join(root, "notes.txt"), lines[0])
	assert.Equal(t, "5  "+filepath.Join(root, "docs", "notesfinal.txt"), lines[1])
	assert.Equal(t, "6  "+filepath.Join(root, "report.pdf"), lines[2])
}

func TestQueryWordsAreNotSubcommands(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "conf.yaml", "notes.txt")

	out, err := execute(t, "--config", cfgPath, "-r", root, "conf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0  "+filepath.Join(root, "conf.yaml")), out)
	assert.Contains(t, out, filepath.Join(root, "notes.txt"))
}

func TestSearchLimitAndRatio(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "notes.txt", "notesfinal.txt", "report.pdf")

	out, err := execute(t, "--config", cfgPath, "-r", root, "-n", "1", "notes")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	out, err = execute(t, "--config", cfgPath, "-r", root, "--max-ratio", "0.5", "notes")
	require.NoError(t, err)
	assert.NotContains(t, out, "report.pdf")
	assert.Contains(t, out, "notesfinal.txt")
}

func TestSearchJoinsQueryWords(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "my notes.txt", "other.txt")

	out, err := execute(t, "--config", cfgPath, "-r", root, "my", "notes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0  "+filepath.Join(root, "my notes.txt")), out)
}

func TestSearchPadsScores(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "a", "abcdefghijklmnop")

	out, err := execute(t, "--config", cfgPath, "-r", root, "--compare", "name", "a")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], " 0  "), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "15  "), lines[1])
}

func TestSearchInvalidRoot(t *testing.T) {
	cfgPath := isolateEnv(t)

	_, err := execute(t, "--config", cfgPath, "-r", filepath.Join(t.TempDir(), "missing"), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, search.ErrInvalidPath)
	assert.Equal(t, 1, ExitCode(err))
}

func TestInvalidFlagValues(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()

	_, err := execute(t, "--config", cfgPath, "-r", root, "--compare", "fuzzy", "x")
	assert.ErrorContains(t, err, "search.compare")

	_, err = execute(t, "--config", cfgPath, "-r", root, "--max-ratio", "2", "x")
	assert.ErrorContains(t, err, "search.max_ratio")
}

func TestConfigFileAndFlagsPrecedence(t *testing.T) {
	isolateEnv(t)
	root := t.TempDir()
	makeFiles(t, root, "a.txt", "b.txt", "c.txt")

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("search:\n  limit: 2\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "-r", root, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "\n"), "config limit applies")

	out, err = execute(t, "--config", cfgPath, "-r", root, "-n", "0", "a")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "\n"), "flag overrides config")
}

func TestNoQueryOpensBrowser(t *testing.T) {
	cfgPath := isolateEnv(t)
	root := t.TempDir()

	var got apppkg.Options
	prev := runInteractive
	runInteractive = func(opts apppkg.Options) (string, error) {
		got = opts
		return filepath.Join(root, "picked.txt"), nil
	}
	t.Cleanup(func() { runInteractive = prev })

	out, err := execute(t, "--config", cfgPath, "-r", root, "--hidden")
	require.NoError(t, err)
	assert.Equal(t, root, got.Root)
	assert.True(t, got.HideHidden)
	assert.NotNil(t, got.Searcher)
	assert.Equal(t, filepath.Join(root, "picked.txt")+"\n", out)

	got = apppkg.Options{}
	_, err = execute(t, "--config", cfgPath, "-r", root, "-I", "seed")
	require.NoError(t, err)
	assert.Equal(t, root, got.Root, "--interactive forces the browser")
	assert.Equal(t, "seed", got.Query)
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	cfgPath := isolateEnv(t)
	t.Setenv("FILERIPPER_LIMIT", "9")

	out, err := execute(t, "config", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# "+cfgPath)
	assert.Contains(t, out, "limit: 9")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(search.ErrDirectoryUnreadable))
}
