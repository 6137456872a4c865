package git_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cenk/backoff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pak/internal/adapters/git"
	"go.trai.ch/pak/internal/core/domain"
	"go.trai.ch/pak/internal/core/ports"
)

// sourceRepo creates a repository with one commit and returns its path and root tree.
func sourceRepo(t *testing.T, files map[string]string) (string, domain.ContentHash) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	gitCmd(t, dir, "init", "--quiet")
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
		require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	}
	gitCmd(t, dir, "add", "--all")
	gitCmd(t, dir, "-c", "user.name=pak", "-c", "user.email=pak@example.com", "commit", "--quiet", "-m", "init")

	tree, err := domain.ParseContentHash(gitCmd(t, dir, "rev-parse", "HEAD^{tree}"))
	require.NoError(t, err)
	return dir, tree
}

func gitCmd(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, out)
	return strings.TrimSpace(string(out))
}

func noWait() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func TestGit_CloneAndCheckout(t *testing.T) {
	src, tree := sourceRepo(t, map[string]string{
		"Project.toml":     "name = \"Example\"\n",
		"src/Example.code": "module Example\n",
	})
	ctx := context.Background()
	g := git.New(0, git.WithBackOff(noWait))
	var _ ports.VCSBackend = g

	cache := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, g.Clone(ctx, src, cache))

	ok, err := g.HasObject(ctx, cache, tree)
	require.NoError(t, err)
	assert.True(t, ok)

	kind, err := g.ObjectType(ctx, cache, tree)
	require.NoError(t, err)
	assert.Equal(t, ports.ObjectTypeTree, kind)

	dest := filepath.Join(t.TempDir(), "Example", "slug")
	require.NoError(t, os.MkdirAll(dest, domain.DirPerm))
	require.NoError(t, g.Checkout(ctx, cache, tree, dest))

	data, err := os.ReadFile(filepath.Join(dest, "src", "Example.code"))
	require.NoError(t, err)
	assert.Equal(t, "module Example\n", string(data))

	// A second checkout over the same directory overwrites in place.
	require.NoError(t, g.Checkout(ctx, cache, tree, dest))
}

func TestGit_HasObject_Missing(t *testing.T) {
	src, _ := sourceRepo(t, map[string]string{"a.txt": "a"})
	ctx := context.Background()
	g := git.New(0, git.WithBackOff(noWait))

	cache := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, g.Clone(ctx, src, cache))

	ok, err := g.HasObject(ctx, cache, domain.MustParseContentHash("0123456789abcdef0123456789abcdef01234567"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGit_FetchFromSecondMirror(t *testing.T) {
	first, _ := sourceRepo(t, map[string]string{"a.txt": "one"})
	second, tree := sourceRepo(t, map[string]string{"b.txt": "two"})
	ctx := context.Background()
	g := git.New(0, git.WithBackOff(noWait))

	cache := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, g.Clone(ctx, first, cache))

	ok, err := g.HasObject(ctx, cache, tree)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Fetch(ctx, cache, second, domain.CacheRefspec))

	ok, err = g.HasObject(ctx, cache, tree)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGit_CloneFailure(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	g := git.New(1, git.WithBackOff(noWait))

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	err := g.Clone(context.Background(), missing, filepath.Join(t.TempDir(), "cache"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "git command failed")
}

func TestGit_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	g := git.New(0, git.WithBackOff(noWait))
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	for range 5 {
		_ = g.Clone(context.Background(), missing, filepath.Join(t.TempDir(), "cache"))
	}
	err := g.Clone(context.Background(), missing, filepath.Join(t.TempDir(), "cache"))
	assert.ErrorContains(t, err, "mirror temporarily unavailable")
}

func TestMirrorHost(t *testing.T) {
	tests := map[string]string{
		"https://example.com/Example.git": "example.com",
		"ssh://git@example.com:22/x.git":  "example.com:22",
		"git@example.com:org/Example.git": "example.com",
		"/srv/mirrors/Example.git":        "local",
		"file:///srv/mirrors/Example.git": "local",
	}
	for raw, want := range tests {
		assert.Equal(t, want, git.MirrorHost(raw), raw)
	}
}
