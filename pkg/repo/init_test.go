package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/revstore/pkg/object"
	"github.com/odvcencio/revstore/pkg/storage"
)

func memRepo(t *testing.T, opts ...Option) *Repo {
	t.Helper()
	r, err := Init(storage.NewMemory(), DefaultDir, opts...)
	require.NoError(t, err)
	return r
}

func writeBlob(t *testing.T, r *Repo, content string) object.Hash {
	t.Helper()
	h, err := r.Objects.Write(object.KindBlob, []byte(content))
	require.NoError(t, err)
	return h
}

func TestInitCreatesHead(t *testing.T) {
	r := memRepo(t)

	content, err := r.FS.ReadText(filepath.Join(".git", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", content)

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/master", head)

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)

	assert.NotNil(t, r.Objects)
	assert.NotNil(t, r.Revisions)
}

func TestInitExistingRepository(t *testing.T) {
	fs := storage.NewMemory()
	_, err := Init(fs, DefaultDir)
	require.NoError(t, err)

	_, err = Init(fs, DefaultDir)
	require.ErrorIs(t, err, ErrRepositoryExists)
}

func TestInitDirCreatesLayoutOnDisk(t *testing.T) {
	dir := t.TempDir()

	r, err := InitDir(dir, "")
	require.NoError(t, err)
	assert.Equal(t, dir, r.Worktree)
	assert.Equal(t, DefaultDir, r.Root)

	for _, d := range []string{"objects", filepath.Join("refs", "heads"), filepath.Join("refs", "tags")} {
		info, err := os.Stat(filepath.Join(dir, ".git", d))
		require.NoError(t, err, d)
		assert.True(t, info.IsDir(), d)
	}
	data, err := os.ReadFile(filepath.Join(dir, ".git", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(data))
}

func TestOpenFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := InitDir(dir, "")
	require.NoError(t, err)

	sub := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r, err := Open(sub, "")
	require.NoError(t, err)
	assert.Equal(t, dir, r.Worktree)

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/master", head)
}

func TestOpenCustomDirName(t *testing.T) {
	dir := t.TempDir()
	_, err := InitDir(dir, ".revstore")
	require.NoError(t, err)

	r, err := Open(dir, ".revstore")
	require.NoError(t, err)
	assert.Equal(t, ".revstore", r.Root)

	h := writeBlob(t, r, "hello\n")
	_, err = os.Stat(filepath.Join(dir, ".revstore", "objects", string(h[:2]), string(h[2:])))
	require.NoError(t, err)
}

func TestOpenNotARepository(t *testing.T) {
	_, err := Open(t.TempDir(), ".revstore-test-no-such-dir")
	require.ErrorIs(t, err, ErrNotARepository)
}

func TestInitOnKVBackend(t *testing.T) {
	kv, err := storage.OpenKV("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	r, err := Init(kv, DefaultDir)
	require.NoError(t, err)

	h := writeBlob(t, r, "hello\n")
	require.NoError(t, r.UpdateRef("refs/heads/master", h))

	got, err := r.ResolveRevision("HEAD")
	require.NoError(t, err)
	assert.Equal(t, h, got)

	_, err = Init(kv, DefaultDir)
	require.ErrorIs(t, err, ErrRepositoryExists)
}
