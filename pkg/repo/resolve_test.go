package repo

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/odvcencio/revstore/pkg/object"
	"github.com/odvcencio/revstore/pkg/revision"
)

func writeFile(t *testing.T, r *Repo, content string, elems ...string) {
	t.Helper()
	require.NoError(t, r.FS.Write(filepath.Join(append([]string{r.Root}, elems...)...), []byte(content)))
}

func TestResolveRevision(t *testing.T) {
	r := memRepo(t)
	master := writeBlob(t, r, "hello\n")
	feat := writeBlob(t, r, "feature\n")
	release := writeBlob(t, r, "release\n")
	require.NoError(t, r.UpdateRef("refs/heads/master", master))
	require.NoError(t, r.CreateBranch("feat/foo", feat, false))
	require.NoError(t, r.CreateTag("v0.1.0", release, false))

	tests := []struct {
		rev  string
		want object.Hash
	}{
		{rev: "HEAD", want: master},
		{rev: "master", want: master},
		{rev: "feat/foo", want: feat},
		{rev: "v0.1.0", want: release},
		{rev: string(feat), want: feat},
	}
	for _, tc := range tests {
		t.Run(tc.rev, func(t *testing.T) {
			got, err := r.ResolveRevision(tc.rev)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveRevisionErrors(t *testing.T) {
	r := memRepo(t)
	require.NoError(t, r.UpdateRef("refs/heads/master", writeBlob(t, r, "hello\n")))

	tests := []struct {
		rev  string
		want error
	}{
		{rev: "HEAD^", want: ErrModifierUnsupported},
		{rev: "master~3", want: ErrModifierUnsupported},
		{rev: "HEAD@{5}", want: ErrModifierUnsupported},
		{rev: "^master", want: revision.ErrEmptyBase},
		{rev: "nonexistent", want: ErrRevisionNotFound},
		{rev: "0123456789012345678901234567890123456789", want: ErrRevisionNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.rev, func(t *testing.T) {
			_, err := r.ResolveRevision(tc.rev)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestResolveRevisionUnbornHead(t *testing.T) {
	r := memRepo(t)

	_, err := r.ResolveRevision("HEAD")
	require.ErrorIs(t, err, ErrRevisionNotFound)
	assert.Contains(t, err.Error(), "refs/heads/master")
}

func TestResolveRevisionAmbiguous(t *testing.T) {
	r := memRepo(t)
	branch := writeBlob(t, r, "branch\n")
	tag := writeBlob(t, r, "tag\n")
	require.NoError(t, r.CreateBranch("dup", branch, false))
	require.NoError(t, r.CreateTag("dup", tag, false))

	h, err := r.ResolveRevision("dup")
	require.ErrorIs(t, err, ErrAmbiguousRevision)
	assert.Equal(t, tag, h)

	var amb *AmbiguousRevisionError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, "dup", amb.Name)
	assert.Equal(t, tag, amb.Hash)
	assert.Equal(t, revision.CandidateTag, amb.From)

	preferBranch := New(r.FS, r.Root, WithPrecedence(revision.PreferBranch))
	h, err = preferBranch.ResolveRevision("dup")
	require.ErrorIs(t, err, ErrAmbiguousRevision)
	assert.Equal(t, branch, h)
}

func TestResolveRevisionFollowsSymbolicChain(t *testing.T) {
	r := memRepo(t)
	h := writeBlob(t, r, "hello\n")
	require.NoError(t, r.UpdateRef("refs/heads/master", h))
	writeFile(t, r, "ref: refs/heads/master\n", "refs", "heads", "alias")
	require.NoError(t, r.SetHead("alias"))

	got, err := r.ResolveRevision("HEAD")
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got, err = r.ResolveRevision("alias")
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestResolveRevisionSymbolicLoop(t *testing.T) {
	r := memRepo(t)
	writeFile(t, r, "ref: refs/heads/b\n", "refs", "heads", "a")
	writeFile(t, r, "ref: refs/heads/a\n", "refs", "heads", "b")
	require.NoError(t, r.SetHead("a"))

	_, err := r.ResolveRevision("HEAD")
	require.ErrorIs(t, err, ErrSymbolicRefLoop)
}

func TestResolveRevisionRejectsEscapingSymref(t *testing.T) {
	r := memRepo(t)
	writeFile(t, r, "ref: ../../etc/passwd\n", "HEAD")

	_, err := r.ResolveRevision("HEAD")
	require.ErrorIs(t, err, ErrInvalidRefName)
}

func TestResolveRevisionTrimsRefContent(t *testing.T) {
	r := memRepo(t)
	h := writeBlob(t, r, "hello\n")
	writeFile(t, r, "  "+string(h)+"\n\n", "refs", "heads", "master")

	got, err := r.ResolveRevision("master")
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestResolveRevisionMalformedRefContent(t *testing.T) {
	r := memRepo(t)
	writeFile(t, r, "not a hash\n", "refs", "heads", "short")
	writeFile(t, r, "ZZ24e23993be34f77ebdbcb4924179eb44530983\n", "refs", "heads", "upper")

	_, err := r.ResolveRevision("short")
	require.ErrorIs(t, err, object.ErrInvalidHashLength)

	_, err = r.ResolveRevision("upper")
	require.ErrorIs(t, err, object.ErrInvalidHash)
}

func TestResolveRevisionDetachedHead(t *testing.T) {
	r := memRepo(t)
	h := writeBlob(t, r, "hello\n")
	require.NoError(t, r.DetachHead(h))

	head, err := r.Head()
	require.NoError(t, err)
	assert.Equal(t, string(h), head)

	branch, err := r.CurrentBranch()
	require.NoError(t, err)
	assert.Empty(t, branch)

	got, err := r.ResolveRevision("HEAD")
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestReadObject(t *testing.T) {
	r := memRepo(t)
	h := writeBlob(t, r, "hello\n")
	require.NoError(t, r.UpdateRef("refs/heads/master", h))

	obj, err := r.ReadObject("HEAD")
	require.NoError(t, err)
	assert.Equal(t, object.KindBlob, obj.Kind)
	assert.Equal(t, int64(6), obj.Size)
	assert.Equal(t, []byte("hello\n"), obj.Payload)

	_, err = r.ReadObject("nonexistent")
	require.ErrorIs(t, err, ErrRevisionNotFound)
}

func TestReadObjectLogsAmbiguity(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := memRepo(t, WithLogger(zap.New(core)))
	branch := writeBlob(t, r, "branch\n")
	tag := writeBlob(t, r, "tag\n")
	require.NoError(t, r.CreateBranch("dup", branch, false))
	require.NoError(t, r.CreateTag("dup", tag, false))

	obj, err := r.ReadObject("dup")
	require.NoError(t, err)
	assert.Equal(t, []byte("tag\n"), obj.Payload)

	entries := logs.FilterMessage("ambiguous revision").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "dup", entries[0].ContextMap()["name"])
}
