package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/src-d/go-git.v4/plumbing/filemode"
)

func TestTreeRoundTrip(t *testing.T) {
	entries := []TreeEntry{
		{Mode: filemode.Regular, Name: "b.txt", Hash: helloBlobHash},
		{Mode: filemode.Dir, Name: "a", Hash: emptyTreeHash},
		{Mode: filemode.Executable, Name: "a.txt", Hash: emptyBlobHash},
	}

	payload, err := EncodeTree(entries)
	require.NoError(t, err)

	got, err := DecodeTree(payload)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"a.txt", "a", "b.txt"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, TreeEntry{Mode: filemode.Dir, Name: "a", Hash: emptyTreeHash}, got[1])
	assert.Equal(t, KindTree, got[1].Kind())
	assert.Equal(t, KindBlob, got[0].Kind())
}

func TestTreeEncodingIsGitFormat(t *testing.T) {
	payload, err := EncodeTree([]TreeEntry{{Mode: filemode.Regular, Name: "hello", Hash: helloBlobHash}})
	require.NoError(t, err)

	prefix := []byte("100644 hello\x00")
	require.Len(t, payload, len(prefix)+20)
	assert.Equal(t, prefix, payload[:len(prefix)])
	assert.Equal(t, byte(0xce), payload[len(prefix)])
}

func TestEmptyTree(t *testing.T) {
	payload, err := EncodeTree(nil)
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.Equal(t, emptyTreeHash, HashObject(KindTree, payload))

	entries, err := DecodeTree(payload)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTreeStoredAndRead(t *testing.T) {
	store, _ := tempStore(t)
	payload, err := EncodeTree([]TreeEntry{{Mode: filemode.Regular, Name: "hello", Hash: helloBlobHash}})
	require.NoError(t, err)

	h, err := store.Write(KindTree, payload)
	require.NoError(t, err)

	data, err := store.ReadKind(h, KindTree)
	require.NoError(t, err)
	entries, err := DecodeTree(data)
	require.NoError(t, err)
	assert.Equal(t, []TreeEntry{{Mode: filemode.Regular, Name: "hello", Hash: helloBlobHash}}, entries)
}

func TestDecodeTreeMalformed(t *testing.T) {
	tests := map[string][]byte{
		"bad mode":       append([]byte("zzz name\x00"), make([]byte, 20)...),
		"truncated hash": []byte("100644 a\x00\x01\x02"),
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeTree(payload)
			require.ErrorIs(t, err, ErrMalformedTree)
		})
	}
}

func TestEncodeTreeRejectsBadHash(t *testing.T) {
	_, err := EncodeTree([]TreeEntry{{Mode: filemode.Regular, Name: "x", Hash: "abc"}})
	require.ErrorIs(t, err, ErrInvalidHashLength)
}
