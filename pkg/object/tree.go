package object

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/src-d/go-git.v4/plumbing"
	"gopkg.in/src-d/go-git.v4/plumbing/filemode"
	gitobject "gopkg.in/src-d/go-git.v4/plumbing/object"
)

// TreeEntry is one entry of a tree payload.
type TreeEntry struct {
	Mode filemode.FileMode
	Name string
	Hash Hash
}

// Kind returns the kind of object the entry points at.
func (e TreeEntry) Kind() Kind {
	switch e.Mode {
	case filemode.Dir:
		return KindTree
	case filemode.Submodule:
		return KindCommit
	default:
		return KindBlob
	}
}

// DecodeTree parses a tree payload: a sequence of
// "<octal mode> <name>\0<20 raw hash bytes>" records.
func DecodeTree(payload []byte) ([]TreeEntry, error) {
	obj := &plumbing.MemoryObject{}
	obj.SetType(plumbing.TreeObject)
	if _, err := obj.Write(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}

	var tree gitobject.Tree
	if err := tree.Decode(obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, TreeEntry{Mode: e.Mode, Name: e.Name, Hash: Hash(e.Hash.String())})
	}
	return entries, nil
}

// EncodeTree builds a tree payload. Entries are written in git order, where
// a directory sorts as if its name ended in '/'.
func EncodeTree(entries []TreeEntry) ([]byte, error) {
	sorted := make([]gitobject.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if _, err := ParseHash(string(e.Hash)); err != nil {
			return nil, fmt.Errorf("tree entry %q: %w", e.Name, err)
		}
		sorted = append(sorted, gitobject.TreeEntry{Name: e.Name, Mode: e.Mode, Hash: plumbing.NewHash(string(e.Hash))})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return treeSortKey(sorted[i]) < treeSortKey(sorted[j])
	})

	obj := &plumbing.MemoryObject{}
	tree := gitobject.Tree{Entries: sorted}
	if err := tree.Encode(obj); err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	r, err := obj.Reader()
	if err != nil {
		return nil, fmt.Errorf("encode tree: %w", err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func treeSortKey(e gitobject.TreeEntry) string {
	if e.Mode == filemode.Dir {
		return e.Name + "/"
	}
	return e.Name
}
