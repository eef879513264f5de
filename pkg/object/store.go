package object

import (
	"fmt"
	"path/filepath"

	"github.com/odvcencio/revstore/pkg/storage"
)

// Store is a content-addressed loose-object store with a 2-character
// fan-out layout: <root>/objects/ab/cdef0123...
//
// Store holds no state besides its backend and root; objects are decoded
// fresh on every read.
type Store struct {
	fs   storage.Store
	root string
}

// NewStore creates a Store for the repository rooted at root within fs.
func NewStore(fs storage.Store, root string) *Store {
	return &Store{fs: fs, root: root}
}

// Path returns the storage path for a given hash.
func (s *Store) Path(h Hash) string {
	return filepath.Join(s.root, h.Path())
}

// Has reports whether the store contains an object with the given hash.
// Malformed hashes are never present.
func (s *Store) Has(h Hash) bool {
	if _, err := ParseHash(string(h)); err != nil {
		return false
	}
	return s.fs.Exists(s.Path(h))
}

// Write stores an object and returns its content hash. Writing an object
// that already exists is a no-op.
func (s *Store) Write(kind Kind, payload []byte) (Hash, error) {
	if !kind.valid() {
		return "", fmt.Errorf("object write: unknown kind %s", kind)
	}
	h := HashObject(kind, payload)

	// Fast path: already exists.
	if s.Has(h) {
		return h, nil
	}

	compressed, err := EncodeObject(kind, payload)
	if err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}
	if err := s.fs.Write(s.Path(h), compressed); err != nil {
		return "", fmt.Errorf("object write %s: %w", h, err)
	}
	return h, nil
}

// Read retrieves and decodes an object by hash. The hash is validated
// before any I/O is attempted.
func (s *Store) Read(h Hash) (*Object, error) {
	if _, err := ParseHash(string(h)); err != nil {
		return nil, fmt.Errorf("object read: %w", err)
	}
	raw, err := s.fs.Read(s.Path(h))
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	obj, err := DecodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("object read %s: %w", h, err)
	}
	return obj, nil
}

// Stat returns only the header of an object.
func (s *Store) Stat(h Hash) (Header, error) {
	obj, err := s.Read(h)
	if err != nil {
		return Header{}, err
	}
	return obj.Header, nil
}

// ReadKind reads an object and checks that it has the wanted kind.
func (s *Store) ReadKind(h Hash, want Kind) ([]byte, error) {
	obj, err := s.Read(h)
	if err != nil {
		return nil, err
	}
	if obj.Kind != want {
		return nil, fmt.Errorf("object %s: %w: got %s, want %s", h, ErrKindMismatch, obj.Kind, want)
	}
	return obj.Payload, nil
}
