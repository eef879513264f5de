package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// KV is a Store backed by a badger database. Each path is one key; there
// are no directories, so MkdirAll is a no-op.
type KV struct {
	db     *badger.DB
	prefix string
}

var _ Store = (*KV)(nil)

// OpenKV opens (or creates) a badger database in dir. An empty dir opens an
// in-memory database.
func OpenKV(dir string) (*KV, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open kv store: %w", err)
	}
	return NewKV(db, "file"), nil
}

// NewKV wraps an open database. Keys are stored as "<prefix>:<path>".
func NewKV(db *badger.DB, prefix string) *KV {
	return &KV{db: db, prefix: prefix}
}

// Close closes the underlying database.
func (s *KV) Close() error {
	return s.db.Close()
}

func (s *KV) makeKey(path string) []byte {
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == "." {
		clean = ""
	}
	return []byte(fmt.Sprintf("%s:%s", s.prefix, clean))
}

// Read returns the value stored for path.
func (s *KV) Read(path string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.makeKey(path))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadText returns the value stored for path as a UTF-8 string.
func (s *KV) ReadText(path string) (string, error) {
	return readText(s, path)
}

// Exists reports whether a value is stored for path.
func (s *KV) Exists(path string) bool {
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(s.makeKey(path))
		return err
	})
	return err == nil
}

// Write stores data for path in a single transaction.
func (s *KV) Write(path string, data []byte) error {
	key := s.makeKey(path)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, append([]byte(nil), data...))
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MkdirAll is a no-op: keys carry their full path.
func (s *KV) MkdirAll(string) error {
	return nil
}
