// Package storage defines the read/exists/write capability that the object
// codec and the revision resolver are built on, together with the backends
// that provide it.
//
// Paths are slash- or OS-separated strings relative to the backend's root.
// Backends must guarantee whole-file reads: a concurrent write is either
// fully visible or not visible at all.
package storage

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when a path has no stored content.
	ErrNotFound = errors.New("not found")
	// ErrEncoding is returned by ReadText when the content is not valid UTF-8.
	ErrEncoding = errors.New("content is not valid utf-8")
)

// Reader is the read side of the storage capability.
type Reader interface {
	// Read returns the full content stored at path. A missing path yields
	// an error wrapping ErrNotFound.
	Read(path string) ([]byte, error)
	// ReadText is Read followed by a UTF-8 check.
	ReadText(path string) (string, error)
	// Exists reports whether path holds stored content.
	Exists(path string) bool
}

// Writer is the write side of the storage capability.
type Writer interface {
	// Write replaces the content at path atomically, creating parent
	// directories as needed.
	Write(path string, data []byte) error
	// MkdirAll creates a directory and its parents. Backends without a
	// directory notion treat it as a no-op.
	MkdirAll(path string) error
}

// Store is a backend that can both read and write.
type Store interface {
	Reader
	Writer
}

// readText implements ReadText on top of a backend's Read.
func readText(r Reader, path string) (string, error) {
	data, err := r.Read(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("read %s: %w", path, ErrEncoding)
	}
	return string(data), nil
}
