package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/src-d/go-billy.v4"
	"gopkg.in/src-d/go-billy.v4/memfs"
	"gopkg.in/src-d/go-billy.v4/osfs"
	"gopkg.in/src-d/go-billy.v4/util"
)

// FS is a Store backed by a billy filesystem.
type FS struct {
	fs billy.Filesystem
}

var _ Store = (*FS)(nil)

// NewFS wraps an existing billy filesystem.
func NewFS(fs billy.Filesystem) *FS {
	return &FS{fs: fs}
}

// NewOS returns a Store over the host filesystem rooted at dir.
func NewOS(dir string) *FS {
	return NewFS(osfs.New(dir))
}

// NewMemory returns a Store held entirely in memory.
func NewMemory() *FS {
	return NewFS(memfs.New())
}

// Read returns the content of the file at path.
func (s *FS) Read(path string) ([]byte, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ReadText returns the content of the file at path as a UTF-8 string.
func (s *FS) ReadText(path string) (string, error) {
	return readText(s, path)
}

// Exists reports whether a regular file exists at path.
func (s *FS) Exists(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// MkdirAll creates path and any missing parents.
func (s *FS) MkdirAll(path string) error {
	if err := s.fs.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}

// Write stores data at path. Writes are atomic: data is written to a temp
// file in the destination directory and then renamed into place.
func (s *FS) Write(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write %s: mkdir: %w", path, err)
	}

	tmp, err := util.TempFile(s.fs, dir, ".tmp-")
	if err != nil {
		return fmt.Errorf("write %s: tmpfile: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreNotExist(s.fs.Remove(tmpName)))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return multierr.Append(fmt.Errorf("write %s: %w", path, err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: close: %w", path, err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write %s: rename: %w", path, err)
	}
	return nil
}

func ignoreNotExist(err error) error {
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return err
}
