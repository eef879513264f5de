package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/odvcencio/revstore/pkg/revision"
	"github.com/odvcencio/revstore/pkg/storage"
)

const (
	// DefaultDir is the repository directory name Open looks for.
	DefaultDir = ".git"
	// DefaultBranch is the branch a fresh HEAD points at.
	DefaultBranch = "master"
)

var (
	ErrRepositoryExists = errors.New("repository already exists")
	ErrNotARepository   = errors.New("not a repository")
)

// Init creates a new repository rooted at root within fs: objects/,
// refs/heads/, refs/tags/ and a HEAD pointing at the default branch.
// Returns ErrRepositoryExists if HEAD is already present.
func Init(fs storage.Store, root string, opts ...Option) (*Repo, error) {
	r := New(fs, root, opts...)

	headPath := r.path(revision.Head)
	if fs.Exists(headPath) {
		return nil, fmt.Errorf("init %s: %w", root, ErrRepositoryExists)
	}

	dirs := []string{
		r.path("objects"),
		r.path("refs", "heads"),
		r.path("refs", "tags"),
	}
	for _, d := range dirs {
		if err := fs.MkdirAll(d); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	head := symbolicPrefix + "refs/heads/" + DefaultBranch + "\n"
	if err := fs.Write(headPath, []byte(head)); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}
	r.log.Debug("initialized repository")
	return r, nil
}

// InitDir creates a repository in the directory name (DefaultDir when
// empty) under worktree on the local filesystem.
func InitDir(worktree, name string, opts ...Option) (*Repo, error) {
	if name == "" {
		name = DefaultDir
	}
	abs, err := filepath.Abs(worktree)
	if err != nil {
		return nil, fmt.Errorf("init: abs path: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("init: mkdir %s: %w", abs, err)
	}
	r, err := Init(storage.NewOS(abs), name, opts...)
	if err != nil {
		return nil, err
	}
	r.Worktree = abs
	return r, nil
}

// Open searches upward from path for a directory called name (DefaultDir
// when empty) and opens the repository it holds.
func Open(path, name string, opts ...Option) (*Repo, error) {
	if name == "" {
		name = DefaultDir
	}
	worktree, err := Discover(path, name)
	if err != nil {
		return nil, err
	}
	r := New(storage.NewOS(worktree), name, opts...)
	r.Worktree = worktree
	return r, nil
}

// Discover returns the nearest directory at or above path that contains a
// directory called name.
func Discover(path, name string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		info, err := os.Stat(filepath.Join(cur, name))
		if err == nil && info.IsDir() {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("open %s: %w (or any parent up to /)", abs, ErrNotARepository)
		}
		cur = parent
	}
}

// Head reads HEAD. If it is symbolic, it returns the target ref path (for
// example "refs/heads/master"); otherwise the detached hash text.
func (r *Repo) Head() (string, error) {
	content, err := r.FS.ReadText(r.path(revision.Head))
	if err != nil {
		return "", fmt.Errorf("head: %w", err)
	}
	content = strings.TrimSpace(content)
	if target, ok := strings.CutPrefix(content, symbolicPrefix); ok {
		return strings.TrimSpace(target), nil
	}
	return content, nil
}

// CurrentBranch returns the branch HEAD points at, or "" when HEAD is
// detached.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	if name, ok := strings.CutPrefix(head, "refs/heads/"); ok {
		return name, nil
	}
	return "", nil
}

func (r *Repo) path(elems ...string) string {
	return filepath.Join(append([]string{r.Root}, elems...)...)
}
