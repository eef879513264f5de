package repo

import (
	"fmt"

	"github.com/odvcencio/revstore/pkg/object"
)

// CreateBranch writes refs/heads/<name> pointing at target. Without force
// an existing branch is left alone and ErrRefExists is returned.
func (r *Repo) CreateBranch(name string, target object.Hash, force bool) error {
	if err := r.createRef("heads", name, target, force); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	return nil
}

// ResolveBranch returns the hash refs/heads/<name> points at.
func (r *Repo) ResolveBranch(name string) (object.Hash, error) {
	if err := validateRefName(name); err != nil {
		return "", fmt.Errorf("resolve branch: %w", err)
	}
	return r.ReadRef("refs/heads/" + name)
}
