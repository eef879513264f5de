package repo

import (
	"fmt"
	"strings"

	"github.com/odvcencio/revstore/pkg/object"
)

// CreateTag creates or, with force, moves a lightweight tag under
// refs/tags/.
func (r *Repo) CreateTag(name string, target object.Hash, force bool) error {
	name = strings.TrimSpace(name)
	if err := r.createRef("tags", name, target, force); err != nil {
		return fmt.Errorf("create tag %q: %w", name, err)
	}
	return nil
}

// ResolveTag returns the hash refs/tags/<name> points at.
func (r *Repo) ResolveTag(name string) (object.Hash, error) {
	name = strings.TrimSpace(name)
	if err := validateRefName(name); err != nil {
		return "", fmt.Errorf("resolve tag: %w", err)
	}
	return r.ReadRef("refs/tags/" + name)
}
