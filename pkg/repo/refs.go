package repo

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/revstore/pkg/object"
)

var (
	ErrRefExists      = errors.New("ref already exists")
	ErrInvalidRefName = errors.New("invalid ref name")
)

// UpdateRef points the full ref name (for example "refs/heads/master") at
// h. The object need not be present in the store.
func (r *Repo) UpdateRef(name string, h object.Hash) error {
	if err := validateFullRefName(name); err != nil {
		return fmt.Errorf("update ref: %w", err)
	}
	if _, err := object.ParseHash(string(h)); err != nil {
		return fmt.Errorf("update ref %q: %w", name, err)
	}

	r.refMu.Lock()
	defer r.refMu.Unlock()
	return r.writeRef(name, h)
}

// ReadRef returns the hash stored in the full ref name, following symbolic
// refs.
func (r *Repo) ReadRef(name string) (object.Hash, error) {
	if err := validateFullRefName(name); err != nil {
		return "", fmt.Errorf("read ref: %w", err)
	}
	h, err := r.follow(symbolicPrefix + name)
	if err != nil {
		return "", fmt.Errorf("read ref %q: %w", name, err)
	}
	return h, nil
}

// SetHead makes HEAD a symbolic ref to the given branch. The branch does
// not need to exist yet.
func (r *Repo) SetHead(branch string) error {
	if err := validateRefName(branch); err != nil {
		return fmt.Errorf("set head: %w", err)
	}
	content := symbolicPrefix + "refs/heads/" + branch + "\n"

	r.refMu.Lock()
	defer r.refMu.Unlock()
	if err := r.FS.Write(r.path("HEAD"), []byte(content)); err != nil {
		return fmt.Errorf("set head: %w", err)
	}
	r.log.Debug("set HEAD", zap.String("branch", branch))
	return nil
}

// DetachHead stores h directly in HEAD.
func (r *Repo) DetachHead(h object.Hash) error {
	if _, err := object.ParseHash(string(h)); err != nil {
		return fmt.Errorf("detach head: %w", err)
	}

	r.refMu.Lock()
	defer r.refMu.Unlock()
	if err := r.FS.Write(r.path("HEAD"), []byte(string(h)+"\n")); err != nil {
		return fmt.Errorf("detach head: %w", err)
	}
	r.log.Debug("detached HEAD", zap.String("hash", string(h)))
	return nil
}

// createRef writes refs/<namespace>/<name> unless it exists and force is
// unset.
func (r *Repo) createRef(namespace, name string, target object.Hash, force bool) error {
	if err := validateRefName(name); err != nil {
		return err
	}
	if _, err := object.ParseHash(string(target)); err != nil {
		return err
	}
	full := "refs/" + namespace + "/" + name

	r.refMu.Lock()
	defer r.refMu.Unlock()
	if !force && r.FS.Exists(r.path(splitRef(full)...)) {
		return fmt.Errorf("%w: %s", ErrRefExists, full)
	}
	return r.writeRef(full, target)
}

func (r *Repo) writeRef(full string, h object.Hash) error {
	if err := r.FS.Write(r.path(splitRef(full)...), []byte(string(h)+"\n")); err != nil {
		return fmt.Errorf("write ref %q: %w", full, err)
	}
	r.log.Debug("updated ref", zap.String("ref", full), zap.String("hash", string(h)))
	return nil
}

func splitRef(full string) []string {
	return strings.Split(full, "/")
}

// validateFullRefName accepts "refs/<namespace>/<name>" only.
func validateFullRefName(full string) error {
	rest, ok := strings.CutPrefix(full, "refs/")
	if !ok {
		return fmt.Errorf("%w %q: must start with refs/", ErrInvalidRefName, full)
	}
	if !strings.Contains(rest, "/") {
		return fmt.Errorf("%w %q", ErrInvalidRefName, full)
	}
	return validateRefName(rest)
}

// validateRefName checks a short branch or tag name. The rules are a subset
// of git check-ref-format: the name must be usable as a path below refs/
// and must not contain revision modifier markers.
func validateRefName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRefName)
	}
	if name == "HEAD" {
		return fmt.Errorf("%w %q", ErrInvalidRefName, name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("%w %q", ErrInvalidRefName, name)
	}
	if strings.Contains(name, "..") || strings.Contains(name, "//") {
		return fmt.Errorf("%w %q", ErrInvalidRefName, name)
	}
	if strings.ContainsAny(name, " \t\n\r\\^~@:?*[") {
		return fmt.Errorf("%w %q", ErrInvalidRefName, name)
	}
	for _, seg := range strings.Split(name, "/") {
		if strings.HasPrefix(seg, ".") || strings.HasSuffix(seg, ".lock") {
			return fmt.Errorf("%w %q", ErrInvalidRefName, name)
		}
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] == 0x7f {
			return fmt.Errorf("%w %q", ErrInvalidRefName, name)
		}
	}
	return nil
}
