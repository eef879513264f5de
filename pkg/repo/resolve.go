package repo

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/odvcencio/revstore/pkg/object"
	"github.com/odvcencio/revstore/pkg/revision"
	"github.com/odvcencio/revstore/pkg/storage"
)

const (
	symbolicPrefix = "ref: "
	maxSymrefDepth = 5
)

var (
	ErrModifierUnsupported = errors.New("revision modifiers are not supported")
	ErrRevisionNotFound    = errors.New("revision not found")
	ErrSymbolicRefLoop     = errors.New("too many levels of symbolic refs")
	ErrAmbiguousRevision   = errors.New("ambiguous revision")
)

// AmbiguousRevisionError reports a name that exists both as a branch and as
// a tag. Hash is the fully resolved value that was surfaced.
type AmbiguousRevisionError struct {
	Name string
	Hash object.Hash
	From revision.Candidate
}

func (e *AmbiguousRevisionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("revision %q is ambiguous: using %s %s", e.Name, e.From, e.Hash)
}

func (e *AmbiguousRevisionError) Is(target error) bool {
	return target == ErrAmbiguousRevision
}

// ResolveRevision resolves a revision expression to an object hash,
// following symbolic refs such as "ref: refs/heads/master".
//
// When the name is ambiguous the surfaced hash is returned together with an
// *AmbiguousRevisionError; callers that accept the configured precedence can
// check for it with errors.As and keep the hash.
func (r *Repo) ResolveRevision(text string) (object.Hash, error) {
	spec, res, err := r.Revisions.Resolve(text)
	if err != nil {
		return "", err
	}
	if spec.HasModifier() {
		return "", fmt.Errorf("resolve %q: %w", text, ErrModifierUnsupported)
	}

	switch res.Status {
	case revision.NotFound:
		return "", fmt.Errorf("resolve %q: %w", text, ErrRevisionNotFound)
	case revision.Match, revision.Ambiguous:
	default:
		return "", fmt.Errorf("resolve %q: unexpected status %s", text, res.Status)
	}

	h, err := r.follow(res.Value)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", text, err)
	}
	if res.Status == revision.Ambiguous {
		return h, &AmbiguousRevisionError{Name: spec.Base, Hash: h, From: res.From}
	}
	return h, nil
}

// follow chases "ref: <path>" indirections and parses the final value as a
// hash.
func (r *Repo) follow(value string) (object.Hash, error) {
	for hops := 0; ; hops++ {
		value = strings.TrimSpace(value)
		target, ok := strings.CutPrefix(value, symbolicPrefix)
		if !ok {
			return object.ParseHash(value)
		}
		if hops == maxSymrefDepth {
			return "", ErrSymbolicRefLoop
		}

		target = strings.TrimSpace(target)
		if err := validateFullRefName(target); err != nil {
			return "", err
		}
		r.log.Debug("following symbolic ref", zap.String("target", target), zap.Int("hop", hops+1))

		next, err := r.FS.ReadText(r.path(splitRef(target)...))
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%w: %s does not exist yet", ErrRevisionNotFound, target)
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", target, err)
		}
		value = next
	}
}

// ReadObject resolves rev and reads the object it names. An ambiguous name
// is read using the configured precedence and logged.
func (r *Repo) ReadObject(rev string) (*object.Object, error) {
	h, err := r.ResolveRevision(rev)
	var amb *AmbiguousRevisionError
	if errors.As(err, &amb) {
		r.log.Warn("ambiguous revision", zap.String("name", amb.Name), zap.Stringer("from", amb.From), zap.String("hash", string(amb.Hash)))
	} else if err != nil {
		return nil, err
	}
	return r.Objects.Read(h)
}
