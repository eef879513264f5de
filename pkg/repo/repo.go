// Package repo ties a storage backend, the loose-object store and the
// revision resolver together into one repository handle, and adds the
// operations that need all three: following symbolic refs, reading an
// object by revision, and writing refs.
package repo

import (
	"sync"

	"go.uber.org/zap"

	"github.com/odvcencio/revstore/pkg/object"
	"github.com/odvcencio/revstore/pkg/revision"
	"github.com/odvcencio/revstore/pkg/storage"
)

// Repo represents an opened repository.
type Repo struct {
	Worktree  string             // directory containing Root, "" for non-filesystem backends
	Root      string             // repository directory within FS, e.g. ".git"
	FS        storage.Store      // backend holding Root
	Objects   *object.Store      // content-addressed object store
	Revisions *revision.Resolver // base-name lookup

	log    *zap.Logger
	prefer revision.Precedence

	// refMu serializes check-then-write ref updates made through this handle.
	refMu sync.Mutex
}

// Option configures a Repo.
type Option func(*Repo)

// WithLogger sets the logger used for debug events. The default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(r *Repo) {
		if log != nil {
			r.log = log
		}
	}
}

// WithPrecedence sets which value an ambiguous branch/tag name resolves to.
func WithPrecedence(p revision.Precedence) Option {
	return func(r *Repo) {
		r.prefer = p
	}
}

// New returns a Repo for the repository rooted at root within fs. It does
// not check that the repository exists; see Init and Open.
func New(fs storage.Store, root string, opts ...Option) *Repo {
	r := &Repo{
		Root: root,
		FS:   fs,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Objects = object.NewStore(fs, root)
	r.Revisions = revision.NewResolver(fs, root, revision.WithPrecedence(r.prefer))
	return r
}
