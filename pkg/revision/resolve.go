package revision

import (
	"fmt"

	"github.com/odvcencio/revstore/pkg/storage"
)

// Status is the outcome of a resolution.
type Status uint8

const (
	NotFound Status = iota
	Match
	Ambiguous
)

func (s Status) String() string {
	switch s {
	case NotFound:
		return "not found"
	case Match:
		return "match"
	case Ambiguous:
		return "ambiguous"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Resolution is the result of looking up a base name. Value is the stored
// content verbatim (a hash, or for HEAD possibly "ref: <path>"); it is
// empty when Status is NotFound.
type Resolution struct {
	Status Status
	Value  string
	// From is the namespace Value was taken from. Unset for NotFound.
	From Candidate
}

// Precedence decides which value an Ambiguous resolution surfaces when a
// name exists both as a branch and as a tag.
type Precedence uint8

const (
	// PreferTag surfaces the tag's value. This is the default.
	PreferTag Precedence = iota
	// PreferBranch surfaces the branch's value.
	PreferBranch
)

func (p Precedence) String() string {
	switch p {
	case PreferTag:
		return "tag"
	case PreferBranch:
		return "branch"
	default:
		return fmt.Sprintf("precedence(%d)", uint8(p))
	}
}

// ParsePrecedence parses "tag" or "branch".
func ParsePrecedence(s string) (Precedence, error) {
	switch s {
	case "tag", "":
		return PreferTag, nil
	case "branch":
		return PreferBranch, nil
	default:
		return 0, fmt.Errorf("unknown ambiguity precedence %q (want \"tag\" or \"branch\")", s)
	}
}

// Resolver looks base names up in a repository. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	fs     storage.Reader
	root   string
	prefer Precedence
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPrecedence sets which namespace wins an ambiguous lookup.
func WithPrecedence(p Precedence) Option {
	return func(r *Resolver) {
		r.prefer = p
	}
}

// NewResolver returns a Resolver reading from fs, with the repository
// rooted at root (for example ".git").
func NewResolver(fs storage.Reader, root string, opts ...Option) *Resolver {
	r := &Resolver{fs: fs, root: root}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve parses text and resolves its base. Parse failures are the only
// errors; the returned Spec carries any modifier for the caller to apply.
func (r *Resolver) Resolve(text string) (Spec, Resolution, error) {
	spec, err := Parse(text)
	if err != nil {
		return Spec{}, Resolution{}, err
	}
	return spec, r.ResolveBase(spec.Base), nil
}

// ResolveBase resolves a base name. Resolution order:
//  1. If base is "HEAD" and HEAD is readable, return its content.
//  2. If base is a 40-character hash of a stored object, return base.
//  3. Otherwise read both refs/heads/<base> and refs/tags/<base>. One hit
//     is a Match; two hits are Ambiguous, surfacing the value chosen by
//     the resolver's Precedence.
//
// Unreadable candidates count as misses; no I/O error is ever returned.
func (r *Resolver) ResolveBase(base string) Resolution {
	if content, ok := r.read(CandidateHead, base); ok {
		return Resolution{Status: Match, Value: content, From: CandidateHead}
	}
	if path, ok := CandidatePath(CandidateCommit, base, r.root); ok && r.fs.Exists(path) {
		return Resolution{Status: Match, Value: base, From: CandidateCommit}
	}

	branch, isBranch := r.read(CandidateBranch, base)
	tag, isTag := r.read(CandidateTag, base)
	switch {
	case isBranch && isTag:
		if r.prefer == PreferBranch {
			return Resolution{Status: Ambiguous, Value: branch, From: CandidateBranch}
		}
		return Resolution{Status: Ambiguous, Value: tag, From: CandidateTag}
	case isBranch:
		return Resolution{Status: Match, Value: branch, From: CandidateBranch}
	case isTag:
		return Resolution{Status: Match, Value: tag, From: CandidateTag}
	default:
		return Resolution{Status: NotFound}
	}
}

func (r *Resolver) read(kind Candidate, base string) (string, bool) {
	path, ok := CandidatePath(kind, base, r.root)
	if !ok {
		return "", false
	}
	content, err := r.fs.ReadText(path)
	if err != nil {
		return "", false
	}
	return content, true
}
