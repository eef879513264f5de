package object

import (
	"fmt"
	"path/filepath"

	"gopkg.in/src-d/go-git.v4/plumbing"
)

// ParseHash validates s as an object id. The length is checked first, so a
// wrong-length string always fails with ErrInvalidHashLength.
func ParseHash(s string) (Hash, error) {
	if len(s) != HashLen {
		return "", fmt.Errorf("%w: %q has %d characters, want %d", ErrInvalidHashLength, s, len(s), HashLen)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("%w: %q is not lowercase hex", ErrInvalidHash, s)
		}
	}
	return Hash(s), nil
}

// Path returns the loose-object path of h relative to the repository root:
// objects/<first 2 chars>/<remaining 38 chars>. h must be a valid Hash.
func (h Hash) Path() string {
	return filepath.Join("objects", string(h[:2]), string(h[2:]))
}

// HashObject computes the git object id of the envelope
// "<kind> <len>\0<payload>".
func HashObject(kind Kind, payload []byte) Hash {
	return Hash(plumbing.ComputeHash(plumbingType(kind), payload).String())
}

func plumbingType(kind Kind) plumbing.ObjectType {
	switch kind {
	case KindCommit:
		return plumbing.CommitObject
	case KindTree:
		return plumbing.TreeObject
	case KindBlob:
		return plumbing.BlobObject
	default:
		return plumbing.InvalidObject
	}
}
