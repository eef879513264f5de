package revision

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Head is the reserved name of the current-revision pointer.
const Head = "HEAD"

// Candidate is a namespace a base name may live in.
type Candidate uint8

const (
	CandidateHead Candidate = iota
	CandidateCommit
	CandidateBranch
	CandidateTag
)

func (c Candidate) String() string {
	switch c {
	case CandidateHead:
		return "head"
	case CandidateCommit:
		return "commit"
	case CandidateBranch:
		return "branch"
	case CandidateTag:
		return "tag"
	default:
		return fmt.Sprintf("candidate(%d)", uint8(c))
	}
}

// CandidatePath returns where base would be stored in the given namespace
// of the repository rooted at root. The boolean is false when base cannot
// structurally belong to the namespace:
//
//   - head: base must be exactly "HEAD"; the path is <root>/HEAD
//   - commit: base must be 40 lowercase hex characters; the path is
//     <root>/objects/<base[:2]>/<base[2:]>
//   - branch, tag: every '/'-separated segment of base becomes one path
//     element under <root>/refs/heads or <root>/refs/tags. Empty, "." and
//     ".." segments are rejected so a name can never leave its namespace.
func CandidatePath(kind Candidate, base, root string) (string, bool) {
	switch kind {
	case CandidateHead:
		if base != Head {
			return "", false
		}
		return filepath.Join(root, Head), true
	case CandidateCommit:
		if len(base) != 40 || !isLowerHex(base) {
			return "", false
		}
		return filepath.Join(root, "objects", base[:2], base[2:]), true
	case CandidateBranch:
		return refPath(root, "heads", base)
	case CandidateTag:
		return refPath(root, "tags", base)
	default:
		return "", false
	}
}

func refPath(root, namespace, base string) (string, bool) {
	segments := strings.Split(base, "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", false
		}
	}
	elems := append([]string{root, "refs", namespace}, segments...)
	return filepath.Join(elems...), true
}

func isLowerHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
