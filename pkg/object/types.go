package object

import "fmt"

// Hash is a 40-character lowercase hex-encoded SHA-1 object id.
type Hash string

// HashLen is the length of a hex-encoded Hash.
const HashLen = 40

// Kind identifies the kind of object stored. The set is closed: commit,
// tree and blob are the only kinds the codec accepts.
type Kind uint8

const (
	KindCommit Kind = iota + 1
	KindTree
	KindBlob
)

// String returns the keyword used for the kind in the object header.
func (k Kind) String() string {
	switch k {
	case KindCommit:
		return "commit"
	case KindTree:
		return "tree"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

func (k Kind) valid() bool {
	return k >= KindCommit && k <= KindBlob
}

// ParseKind parses a header keyword. Matching is exact and case-sensitive.
func ParseKind(keyword string) (Kind, error) {
	switch keyword {
	case "commit":
		return KindCommit, nil
	case "tree":
		return KindTree, nil
	case "blob":
		return KindBlob, nil
	default:
		return 0, fmt.Errorf("%w: unknown object kind %q", ErrMalformedHeader, keyword)
	}
}

// Header is the decoded "<kind> <length>\0" prefix of an object.
//
// Size is the declared payload length as recorded in the encoding. It is
// reported as-is and never reconciled with the actual payload length.
type Header struct {
	Kind Kind
	Size int64
}

// Object is a decoded object. Payload aliases the decompressed buffer the
// object was decoded from.
type Object struct {
	Header
	Payload []byte
}
