package object

import "errors"

var (
	// ErrInvalidHashLength is returned for hash strings that are not
	// exactly HashLen characters long. It is raised before any I/O.
	ErrInvalidHashLength = errors.New("invalid hash length")
	// ErrInvalidHash is returned for hash strings of the right length that
	// are not lowercase hex.
	ErrInvalidHash = errors.New("invalid hash")
	// ErrCorruptStream is returned when stored bytes are not a valid
	// compressed record.
	ErrCorruptStream = errors.New("corrupt object stream")
	// ErrMalformedHeader is returned when decompressed content does not
	// start with "<kind> <digits>\0".
	ErrMalformedHeader = errors.New("malformed object header")
	// ErrKindMismatch is returned by typed reads when the stored kind is
	// not the requested one.
	ErrKindMismatch = errors.New("object kind mismatch")
	// ErrMalformedTree is returned when a tree payload cannot be decoded.
	ErrMalformedTree = errors.New("malformed tree")
)
