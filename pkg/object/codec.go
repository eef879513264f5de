package object

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zlib"
)

// Decompress inflates a zlib stream read to completion. Any failure,
// including input that is not compressed at all, wraps ErrCorruptStream.
func Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptStream, err)
	}
	return out, nil
}

// Compress deflates data into a zlib stream.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseHeader splits decompressed object content into its header and
// payload. The content must start with "<kind> <digits>\0". The split
// happens exactly once, at the first space and then the first NUL after
// it; everything after that NUL is returned untouched as the payload.
func ParseHeader(data []byte) (Header, []byte, error) {
	sp := bytes.IndexByte(data, ' ')
	if sp < 0 {
		return Header{}, nil, fmt.Errorf("%w: missing space", ErrMalformedHeader)
	}
	kind, err := ParseKind(string(data[:sp]))
	if err != nil {
		return Header{}, nil, err
	}

	rest := data[sp+1:]
	nul := bytes.IndexByte(rest, 0)
	if nul < 0 {
		return Header{}, nil, fmt.Errorf("%w: missing NUL terminator", ErrMalformedHeader)
	}
	size, err := parseLength(rest[:nul])
	if err != nil {
		return Header{}, nil, err
	}

	return Header{Kind: kind, Size: size}, rest[nul+1:], nil
}

// parseLength accepts only a non-empty run of ASCII digits.
func parseLength(tok []byte) (int64, error) {
	if len(tok) == 0 {
		return 0, fmt.Errorf("%w: empty length", ErrMalformedHeader)
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: invalid length %q", ErrMalformedHeader, tok)
		}
	}
	n, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid length %q: %v", ErrMalformedHeader, tok, err)
	}
	return n, nil
}

// EncodeHeader renders h as "<kind> <size>\0".
func EncodeHeader(h Header) []byte {
	return fmt.Appendf(nil, "%s %d\x00", h.Kind, h.Size)
}

// Encode returns the uncompressed envelope "<kind> <len>\0<payload>".
func Encode(kind Kind, payload []byte) []byte {
	head := EncodeHeader(Header{Kind: kind, Size: int64(len(payload))})
	return append(head, payload...)
}

// EncodeObject returns the compressed on-disk form of an object.
func EncodeObject(kind Kind, payload []byte) ([]byte, error) {
	return Compress(Encode(kind, payload))
}

// DecodeObject decompresses a stored record and parses its header. Errors
// are either ErrCorruptStream or ErrMalformedHeader; no partial object is
// ever returned.
func DecodeObject(compressed []byte) (*Object, error) {
	raw, err := Decompress(compressed)
	if err != nil {
		return nil, err
	}
	h, payload, err := ParseHeader(raw)
	if err != nil {
		return nil, err
	}
	return &Object{Header: h, Payload: payload}, nil
}
