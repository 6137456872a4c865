package domain

import (
	"encoding/hex"
	"strings"

	"go.trai.ch/zerr"
)

// ContentHashSize is the length in bytes of a content hash.
const ContentHashSize = 20

// ContentHash names an immutable source tree snapshot. It doubles as the git tree id.
type ContentHash [ContentHashSize]byte

// ParseContentHash parses the 40 character hexadecimal form of a content hash.
func ParseContentHash(s string) (ContentHash, error) {
	var h ContentHash
	s = strings.TrimSpace(s)
	if len(s) != 2*ContentHashSize {
		return h, zerr.With(ErrInvalidContentHash, "hash", s)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, zerr.With(zerr.Wrap(err, ErrInvalidContentHash.Error()), "hash", s)
	}
	return h, nil
}

// MustParseContentHash parses a content hash or panics.
func MustParseContentHash(s string) ContentHash {
	h, err := ParseContentHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// String returns the lowercase hexadecimal form.
func (h ContentHash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true if the hash was never set.
func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}

// MarshalText implements encoding.TextMarshaler.
func (h ContentHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *ContentHash) UnmarshalText(text []byte) error {
	parsed, err := ParseContentHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
