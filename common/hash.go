package common

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// HashLength is the length of a Hash in bytes.
const HashLength = 32

var ErrHashFormat = errors.New("invalid hash format")

// Hash is a 256-bit digest. The textual form is plain hex, 64 characters.
type Hash [HashLength]byte

// BytesToHash converts raw bytes to a hash, validating the length.
func BytesToHash(b []byte) (Hash, error) {
	if len(b) != HashLength {
		return Hash{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrHashFormat, len(b), HashLength)
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// ParseHash parses the canonical hex form of a hash.
func ParseHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrHashFormat, err)
	}
	return BytesToHash(b)
}

// MustParseHash is ParseHash that panics on error.
func MustParseHash(s string) Hash {
	h, err := ParseHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
