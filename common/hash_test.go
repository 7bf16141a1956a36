package common

import (
	"errors"
	"strings"
	"testing"
)

func TestParseHashRoundTrip(t *testing.T) {
	s := strings.Repeat("ab", HashLength)
	h, err := ParseHash(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if h.String() != s {
		t.Fatalf("round trip mismatch: have %s want %s", h, s)
	}
}

func TestParseHashRejections(t *testing.T) {
	for _, s := range []string{
		"",
		"abcd",
		strings.Repeat("ab", HashLength) + "cd",
		strings.Repeat("zz", HashLength),
	} {
		if _, err := ParseHash(s); !errors.Is(err, ErrHashFormat) {
			t.Fatalf("expected ErrHashFormat for %q, have %v", s, err)
		}
	}
}
