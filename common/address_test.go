package common

import (
	"errors"
	"strings"
	"testing"
)

func TestAddressRoundTrip(t *testing.T) {
	addr := NewAddress(AddressKindResource, [AddressBodyLength]byte{0xde, 0xad})
	parsed, err := ParseAddress(addr.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed != addr {
		t.Fatalf("round trip mismatch: have %s want %s", parsed, addr)
	}
	if parsed.Kind() != AddressKindResource || !parsed.IsResource() {
		t.Fatalf("kind mismatch: %d", parsed.Kind())
	}
}

func TestParseAddressRejections(t *testing.T) {
	valid := NewAddress(AddressKindPackage, [AddressBodyLength]byte{1}).String()
	tests := []struct {
		input string
		want  error
	}{
		{"zz" + valid[2:], ErrAddressFormat},
		{valid[:len(valid)-2], ErrAddressLength},
		{"ff" + valid[2:], ErrAddressKind},
		{"", ErrAddressLength},
	}
	for _, tt := range tests {
		if _, err := ParseAddress(tt.input); !errors.Is(err, tt.want) {
			t.Fatalf("input %q: have %v want %v", tt.input, err, tt.want)
		}
	}
}

func TestAddressTextForm(t *testing.T) {
	addr := NewAddress(AddressKindComponent, [AddressBodyLength]byte{0xab})
	s := addr.String()
	if len(s) != 2*AddressLength {
		t.Fatalf("text length mismatch: have %d want %d", len(s), 2*AddressLength)
	}
	if !strings.HasPrefix(s, "02") {
		t.Fatalf("kind prefix missing: %q", s)
	}
}
