// Package common holds the value types shared across the gores packages:
// addresses, hashes, fixed-point decimals and non-fungible unit ids.
package common

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// AddressKind identifies what kind of entity an address refers to.
type AddressKind byte

const (
	AddressKindPackage   AddressKind = 0x01
	AddressKindComponent AddressKind = 0x02
	AddressKindResource  AddressKind = 0x03
	AddressKindPublicKey AddressKind = 0x04
)

const (
	// AddressBodyLength is the length of the payload that follows the kind byte.
	AddressBodyLength = 26
	// AddressLength is the full serialized length: one kind byte plus the body.
	AddressLength = AddressBodyLength + 1
)

var (
	ErrAddressLength = errors.New("invalid address length")
	ErrAddressKind   = errors.New("invalid address kind")
	ErrAddressFormat = errors.New("invalid address format")
)

// Address is a kind-prefixed entity address. The textual form is the plain
// hex encoding of all AddressLength bytes, kind byte first.
type Address [AddressLength]byte

// NewAddress assembles an address from a kind and a body.
func NewAddress(kind AddressKind, body [AddressBodyLength]byte) Address {
	var a Address
	a[0] = byte(kind)
	copy(a[1:], body[:])
	return a
}

// BytesToAddress converts raw bytes to an address, validating kind and length.
func BytesToAddress(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return Address{}, fmt.Errorf("%w: got %d bytes, expected %d", ErrAddressLength, len(b), AddressLength)
	}
	if !validAddressKind(AddressKind(b[0])) {
		return Address{}, fmt.Errorf("%w: 0x%02x", ErrAddressKind, b[0])
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// ParseAddress parses the canonical hex form of an address.
func ParseAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	return BytesToAddress(b)
}

// MustParseAddress is ParseAddress that panics on error. Intended for
// package-level well-known addresses and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func validAddressKind(k AddressKind) bool {
	switch k {
	case AddressKindPackage, AddressKindComponent, AddressKindResource, AddressKindPublicKey:
		return true
	}
	return false
}

// Kind returns the address kind byte.
func (a Address) Kind() AddressKind {
	return AddressKind(a[0])
}

// Body returns the payload that follows the kind byte.
func (a Address) Body() [AddressBodyLength]byte {
	var body [AddressBodyLength]byte
	copy(body[:], a[1:])
	return body
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsPackage() bool   { return a.Kind() == AddressKindPackage }
func (a Address) IsComponent() bool { return a.Kind() == AddressKindComponent }
func (a Address) IsResource() bool  { return a.Kind() == AddressKindResource }

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
