package common

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// NftIDBits is the width of a non-fungible unit id.
const NftIDBits = 128

var ErrNftIDFormat = errors.New("invalid non-fungible id")

// NftID is a 128-bit unsigned non-fungible unit id. The textual form is the
// plain decimal representation. NftID is comparable and usable as a map key.
type NftID struct {
	u uint256.Int
}

// ParseNftID parses the decimal form of a non-fungible id.
func ParseNftID(s string) (NftID, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok || b.Sign() < 0 {
		return NftID{}, fmt.Errorf("%w: %q", ErrNftIDFormat, s)
	}
	if b.BitLen() > NftIDBits {
		return NftID{}, fmt.Errorf("%w: %q exceeds %d bits", ErrNftIDFormat, s, NftIDBits)
	}
	var u uint256.Int
	u.SetFromBig(b)
	return NftID{u: u}, nil
}

// MustParseNftID is ParseNftID that panics on error.
func MustParseNftID(s string) NftID {
	id, err := ParseNftID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NftIDFromUint64 returns the id for a small integer value.
func NftIDFromUint64(v uint64) NftID {
	var u uint256.Int
	u.SetUint64(v)
	return NftID{u: u}
}

// Cmp compares two ids numerically.
func (id NftID) Cmp(o NftID) int {
	return id.u.Cmp(&o.u)
}

func (id NftID) String() string {
	return id.u.ToBig().String()
}

func (id NftID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *NftID) UnmarshalText(text []byte) error {
	parsed, err := ParseNftID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
