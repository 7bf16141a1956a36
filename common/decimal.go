package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// DecimalScale is the number of fractional digits carried by Decimal and
// BigDecimal. Quantities are stored as scaled integers (value * 10^18).
const DecimalScale = 18

var (
	ErrDecimalFormat = errors.New("invalid decimal format")
	ErrDecimalRange  = errors.New("decimal out of range")
)

var (
	decimalUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(DecimalScale), nil)
	decimalMax  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	decimalMin  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
)

// Decimal is a signed fixed-point decimal with 18 fractional digits. The
// scaled integer representation is range-checked to 128 bits two's complement,
// matching what the execution engine stores. The zero value is 0.
type Decimal struct {
	i *big.Int
}

// BigDecimal is a Decimal without the 128-bit range restriction.
type BigDecimal struct {
	i *big.Int
}

// NewDecimal returns the decimal for a whole number of units.
func NewDecimal(units int64) Decimal {
	return Decimal{i: new(big.Int).Mul(big.NewInt(units), decimalUnit)}
}

// NewBigDecimal returns the big decimal for a whole number of units.
func NewBigDecimal(units int64) BigDecimal {
	return BigDecimal{i: new(big.Int).Mul(big.NewInt(units), decimalUnit)}
}

// ParseDecimal parses the canonical textual form: an optional sign, an integer
// part, and an optional fractional part of at most 18 digits.
func ParseDecimal(s string) (Decimal, error) {
	i, err := parseScaled(s)
	if err != nil {
		return Decimal{}, err
	}
	if i.Cmp(decimalMax) > 0 || i.Cmp(decimalMin) < 0 {
		return Decimal{}, fmt.Errorf("%w: %s", ErrDecimalRange, s)
	}
	return Decimal{i: i}, nil
}

// MustParseDecimal is ParseDecimal that panics on error.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseBigDecimal parses the same textual form as ParseDecimal without any
// range restriction on the result.
func ParseBigDecimal(s string) (BigDecimal, error) {
	i, err := parseScaled(s)
	if err != nil {
		return BigDecimal{}, err
	}
	return BigDecimal{i: i}, nil
}

// MustParseBigDecimal is ParseBigDecimal that panics on error.
func MustParseBigDecimal(s string) BigDecimal {
	d, err := ParseBigDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parseScaled(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrDecimalFormat)
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot+1:]
		if fracPart == "" {
			return nil, fmt.Errorf("%w: missing fractional digits", ErrDecimalFormat)
		}
	}
	if intPart == "" || !allDigits(intPart) || !allDigits(fracPart) {
		return nil, fmt.Errorf("%w: %q", ErrDecimalFormat, s)
	}
	if len(fracPart) > DecimalScale {
		return nil, fmt.Errorf("%w: more than %d fractional digits", ErrDecimalFormat, DecimalScale)
	}
	scaled, ok := new(big.Int).SetString(intPart+fracPart+strings.Repeat("0", DecimalScale-len(fracPart)), 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDecimalFormat, s)
	}
	if neg {
		scaled.Neg(scaled)
	}
	return scaled, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func formatScaled(i *big.Int) string {
	if i == nil || i.Sign() == 0 {
		return "0"
	}
	abs := new(big.Int).Abs(i)
	quo, rem := new(big.Int).QuoRem(abs, decimalUnit, new(big.Int))
	out := quo.String()
	if rem.Sign() != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%0*d", DecimalScale, rem), "0")
		out += "." + frac
	}
	if i.Sign() < 0 {
		out = "-" + out
	}
	return out
}

func (d Decimal) scaled() *big.Int {
	if d.i == nil {
		return new(big.Int)
	}
	return d.i
}

// Scaled returns a copy of the underlying scaled integer (value * 10^18).
func (d Decimal) Scaled() *big.Int {
	return new(big.Int).Set(d.scaled())
}

// Sign reports the sign of the decimal: -1, 0 or +1.
func (d Decimal) Sign() int {
	return d.scaled().Sign()
}

// Cmp compares two decimals.
func (d Decimal) Cmp(o Decimal) int {
	return d.scaled().Cmp(o.scaled())
}

// Equal reports whether two decimals represent the same quantity.
func (d Decimal) Equal(o Decimal) bool {
	return d.Cmp(o) == 0
}

func (d Decimal) String() string {
	return formatScaled(d.i)
}

func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d BigDecimal) scaled() *big.Int {
	if d.i == nil {
		return new(big.Int)
	}
	return d.i
}

// Scaled returns a copy of the underlying scaled integer (value * 10^18).
func (d BigDecimal) Scaled() *big.Int {
	return new(big.Int).Set(d.scaled())
}

// Cmp compares two big decimals.
func (d BigDecimal) Cmp(o BigDecimal) int {
	return d.scaled().Cmp(o.scaled())
}

// Equal reports whether two big decimals represent the same quantity.
func (d BigDecimal) Equal(o BigDecimal) bool {
	return d.Cmp(o) == 0
}

func (d BigDecimal) String() string {
	return formatScaled(d.i)
}

func (d BigDecimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *BigDecimal) UnmarshalText(text []byte) error {
	parsed, err := ParseBigDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
