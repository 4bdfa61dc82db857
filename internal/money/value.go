// Package money implements the fixed-point decimal value type used for every
// balance and transaction amount in the ledger. See doc.go for an overview.
package money

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// fracScale is the exponent used when a Value is rescaled for the 16-byte
// wire encoding consumed by the dispute store. -28 gives at least 28
// fractional decimal digits of range, matching common financial precision
// requirements.
const fracScale int32 = -28

// ErrValueOutOfRange is returned by Bytes when the rescaled coefficient does
// not fit in a signed 128-bit integer. No realistic account balance hits
// this; it exists so the fixed-width codec fails loudly instead of
// truncating silently.
var ErrValueOutOfRange = errors.New("money: value out of range for 16-byte encoding")

// Value is a signed, exact decimal amount. Addition and subtraction never
// round; ordering is total. Zero and One are the only named constants the
// engine needs.
type Value struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Value{d: decimal.Zero}

// One is a convenience constant used mostly in tests.
var One = Value{d: decimal.NewFromInt(1)}

// Parse reads a decimal literal such as "1.5" or "2.0" into a Value. Leading
// and trailing whitespace is trimmed before parsing.
func Parse(s string) (Value, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Value{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return Value{d: d}, nil
}

// Add returns v + o. Never rounds.
func (v Value) Add(o Value) Value {
	return Value{d: v.d.Add(o.d)}
}

// Sub returns v - o. Never rounds.
func (v Value) Sub(o Value) Value {
	return Value{d: v.d.Sub(o.d)}
}

// Cmp returns -1, 0, or 1 as v is less than, equal to, or greater than o.
func (v Value) Cmp(o Value) int {
	return v.d.Cmp(o.d)
}

// LessThan reports whether v < o.
func (v Value) LessThan(o Value) bool {
	return v.Cmp(o) < 0
}

// IsNegative reports whether v < 0.
func (v Value) IsNegative() bool {
	return v.d.IsNegative()
}

// String renders v in plain decimal form, keeping its scale: trailing
// fractional zeros are not dropped, so a Value parsed from "2.0" renders
// as "2.0".
func (v Value) String() string {
	if exp := v.d.Exponent(); exp < 0 {
		return v.d.StringFixed(-exp)
	}
	return v.d.String()
}

// Bytes serializes v into the fixed-width 16-byte little-endian
// representation used as the value half of a dispute store record. The
// decimal is rescaled to a fixed exponent of -28 and the resulting
// coefficient is encoded as a signed 128-bit two's-complement integer.
func (v Value) Bytes() ([16]byte, error) {
	rescaled := v.d.Rescale(fracScale)
	return encodeInt128LE(rescaled.Coefficient())
}

// FromBytes is the inverse of Bytes.
func FromBytes(b [16]byte) Value {
	coef := decodeInt128LE(b)
	return Value{d: decimal.NewFromBigInt(coef, fracScale)}
}

var (
	maxInt128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	modInt128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// encodeInt128LE packs a signed big.Int into a 16-byte little-endian
// two's-complement buffer.
func encodeInt128LE(n *big.Int) ([16]byte, error) {
	var out [16]byte
	if n.Cmp(maxInt128) > 0 || n.Cmp(minInt128) < 0 {
		return out, ErrValueOutOfRange
	}
	u := new(big.Int)
	if n.Sign() < 0 {
		u.Add(modInt128, n)
	} else {
		u.Set(n)
	}
	var be [16]byte
	u.FillBytes(be[:])
	for i := 0; i < 16; i++ {
		out[i] = be[15-i]
	}
	return out, nil
}

// decodeInt128LE is the inverse of encodeInt128LE.
func decodeInt128LE(b [16]byte) *big.Int {
	var be [16]byte
	for i := 0; i < 16; i++ {
		be[i] = b[15-i]
	}
	u := new(big.Int).SetBytes(be[:])
	half := new(big.Int).Lsh(big.NewInt(1), 127)
	if u.Cmp(half) >= 0 {
		u.Sub(u, modInt128)
	}
	return u
}
