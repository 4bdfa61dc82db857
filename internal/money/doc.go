// Package money provides the ledger's monetary value type: a signed,
// exact decimal amount used for every balance and transaction amount in
// the engine.
//
// # Overview
//
// Value wraps shopspring/decimal to give exact, non-rounding addition and
// subtraction over arbitrary-precision decimals, and adds a fixed-width
// 16-byte codec (Bytes/FromBytes) used by internal/disputestore to
// persist amounts in its on-disk bbolt mirror. Value is deliberately
// minimal: Add, Sub, Cmp, LessThan, Parse, String, IsNegative, Bytes,
// and FromBytes (plus the Zero and One values) are the entire surface, matching exactly what the engine
// needs and nothing more — there is no Mul, Div, or Round, since no
// operation in this domain ever multiplies or divides a monetary amount.
//
// # Architecture
//
//	money.Parse("1.50")
//	        │
//	        ▼
//	┌─────────────────────────┐
//	│  Value{d: decimal.Decimal}│   exact coefficient + exponent,
//	└───────────┬─────────────┘   arbitrary precision
//	            │
//	    ┌───────┴────────┐
//	    ▼                ▼
//	Add/Sub/Cmp      Bytes() / FromBytes()
//	(never rounds)   rescale to -28 exponent
//	                 → signed 128-bit two's-complement
//	                 → 16-byte little-endian buffer
//	                         │
//	                         ▼
//	               internal/disputestore's bbolt records
//
// # Precision
//
// fracScale (-28) is the exponent Bytes rescales a Value to before
// packing it into 16 bytes, giving at least 28 fractional decimal digits
// of range — matching common financial precision requirements. Parsing
// and in-memory arithmetic (Add, Sub) are not limited to this scale:
// shopspring/decimal carries however many significant digits the input
// or the arithmetic actually produced, and only the 16-byte wire form is
// ever rescaled. Add and Sub never round; they use decimal's native
// arbitrary-precision addition and subtraction directly.
//
// Scale is preserved, not normalized: shopspring/decimal's Add/Sub keep
// the larger operand's scale, so 1.0 - 1.0 renders as "0.0", not "0".
// Code that compares Values produced by arithmetic must use Cmp, which
// compares by numeric value regardless of scale, not String equality.
//
// # Wire encoding
//
// Bytes rescales a Value to the fixed -28 exponent and packs its
// coefficient as a signed 128-bit two's-complement integer, 16 bytes,
// little-endian. FromBytes is the exact inverse. ErrValueOutOfRange is
// returned by Bytes if the rescaled coefficient does not fit in 128 bits
// — unreachable for any realistic account balance, but the codec fails
// loudly instead of silently truncating if it is ever reached.
//
// # Thread-safety
//
// Value is an immutable value type: every method returns a new Value (or
// a primitive result) rather than mutating the receiver, so it needs no
// synchronization and is safe to share freely across goroutines, the
// same way a plain int or string would be.
//
// # Usage example
//
//	a, err := money.Parse("10.00")
//	b, err := money.Parse("3.50")
//	c := a.Sub(b) // "6.50", exact
//
//	raw, err := c.Bytes()       // 16-byte wire form
//	back := money.FromBytes(raw) // c, exactly
//	back.Cmp(c) == 0
//
// # See also
//
//   - internal/disputestore: the only caller of Bytes/FromBytes, for its
//     bbolt record encoding.
//   - internal/account: every balance field (Available, Held) is a
//     Value.
package money
