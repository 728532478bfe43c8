package core

import (
	"github.com/holiman/uint256"
)

// Amount is a 256-bit unsigned integer with checked arithmetic: overflow is
// always reported rather than silently wrapped, per the source's invariant
// that amount overflow is a fatal error.
type Amount struct {
	v uint256.Int
}

// ZeroAmount returns the additive identity.
func ZeroAmount() Amount { return Amount{} }

// NewAmount builds an Amount from a uint64.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// AmountFromBig32 reinterprets a 32-byte big-endian buffer as an Amount, the
// encoding spec.md's withdrawal payload requires.
func AmountFromBig32(b [32]byte) Amount {
	var a Amount
	a.v.SetBytes32(b[:])
	return a
}

// Bytes32 renders the amount as a 32-byte big-endian buffer, matching the
// withdrawal payload's "amount" field encoding.
func (a Amount) Bytes32() [32]byte { return a.v.Bytes32() }

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool { return a.v.IsZero() }

// Cmp compares a to b: -1, 0, or 1.
func (a Amount) Cmp(b Amount) int { return a.v.Cmp(&b.v) }

// Lt reports whether a < b.
func (a Amount) Lt(b Amount) bool { return a.v.Lt(&b.v) }

// Gt reports whether a > b.
func (a Amount) Gt(b Amount) bool { return a.v.Gt(&b.v) }

// Add returns a+b and reports whether the addition overflowed 256 bits.
func (a Amount) Add(b Amount) (Amount, bool) {
	var out Amount
	_, overflow := out.v.AddOverflow(&a.v, &b.v)
	return out, overflow
}

// Sub returns a-b and reports whether the subtraction underflowed.
func (a Amount) Sub(b Amount) (Amount, bool) {
	var out Amount
	_, underflow := out.v.SubOverflow(&a.v, &b.v)
	return out, underflow
}

// MulDiv computes floor(a*b/d) using a 512-bit intermediate so the
// multiplication itself never overflows before the division, as required by
// the finalizer reward calculation (winning_bid * bps / 10_000).
func (a Amount) MulDiv(b, d Amount) (Amount, bool) {
	var out Amount
	_, overflow := out.v.MulDivOverflow(&a.v, &b.v, &d.v)
	return out, overflow
}

func (a Amount) String() string { return a.v.Dec() }
