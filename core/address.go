package core

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// Address is an opaque 32-byte account identifier. Equality is by value.
type Address [32]byte

// AddressZero is the zero-value address, used as a sentinel for "no
// recipient" (e.g. the from-side of a mint).
var AddressZero Address

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == AddressZero }

// Hex returns the lowercase hex encoding of a, matching the teacher's
// Address.Hex() convention used throughout access control and logging.
func (a Address) Hex() string { return hex.EncodeToString(a[:]) }

// Base58 renders the address using base58, a friendlier encoding for
// operator-facing logs and read-only query responses.
func (a Address) Base58() string { return base58.Encode(a[:]) }

// AddressFromHex parses a 64-character hex string into an Address.
func AddressFromHex(s string) (Address, error) {
	var a Address
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("decode address hex: %w", err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("address must be %d bytes, got %d", len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromBase58 parses a base58-encoded string into an Address.
func AddressFromBase58(s string) (Address, error) {
	var a Address
	b, err := base58.Decode(s)
	if err != nil {
		return a, fmt.Errorf("decode address base58: %w", err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("address must be %d bytes, got %d", len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string { return a.Hex() }
