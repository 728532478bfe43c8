package core

import "encoding/hex"

// WithdrawalID is a caller-chosen 32-byte single-use nonce authorizing one
// signed withdrawal.
type WithdrawalID [32]byte

func (w WithdrawalID) Hex() string { return hex.EncodeToString(w[:]) }

// PubKey is a raw 32-byte sr25519 (Ristretto) public key.
type PubKey [32]byte

// Signature is a raw 64-byte sr25519 Schnorr signature.
type Signature [64]byte

// TokenID identifies a single NFT within the ledger.
type TokenID uint64
