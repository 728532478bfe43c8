package core

import "errors"

// Error families, per the source's error taxonomy. Every contract method
// validates all of these before the first mutation, so a returned error
// always means zero partial state change — the Go analogue of the source's
// "uniform error-signaling mechanism that unwinds all provisional state."

// Family 1: Authorization.
var (
	ErrNotAdmin  = errors.New("caller is not an admin")
	ErrNotMinter = errors.New("caller is not a minter")
)

// Family 2: Precondition.
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrAuctionSettled   = errors.New("auction already settled")
	ErrAuctionEnded     = errors.New("auction has ended")
	ErrAuctionNotEnded  = errors.New("auction has not ended")
	ErrAuctionLocked    = errors.New("auction is locked")
	ErrDuplicateAuction = errors.New("an auction already exists for this nft")
)

// Family 3: Amount validation.
var (
	ErrZeroAmount            = errors.New("amount must be non-zero")
	ErrOverflow              = errors.New("amount overflow")
	ErrBelowStartPrice       = errors.New("bid below start price")
	ErrBelowIncrement        = errors.New("bid below minimum increment")
	ErrSelfOutbid            = errors.New("caller is already the highest bidder")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrExceedsCap            = errors.New("amount exceeds configured cap")
)

// Family 4: Replay / expiry.
var (
	ErrWithdrawalUsed    = errors.New("withdrawal id already used")
	ErrWithdrawalExpired = errors.New("withdrawal has expired")
)

// Family 5: Cryptographic.
var (
	ErrSignerNotConfigured = errors.New("backend signer not configured")
	ErrInvalidSignature    = errors.New("signature verification failed")
	ErrMalformedKeyOrSig   = errors.New("malformed public key or signature")
)

// Family 6: External call.
var ErrExternalCallFailed = errors.New("cross-contract call failed")

// Family 7: Resource.
var (
	ErrLastAdmin   = errors.New("cannot remove the last admin")
	ErrZeroPrice   = errors.New("price must be positive")
	ErrNotFound    = errors.New("resource not found")
	ErrNotOwner    = errors.New("caller does not own this asset")
)

// Family 8: Configuration.
var (
	ErrDurationOutOfRange = errors.New("auction duration out of range")
	ErrRewardOutOfRange   = errors.New("finalizer reward bps out of range")
	ErrWithdrawalsPaused  = errors.New("withdrawals are paused")
)
