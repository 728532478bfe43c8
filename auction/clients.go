// Package auction implements the auction engine: creation, bidding,
// anti-snipe extension, permissionless finalization, and the pull-based
// recovery queues for refunds, payouts, and NFT returns.
package auction

import "line-exchange/core"

// FTClient is the fungible-token surface the engine consumes. Both the real
// *linetoken.Token and test fakes satisfy it directly, matching the
// teacher's pattern of calling core.Transfer in-process (core/marketplace.go)
// generalized into an interface so the engine can be exercised against
// fakes.
type FTClient interface {
	Transfer(caller, to core.Address, amount core.Amount) (bool, error)
	TransferFrom(caller, from, to core.Address, amount core.Amount) (bool, error)
}

// NFTClient is the NFT ledger surface the engine consumes.
type NFTClient interface {
	TransferFrom(caller, from, to core.Address, id core.TokenID) (bool, error)
}
