package auction

import "line-exchange/core"

// NFTRef identifies an NFT by the contract that owns its ownership mapping
// and its token ID within that contract.
type NFTRef struct {
	Program core.Address
	TokenID core.TokenID
}

// Auction is a single auction's state. Owned exclusively by the engine's
// auctions map; token_to_auction is a secondary index over this, not a
// second owner.
type Auction struct {
	NFTProgram        core.Address
	TokenID           core.TokenID
	Seller            core.Address
	StartPrice        core.Amount
	HighestBid        core.Amount
	HighestBidder     *core.Address
	EndTimeMs         uint64
	Settled           bool
	ExtensionWindowMs uint64
	MinBidIncrement   core.Amount
}

// nftReturnEntry is a queued NFT delivery the intended recipient (or an
// admin) can later claim.
type nftReturnEntry struct {
	Recipient  core.Address
	TokenID    core.TokenID
	NFTProgram core.Address
}

const (
	minDurationMs = 60_000
	maxDurationMs = 2_592_000_000
	maxExtensionWindowMs = 3_600_000
	maxFinalizerRewardBps = 1000
)

// addMsChecked adds delta to now with overflow detection, since spec.md
// requires checked addition for end_time_ms computation.
func addMsChecked(now, delta uint64) (uint64, bool) {
	sum := now + delta
	return sum, sum < now
}

func errOrDefault(err, def error) error {
	if err != nil {
		return err
	}
	return def
}
