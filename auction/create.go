package auction

import (
	"go.uber.org/zap"

	"line-exchange/core"
)

// CreateAuction validates and registers a new auction, escrowing the NFT
// into the engine's own account before the auction record exists at all —
// mirroring spec.md's ordering: the engine only allocates an auction_id
// after NFT.transfer_from(seller -> self, token_id) returns true.
func (e *Engine) CreateAuction(
	caller core.Address,
	nftProgram core.Address,
	tokenID core.TokenID,
	startPrice core.Amount,
	durationMs uint64,
	extensionWindowMs uint64,
	minBidIncrement core.Amount,
) (uint64, error) {
	e.mu.Lock()

	if err := e.requireAdmin(caller); err != nil {
		e.mu.Unlock()
		return 0, err
	}
	if startPrice.IsZero() {
		e.mu.Unlock()
		return 0, core.ErrZeroPrice
	}
	if durationMs < minDurationMs || durationMs > maxDurationMs {
		e.mu.Unlock()
		return 0, core.ErrDurationOutOfRange
	}
	if extensionWindowMs > maxExtensionWindowMs {
		e.mu.Unlock()
		return 0, core.ErrDurationOutOfRange
	}
	ref := NFTRef{Program: nftProgram, TokenID: tokenID}
	if _, exists := e.tokenToAuction[ref]; exists {
		e.mu.Unlock()
		return 0, core.ErrDuplicateAuction
	}

	now := e.clock.NowMs()
	endTimeMs, overflow := addMsChecked(now, durationMs)
	if overflow {
		e.mu.Unlock()
		return 0, core.ErrOverflow
	}

	e.mu.Unlock()

	ok, err := e.nft.TransferFrom(e.self, caller, e.self, tokenID)
	if err != nil || !ok {
		return 0, errOrDefault(err, core.ErrExternalCallFailed)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-check under lock: another create could have raced in while the
	// NFT transfer was in flight.
	if _, exists := e.tokenToAuction[ref]; exists {
		return 0, core.ErrDuplicateAuction
	}

	id := e.nextAuctionID
	e.nextAuctionID++

	e.auctions[id] = &Auction{
		NFTProgram:        nftProgram,
		TokenID:           tokenID,
		Seller:            caller,
		StartPrice:        startPrice,
		HighestBid:        core.ZeroAmount(),
		HighestBidder:     nil,
		EndTimeMs:         endTimeMs,
		Settled:           false,
		ExtensionWindowMs: extensionWindowMs,
		MinBidIncrement:   minBidIncrement,
	}
	e.tokenToAuction[ref] = id

	zap.L().Sugar().Infow("auction created",
		"auction_id", id, "seller", caller.Hex(), "start_price", startPrice.String(), "end_time_ms", endTimeMs)
	_ = e.events.Emit(core.AuctionCreated{AuctionID: id, Seller: caller, StartPrice: startPrice, EndTimeMs: endTimeMs})

	return id, nil
}
