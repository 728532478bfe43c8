package auction

import (
	"go.uber.org/zap"

	"line-exchange/core"
)

// CancelAuction withdraws an unsold or unfinished auction, admin- or
// seller-gated, and only before it has ended. Any top bid is queued for
// refund and the NFT is returned to the seller.
func (e *Engine) CancelAuction(caller core.Address, auctionID uint64) error {
	e.mu.Lock()

	a, ok := e.auctions[auctionID]
	if !ok {
		e.mu.Unlock()
		return core.ErrAuctionNotFound
	}
	if caller != a.Seller {
		if err := e.requireAdmin(caller); err != nil {
			e.mu.Unlock()
			return core.ErrNotAdmin
		}
	}
	if a.Settled {
		e.mu.Unlock()
		return core.ErrAuctionSettled
	}
	if _, locked := e.lockedAuctions[auctionID]; locked {
		e.mu.Unlock()
		return core.ErrAuctionLocked
	}
	now := e.clock.NowMs()
	if now >= a.EndTimeMs {
		e.mu.Unlock()
		return core.ErrAuctionEnded
	}

	seller := a.Seller
	nftProgram := a.NFTProgram
	tokenID := a.TokenID
	prevBidder := a.HighestBidder
	prevBid := a.HighestBid

	if prevBidder != nil {
		queued, overflow := e.pendingRefunds[*prevBidder].Add(prevBid)
		if overflow {
			queued = prevBid
		}
		e.pendingRefunds[*prevBidder] = queued
	}

	e.lockedAuctions[auctionID] = struct{}{}
	delete(e.tokenToAuction, NFTRef{Program: nftProgram, TokenID: tokenID})
	e.mu.Unlock()

	if ok, err := e.nft.TransferFrom(e.self, e.self, seller, tokenID); err != nil || !ok {
		e.mu.Lock()
		e.pendingNFTReturns[auctionID] = nftReturnEntry{Recipient: seller, TokenID: tokenID, NFTProgram: nftProgram}
		e.mu.Unlock()
		zap.L().Sugar().Warnw("nft return queued after cancel failure", "auction_id", auctionID, "seller", seller.Hex())
		_ = e.events.Emit(core.NftTransferQueued{AuctionID: auctionID, Recipient: seller, TokenID: uint64(tokenID)})
	}

	e.mu.Lock()
	delete(e.auctions, auctionID)
	delete(e.lockedAuctions, auctionID)
	e.mu.Unlock()

	zap.L().Sugar().Infow("auction cancelled", "auction_id", auctionID, "seller", seller.Hex())
	_ = e.events.Emit(core.AuctionCancelled{AuctionID: auctionID})

	return nil
}
