package auction

import (
	"go.uber.org/zap"

	"line-exchange/core"
)

// FinalizeAuction is permissionless: anyone may call it once the auction has
// ended, and is rewarded a basis-point cut of the winning bid for doing so.
// Settlement (Settled=true, index removal) commits before any external
// call, so a mid-finalization failure can only ever strand a payout/NFT in
// the pull-queues — it can never re-open or duplicate the auction.
func (e *Engine) FinalizeAuction(caller core.Address, auctionID uint64) error {
	e.mu.Lock()

	a, ok := e.auctions[auctionID]
	if !ok {
		e.mu.Unlock()
		return core.ErrAuctionNotFound
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
	if now < a.EndTimeMs {
		e.mu.Unlock()
		return core.ErrAuctionNotEnded
	}

	winner := a.HighestBidder
	winningBid := a.HighestBid
	seller := a.Seller
	nftProgram := a.NFTProgram
	tokenID := a.TokenID
	bps := e.finalizerRewardBps

	a.Settled = true
	delete(e.tokenToAuction, NFTRef{Program: nftProgram, TokenID: tokenID})
	e.lockedAuctions[auctionID] = struct{}{}

	e.mu.Unlock()

	nftRecipient := seller
	if winner != nil {
		nftRecipient = *winner
	}
	if ok, err := e.nft.TransferFrom(e.self, e.self, nftRecipient, tokenID); err != nil || !ok {
		e.mu.Lock()
		e.pendingNFTReturns[auctionID] = nftReturnEntry{Recipient: nftRecipient, TokenID: tokenID, NFTProgram: nftProgram}
		e.mu.Unlock()
		zap.L().Sugar().Warnw("nft delivery queued after finalize failure",
			"auction_id", auctionID, "recipient", nftRecipient.Hex())
		_ = e.events.Emit(core.NftTransferQueued{AuctionID: auctionID, Recipient: nftRecipient, TokenID: uint64(tokenID)})
	}

	if winner != nil {
		finalizerReward, overflow := winningBid.MulDiv(core.NewAmount(uint64(bps)), core.NewAmount(10000))
		if overflow {
			finalizerReward = core.ZeroAmount()
		}
		sellerPayout, underflow := winningBid.Sub(finalizerReward)
		if underflow {
			sellerPayout = winningBid
			finalizerReward = core.ZeroAmount()
		}

		if ok, err := e.ft.Transfer(e.self, seller, sellerPayout); err != nil || !ok {
			e.mu.Lock()
			queued, ofl := e.pendingPayouts[seller].Add(sellerPayout)
			if ofl {
				queued = sellerPayout
			}
			e.pendingPayouts[seller] = queued
			e.mu.Unlock()
			zap.L().Sugar().Warnw("seller payout queued after finalize failure", "auction_id", auctionID, "seller", seller.Hex())
			_ = e.events.Emit(core.PayoutQueued{Recipient: seller, Amount: sellerPayout})
		}

		if !finalizerReward.IsZero() {
			if ok, err := e.ft.Transfer(e.self, caller, finalizerReward); err != nil || !ok {
				e.mu.Lock()
				queued, ofl := e.pendingPayouts[caller].Add(finalizerReward)
				if ofl {
					queued = finalizerReward
				}
				e.pendingPayouts[caller] = queued
				e.mu.Unlock()
				zap.L().Sugar().Warnw("finalizer reward queued after finalize failure", "auction_id", auctionID, "finalizer", caller.Hex())
				_ = e.events.Emit(core.PayoutQueued{Recipient: caller, Amount: finalizerReward})
			}
		}
	}

	e.mu.Lock()
	delete(e.auctions, auctionID)
	delete(e.lockedAuctions, auctionID)
	e.mu.Unlock()

	winnerLog := core.AddressZero
	if winner != nil {
		winnerLog = *winner
	}
	zap.L().Sugar().Infow("auction finalized",
		"auction_id", auctionID, "winner", winnerLog.Hex(), "amount", winningBid.String())
	_ = e.events.Emit(core.AuctionFinalized{AuctionID: auctionID, Winner: winnerLog, Amount: winningBid})

	return nil
}
