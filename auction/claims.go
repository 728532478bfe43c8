package auction

import (
	"go.uber.org/zap"

	"line-exchange/core"
)

// ClaimRefund lets a caller pull a queued bid refund. The queued amount is
// removed before the external call and restored on failure, so a claim is
// safe to retry and never loses or duplicates funds.
func (e *Engine) ClaimRefund(caller core.Address) error {
	e.mu.Lock()
	amount := e.pendingRefunds[caller]
	if amount.IsZero() {
		e.mu.Unlock()
		return core.ErrNotFound
	}
	delete(e.pendingRefunds, caller)
	e.mu.Unlock()

	ok, err := e.ft.Transfer(e.self, caller, amount)
	if err != nil || !ok {
		e.mu.Lock()
		queued, overflow := e.pendingRefunds[caller].Add(amount)
		if overflow {
			queued = amount
		}
		e.pendingRefunds[caller] = queued
		e.mu.Unlock()
		return errOrDefault(err, core.ErrExternalCallFailed)
	}

	zap.L().Sugar().Infow("refund claimed", "recipient", caller.Hex(), "amount", amount.String())
	_ = e.events.Emit(core.RefundClaimed{Recipient: caller, Amount: amount})
	return nil
}

// ClaimPayout lets a caller pull a queued seller or finalizer payout.
func (e *Engine) ClaimPayout(caller core.Address) error {
	e.mu.Lock()
	amount := e.pendingPayouts[caller]
	if amount.IsZero() {
		e.mu.Unlock()
		return core.ErrNotFound
	}
	delete(e.pendingPayouts, caller)
	e.mu.Unlock()

	ok, err := e.ft.Transfer(e.self, caller, amount)
	if err != nil || !ok {
		e.mu.Lock()
		queued, overflow := e.pendingPayouts[caller].Add(amount)
		if overflow {
			queued = amount
		}
		e.pendingPayouts[caller] = queued
		e.mu.Unlock()
		return errOrDefault(err, core.ErrExternalCallFailed)
	}

	zap.L().Sugar().Infow("payout claimed", "recipient", caller.Hex(), "amount", amount.String())
	_ = e.events.Emit(core.PayoutClaimed{Recipient: caller, Amount: amount})
	return nil
}

// ClaimNFT lets the intended recipient of a queued NFT return (or an admin)
// pull it.
func (e *Engine) ClaimNFT(caller core.Address, auctionID uint64) error {
	e.mu.Lock()
	entry, ok := e.pendingNFTReturns[auctionID]
	if !ok {
		e.mu.Unlock()
		return core.ErrNotFound
	}
	if caller != entry.Recipient {
		if err := e.requireAdmin(caller); err != nil {
			e.mu.Unlock()
			return core.ErrNotAdmin
		}
	}
	delete(e.pendingNFTReturns, auctionID)
	e.mu.Unlock()

	ok, err := e.nft.TransferFrom(e.self, e.self, entry.Recipient, entry.TokenID)
	if err != nil || !ok {
		e.mu.Lock()
		e.pendingNFTReturns[auctionID] = entry
		e.mu.Unlock()
		return errOrDefault(err, core.ErrExternalCallFailed)
	}

	zap.L().Sugar().Infow("nft claimed", "auction_id", auctionID, "recipient", entry.Recipient.Hex(), "token_id", uint64(entry.TokenID))
	_ = e.events.Emit(core.NftClaimed{AuctionID: auctionID, Recipient: entry.Recipient, TokenID: uint64(entry.TokenID)})
	return nil
}
