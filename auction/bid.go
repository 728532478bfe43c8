package auction

import (
	"go.uber.org/zap"

	"line-exchange/core"
)

// Bid validates and escrows a new bid. The previous highest bidder's amount
// (if any) is queued into pendingRefunds rather than returned synchronously,
// since refunding inline would be another external call made while holding
// the auction in an inconsistent state.
func (e *Engine) Bid(caller core.Address, auctionID uint64, amount core.Amount) error {
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
	if now >= a.EndTimeMs {
		e.mu.Unlock()
		return core.ErrAuctionEnded
	}

	prevBidder := a.HighestBidder
	prevBid := a.HighestBid

	if prevBidder == nil {
		if amount.Lt(a.StartPrice) {
			e.mu.Unlock()
			return core.ErrBelowStartPrice
		}
	} else {
		if *prevBidder == caller {
			e.mu.Unlock()
			return core.ErrSelfOutbid
		}
		minRequired, overflow := prevBid.Add(a.MinBidIncrement)
		if overflow {
			e.mu.Unlock()
			return core.ErrOverflow
		}
		if amount.Lt(minRequired) {
			e.mu.Unlock()
			return core.ErrBelowIncrement
		}
	}

	e.lockedAuctions[auctionID] = struct{}{}
	e.mu.Unlock()

	ok, err := e.ft.TransferFrom(e.self, caller, e.self, amount)
	if err != nil || !ok {
		e.mu.Lock()
		delete(e.lockedAuctions, auctionID)
		e.mu.Unlock()
		return errOrDefault(err, core.ErrExternalCallFailed)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if prevBidder != nil {
		queued, overflow := e.pendingRefunds[*prevBidder].Add(prevBid)
		if overflow {
			queued = prevBid
		}
		e.pendingRefunds[*prevBidder] = queued
	}

	a.HighestBid = amount
	caller2 := caller
	a.HighestBidder = &caller2

	if a.EndTimeMs-now <= a.ExtensionWindowMs {
		if extended, overflow := addMsChecked(now, a.ExtensionWindowMs); !overflow {
			a.EndTimeMs = extended
		}
	}

	delete(e.lockedAuctions, auctionID)

	zap.L().Sugar().Infow("bid placed",
		"auction_id", auctionID, "bidder", caller.Hex(), "amount", amount.String(), "end_time_ms", a.EndTimeMs)
	_ = e.events.Emit(core.BidPlaced{AuctionID: auctionID, Bidder: caller, Amount: amount, EndTimeMs: a.EndTimeMs})

	return nil
}
