package auction

import (
	"sync"

	"line-exchange/core"
)

// Engine is the auction contract's entire persistent state, modeled as a
// lifecycle-scoped object per spec.md's design notes. Cross-contract
// "suspension points" are realized as FTClient/NFTClient calls made while
// Engine's own mutex is released, so other goroutines may operate on other
// auctions concurrently; locked_auctions additionally serializes access to
// the *same* auction across that window.
type Engine struct {
	mu sync.Mutex

	ft  FTClient
	nft NFTClient

	self          core.Address // the engine's own account address, holding escrow
	lineProgramID core.Address // the LINE token program bids are denominated in; immutable after init
	clock         core.Clock

	events *core.EventManager

	auctions       map[uint64]*Auction
	tokenToAuction map[NFTRef]uint64
	lockedAuctions map[uint64]struct{}

	pendingRefunds    map[core.Address]core.Amount
	pendingPayouts    map[core.Address]core.Amount
	pendingNFTReturns map[uint64]nftReturnEntry

	admins             map[core.Address]struct{}
	finalizerRewardBps uint32

	nextAuctionID uint64
}

// New constructs an Engine. self is the account address this contract
// transacts under (the escrow custody account); lineProgramID is the LINE
// token program bids are denominated in, fixed for the engine's lifetime;
// deployer is the sole initial admin.
func New(ft FTClient, nft NFTClient, self core.Address, lineProgramID core.Address, deployer core.Address, clock core.Clock) *Engine {
	return &Engine{
		ft:                 ft,
		nft:                nft,
		self:               self,
		lineProgramID:      lineProgramID,
		clock:              clock,
		events:             core.NewEventManager(core.NewInMemoryStore()),
		auctions:           make(map[uint64]*Auction),
		tokenToAuction:     make(map[NFTRef]uint64),
		lockedAuctions:     make(map[uint64]struct{}),
		pendingRefunds:     make(map[core.Address]core.Amount),
		pendingPayouts:     make(map[core.Address]core.Amount),
		pendingNFTReturns:  make(map[uint64]nftReturnEntry),
		admins:             map[core.Address]struct{}{deployer: {}},
		finalizerRewardBps: 0,
		nextAuctionID:      1,
	}
}

// LineProgramID returns the LINE token program this engine accepts bids
// in. Immutable after construction.
func (e *Engine) LineProgramID() core.Address {
	return e.lineProgramID
}

// Events returns the engine's event log, the public interface an
// off-chain observer subscribes to (spec.md §6).
func (e *Engine) Events() *core.EventManager { return e.events }

func (e *Engine) requireAdmin(caller core.Address) error {
	if _, ok := e.admins[caller]; !ok {
		return core.ErrNotAdmin
	}
	return nil
}

// IsAdmin reports whether addr is an engine admin.
func (e *Engine) IsAdmin(addr core.Address) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.admins[addr]
	return ok
}

// Admins returns the current admin roster.
func (e *Engine) Admins() []core.Address {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]core.Address, 0, len(e.admins))
	for a := range e.admins {
		out = append(out, a)
	}
	return out
}

// AddAdmin admin-gates granting another admin. Idempotent.
func (e *Engine) AddAdmin(caller, admin core.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.admins[admin] = struct{}{}
	return nil
}

// RemoveAdmin admin-gates revoking an admin. The admin set must never
// become empty.
func (e *Engine) RemoveAdmin(caller, admin core.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if len(e.admins) <= 1 {
		if _, ok := e.admins[admin]; ok {
			return core.ErrLastAdmin
		}
	}
	delete(e.admins, admin)
	return nil
}

// SetFinalizerRewardBps admin-gates the finalizer bounty, bounded at 1000
// (10%).
func (e *Engine) SetFinalizerRewardBps(caller core.Address, bps uint32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if bps > maxFinalizerRewardBps {
		return core.ErrRewardOutOfRange
	}
	e.finalizerRewardBps = bps
	return nil
}

func (e *Engine) FinalizerRewardBps() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finalizerRewardBps
}

func (e *Engine) NextAuctionID() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nextAuctionID
}

// GetAuction returns a copy of the auction record.
func (e *Engine) GetAuction(id uint64) (Auction, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	a, ok := e.auctions[id]
	if !ok {
		return Auction{}, false
	}
	return *a, true
}

// GetPendingRefund returns the refund amount queued for addr.
func (e *Engine) GetPendingRefund(addr core.Address) core.Amount {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingRefunds[addr]
}

// GetPendingPayout returns the payout amount queued for addr.
func (e *Engine) GetPendingPayout(addr core.Address) core.Amount {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingPayouts[addr]
}

// GetPendingNFT returns the queued NFT return for auctionID, if any.
func (e *Engine) GetPendingNFT(auctionID uint64) (recipient core.Address, tokenID core.TokenID, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.pendingNFTReturns[auctionID]
	if !ok {
		return core.Address{}, 0, false
	}
	return entry.Recipient, entry.TokenID, true
}
