package auction

import (
	"errors"

	"line-exchange/core"
	"line-exchange/linetoken"
	"line-exchange/nft"
)

func addr(b byte) core.Address {
	var a core.Address
	a[31] = b
	return a
}

// testRig wires a real linetoken.Token and nft.Ledger to an Engine, exactly
// as a deployment would, so the engine's cross-contract calls exercise the
// real contracts rather than hand-rolled fakes.
type testRig struct {
	ft    *linetoken.Token
	nft   *nft.Ledger
	clock *core.MockClock
	eng   *Engine
	self  core.Address
}

// testLineProgramID is the fixed LINE token program address every test rig
// wires the engine to.
var testLineProgramID = addr(251)

func newTestRig(admin core.Address) *testRig {
	self := addr(250)
	ft := linetoken.New("Line", "LINE", 18, admin)
	ledger := nft.New(admin)
	if err := ledger.AddAdmin(admin, self); err != nil {
		panic(err)
	}
	clk := core.NewMockClock()
	eng := New(ft, ledger, self, testLineProgramID, admin, clk)
	return &testRig{ft: ft, nft: ledger, clock: clk, eng: eng, self: self}
}

// mintAndApprove mints amount of LINE to bidder and has them approve the
// engine's escrow account to pull it, mirroring how a real bidder would
// authorize the auction contract before calling Bid.
func (r *testRig) mintAndApprove(admin, bidder core.Address, amount core.Amount) {
	if _, err := r.ft.Mint(admin, bidder, amount); err != nil {
		panic(err)
	}
	if _, err := r.ft.Approve(bidder, r.eng.self, amount); err != nil {
		panic(err)
	}
}

// mintNFT mints an NFT to seller; approving isn't a concept the
// NFT ledger exposes (transfer_from is admin-only), so nothing further is
// needed for the engine (already an admin) to escrow it.
func (r *testRig) mintNFT(admin, seller core.Address, uri string) core.TokenID {
	id, err := r.nft.Mint(admin, seller, uri)
	if err != nil {
		panic(err)
	}
	return id
}

// failingFT always reports failure without mutating anything, used to
// exercise the pull-queue fallback paths.
type failingFT struct{}

func (failingFT) Transfer(caller, to core.Address, amount core.Amount) (bool, error) {
	return false, errors.New("simulated ft transfer failure")
}
func (failingFT) TransferFrom(caller, from, to core.Address, amount core.Amount) (bool, error) {
	return false, errors.New("simulated ft transfer_from failure")
}

// failingNFT always reports failure without mutating anything.
type failingNFT struct{}

func (failingNFT) TransferFrom(caller, from, to core.Address, id core.TokenID) (bool, error) {
	return false, errors.New("simulated nft transfer_from failure")
}
