package auction

import (
	"testing"

	"line-exchange/core"
)

func TestCreateAuctionEscrowsNFT(t *testing.T) {
	admin := addr(1)
	seller := addr(2)
	rig := newTestRig(admin)
	if err := rig.eng.AddAdmin(admin, seller); err != nil {
		t.Fatal(err)
	}
	tokenID := rig.mintNFT(admin, seller, "ipfs://item")

	id, err := rig.eng.CreateAuction(seller, core.AddressZero, tokenID,
		core.NewAmount(100), minDurationMs, 60_000, core.NewAmount(5))
	if err != nil {
		t.Fatalf("create auction failed: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first auction id 1, got %d", id)
	}

	owner, _ := rig.nft.OwnerOf(tokenID)
	if owner != rig.self {
		t.Fatalf("expected nft escrowed to engine self, got %v", owner)
	}

	a, ok := rig.eng.GetAuction(id)
	if !ok || a.Seller != seller || a.StartPrice.Cmp(core.NewAmount(100)) != 0 {
		t.Fatalf("unexpected auction record: %+v", a)
	}
}

func TestCreateAuctionRequiresAdmin(t *testing.T) {
	admin := addr(1)
	notAdmin := addr(9)
	rig := newTestRig(admin)
	tokenID := rig.mintNFT(admin, notAdmin, "ipfs://item")

	if _, err := rig.eng.CreateAuction(notAdmin, core.AddressZero, tokenID,
		core.NewAmount(100), minDurationMs, 0, core.NewAmount(1)); err != core.ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestCreateAuctionRejectsDuplicate(t *testing.T) {
	admin := addr(1)
	rig := newTestRig(admin)
	tokenID := rig.mintNFT(admin, admin, "ipfs://item")

	if _, err := rig.eng.CreateAuction(admin, core.AddressZero, tokenID,
		core.NewAmount(100), minDurationMs, 0, core.NewAmount(1)); err != nil {
		t.Fatalf("first create should succeed: %v", err)
	}

	secondID := rig.mintNFT(admin, admin, "ipfs://item2")
	// reuse the same (program, token) pair by constructing a second auction
	// referencing secondID is fine; duplicate must be checked against the
	// *first* token's ref, not secondID, so re-attempt with tokenID itself.
	_ = secondID
	if _, err := rig.eng.CreateAuction(admin, core.AddressZero, tokenID,
		core.NewAmount(50), minDurationMs, 0, core.NewAmount(1)); err != core.ErrDuplicateAuction {
		t.Fatalf("expected ErrDuplicateAuction, got %v", err)
	}
}

func TestCreateAuctionValidatesDuration(t *testing.T) {
	admin := addr(1)
	rig := newTestRig(admin)
	tokenID := rig.mintNFT(admin, admin, "ipfs://item")

	if _, err := rig.eng.CreateAuction(admin, core.AddressZero, tokenID,
		core.NewAmount(100), minDurationMs-1, 0, core.NewAmount(1)); err != core.ErrDurationOutOfRange {
		t.Fatalf("expected ErrDurationOutOfRange for too-short duration, got %v", err)
	}

	tokenID2 := rig.mintNFT(admin, admin, "ipfs://item2")
	if _, err := rig.eng.CreateAuction(admin, core.AddressZero, tokenID2,
		core.NewAmount(100), maxDurationMs+1, 0, core.NewAmount(1)); err != core.ErrDurationOutOfRange {
		t.Fatalf("expected ErrDurationOutOfRange for too-long duration, got %v", err)
	}
}
