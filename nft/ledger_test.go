package nft

import (
	"testing"

	"line-exchange/core"
)

func addr(b byte) core.Address {
	var a core.Address
	a[31] = b
	return a
}

func TestMintAllocatesSequentialIDs(t *testing.T) {
	admin := addr(1)
	l := New(admin)

	id1, err := l.Mint(admin, addr(2), "ipfs://one")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := l.Mint(admin, addr(2), "ipfs://two")
	if err != nil {
		t.Fatal(err)
	}
	if id1 != 1 || id2 != 2 {
		t.Fatalf("expected sequential ids 1,2 got %d,%d", id1, id2)
	}
	if l.TotalSupply() != 2 {
		t.Fatalf("expected total supply 2")
	}
}

func TestMintRequiresAdmin(t *testing.T) {
	admin := addr(1)
	l := New(admin)
	if _, err := l.Mint(addr(9), addr(2), "uri"); err != core.ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestTransferFromRequiresAdminAndOwner(t *testing.T) {
	admin := addr(1)
	seller, buyer := addr(2), addr(3)
	l := New(admin)
	id, err := l.Mint(admin, seller, "uri")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.TransferFrom(seller, seller, buyer, id); err != core.ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin for non-admin caller, got %v", err)
	}

	ok, err := l.TransferFrom(admin, seller, buyer, id)
	if err != nil || !ok {
		t.Fatalf("expected successful transfer, got %v %v", ok, err)
	}
	owner, _ := l.OwnerOf(id)
	if owner != buyer {
		t.Fatalf("expected buyer to own token")
	}
}

func TestTransferFromWrongOwnerFails(t *testing.T) {
	admin := addr(1)
	seller, other, buyer := addr(2), addr(3), addr(4)
	l := New(admin)
	id, err := l.Mint(admin, seller, "uri")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.TransferFrom(admin, other, buyer, id); err != core.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestRemoveLastAdminFails(t *testing.T) {
	admin := addr(1)
	l := New(admin)
	if err := l.RemoveAdmin(admin, admin); err != core.ErrLastAdmin {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}
