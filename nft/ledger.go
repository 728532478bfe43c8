// Package nft implements the admin-gated NFT ownership ledger the auction
// engine escrows into and pays out of.
package nft

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"line-exchange/core"
)

// Ledger is the NFT contract's entire persistent state.
type Ledger struct {
	mu sync.Mutex

	owners      map[core.TokenID]core.Address
	tokenURIs   map[core.TokenID]string
	totalSupply uint64
	nextID      core.TokenID

	admins map[core.Address]struct{}

	events *core.EventManager
}

// New constructs a Ledger with deployer as the sole initial admin.
func New(deployer core.Address) *Ledger {
	return &Ledger{
		owners:    make(map[core.TokenID]core.Address),
		tokenURIs: make(map[core.TokenID]string),
		nextID:    1,
		admins:    map[core.Address]struct{}{deployer: {}},
		events:    core.NewEventManager(core.NewInMemoryStore()),
	}
}

// Events returns the ledger's event log, the public interface an
// off-chain observer subscribes to (spec.md §6).
func (l *Ledger) Events() *core.EventManager { return l.events }

func (l *Ledger) requireAdmin(caller core.Address) error {
	if _, ok := l.admins[caller]; !ok {
		return core.ErrNotAdmin
	}
	return nil
}

// Mint allocates the next sequential token ID to "to" with the given URI.
// Admin-gated.
func (l *Ledger) Mint(caller, to core.Address, tokenURI string) (core.TokenID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAdmin(caller); err != nil {
		return 0, err
	}

	id := l.nextID
	l.nextID++
	l.owners[id] = to
	l.tokenURIs[id] = tokenURI
	l.totalSupply++

	log.WithFields(log.Fields{"to": to.Hex(), "token_id": uint64(id)}).Info("nft minted")
	_ = l.events.Emit(core.NftMinted{To: to, TokenID: uint64(id)})
	return id, nil
}

// TransferFrom moves ownership of id from "from" to "to". Admin-gated: only
// an admin of the ledger (typically the auction engine's own address) may
// invoke it, matching the original's ensure_admin check — there is no
// public transfer or approval surface.
func (l *Ledger) TransferFrom(caller, from, to core.Address, id core.TokenID) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireAdmin(caller); err != nil {
		return false, err
	}
	owner, ok := l.owners[id]
	if !ok || owner != from {
		return false, core.ErrNotOwner
	}
	l.owners[id] = to

	log.WithFields(log.Fields{"from": from.Hex(), "to": to.Hex(), "token_id": uint64(id)}).Info("nft transferred")
	_ = l.events.Emit(core.NftTransfer{From: from, To: to, TokenID: uint64(id)})
	return true, nil
}

// OwnerOf returns the current owner of id.
func (l *Ledger) OwnerOf(id core.TokenID) (core.Address, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.owners[id]
	return a, ok
}

// TokenURI returns the metadata URI of id.
func (l *Ledger) TokenURI(id core.TokenID) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	u, ok := l.tokenURIs[id]
	return u, ok
}

// TotalSupply returns the number of NFTs ever minted.
func (l *Ledger) TotalSupply() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalSupply
}

func (l *Ledger) IsAdmin(addr core.Address) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.admins[addr]
	return ok
}

func (l *Ledger) Admins() []core.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Address, 0, len(l.admins))
	for a := range l.admins {
		out = append(out, a)
	}
	return out
}

// AddAdmin admin-gates granting another admin. Idempotent.
func (l *Ledger) AddAdmin(caller, admin core.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireAdmin(caller); err != nil {
		return err
	}
	l.admins[admin] = struct{}{}
	return nil
}

// RemoveAdmin admin-gates revoking an admin. The admin set must never
// become empty.
func (l *Ledger) RemoveAdmin(caller, admin core.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.requireAdmin(caller); err != nil {
		return err
	}
	if len(l.admins) <= 1 {
		if _, ok := l.admins[admin]; ok {
			return core.ErrLastAdmin
		}
	}
	delete(l.admins, admin)
	return nil
}
