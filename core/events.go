package core

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Event types emitted by the three contracts, one typed struct per state
// transition rather than a generic envelope — matching the granularity of
// the Rust originals' per-contract Event enums. Transfers, approvals, mints,
// withdrawals and each auction lifecycle step emit one of these through an
// EventManager (finalize and cancel also emit a *Queued event for each leg
// they queue); admin-roster changes and the withdrawal and reward
// configuration setters emit no event. This is the public interface an
// off-chain observer subscribes to, distinct from the logrus/zap lines each
// commit point also writes for operability.

// Event is implemented by every typed event struct below. Type identifies
// the event for the log's key prefix, the Go analogue of the teacher's
// event_management.go tagging each anchored record by a string type.
type Event interface {
	Type() string
}

// Fungible token events.

type Transfer struct {
	From, To Address
	Value    Amount
}

func (Transfer) Type() string { return "Transfer" }

type Approval struct {
	Owner, Spender Address
	Value          Amount
}

func (Approval) Type() string { return "Approval" }

type Minted struct {
	To    Address
	Value Amount
}

func (Minted) Type() string { return "Minted" }

type WithdrawalExecuted struct {
	To           Address
	Amount       Amount
	WithdrawalID WithdrawalID
}

func (WithdrawalExecuted) Type() string { return "WithdrawalExecuted" }

// NFT ledger events.

type NftMinted struct {
	To      Address
	TokenID uint64
}

func (NftMinted) Type() string { return "NftMinted" }

type NftTransfer struct {
	From, To Address
	TokenID  uint64
}

func (NftTransfer) Type() string { return "NftTransfer" }

// Auction engine events.

type AuctionCreated struct {
	AuctionID  uint64
	Seller     Address
	StartPrice Amount
	EndTimeMs  uint64
}

func (AuctionCreated) Type() string { return "AuctionCreated" }

type BidPlaced struct {
	AuctionID uint64
	Bidder    Address
	Amount    Amount
	EndTimeMs uint64
}

func (BidPlaced) Type() string { return "BidPlaced" }

type AuctionFinalized struct {
	AuctionID uint64
	Winner    Address
	Amount    Amount
}

func (AuctionFinalized) Type() string { return "AuctionFinalized" }

type AuctionCancelled struct {
	AuctionID uint64
}

func (AuctionCancelled) Type() string { return "AuctionCancelled" }

type NftTransferQueued struct {
	AuctionID uint64
	Recipient Address
	TokenID   uint64
}

func (NftTransferQueued) Type() string { return "NftTransferQueued" }

type PayoutQueued struct {
	Recipient Address
	Amount    Amount
}

func (PayoutQueued) Type() string { return "PayoutQueued" }

type RefundClaimed struct {
	Recipient Address
	Amount    Amount
}

func (RefundClaimed) Type() string { return "RefundClaimed" }

type PayoutClaimed struct {
	Recipient Address
	Amount    Amount
}

func (PayoutClaimed) Type() string { return "PayoutClaimed" }

type NftClaimed struct {
	AuctionID uint64
	Recipient Address
	TokenID   uint64
}

func (NftClaimed) Type() string { return "NftClaimed" }

// EventManager persists every event a contract emits into a KVStore, keyed
// so List replays them in emission order — the in-process analogue of the
// teacher's ledger-anchored EventManager (core/event_management.go),
// generalized from one global singleton to one instance per contract.
type EventManager struct {
	mu    sync.Mutex
	store KVStore
	seq   uint64
}

// NewEventManager returns an EventManager backed by store. Each contract
// constructor wires its own instance (typically over a fresh
// InMemoryStore) so tests can assert against it without touching another
// contract's log.
func NewEventManager(store KVStore) *EventManager {
	return &EventManager{store: store}
}

// Emit records event under a deterministic, monotonically increasing key.
// Persistence is to an in-process KVStore, so a marshal failure is the only
// realistic error; a Set failure against InMemoryStore cannot occur.
func (m *EventManager) Emit(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type(), err)
	}
	key := []byte(fmt.Sprintf("event:%s:%020d", event.Type(), m.seq))
	m.seq++
	return m.store.Set(key, blob)
}

// List returns the raw JSON payload of every emitted event of typ, in
// emission order.
func (m *EventManager) List(typ string) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it := m.store.Iterator([]byte("event:" + typ + ":"))
	defer it.Close()

	var out [][]byte
	for it.Next() {
		out = append(out, it.Value())
	}
	return out, it.Error()
}
