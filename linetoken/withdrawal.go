package linetoken

import (
	"encoding/binary"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"line-exchange/core"
	"line-exchange/internal/sr25519"
)

// withdrawalDomainTag is the 16-byte ASCII domain separator prefixed to
// every withdrawal payload before hashing.
const withdrawalDomainTag = "LINE_WITHDRAW_V1"

// withdrawalState is the subset of Token state dedicated to the signed
// withdrawal path. Embedded into Token so it shares its mutex and lifecycle.
type withdrawalState struct {
	backendSignerPubKey *core.PubKey
	usedWithdrawals     map[core.WithdrawalID]struct{}
	withdrawalsPaused   bool
	maxWithdrawalPerTx  *core.Amount
}

func newWithdrawalState() withdrawalState {
	return withdrawalState{
		usedWithdrawals: make(map[core.WithdrawalID]struct{}),
	}
}

// withdrawalPayload builds the canonical byte string spec.md §4.2 defines:
// domain tag (16) ∥ caller (32) ∥ amount big-endian (32) ∥ withdrawal_id
// (32) ∥ expiry big-endian u64 (8) = 120 bytes.
func withdrawalPayload(caller core.Address, amount core.Amount, id core.WithdrawalID, expiryMs uint64) []byte {
	buf := make([]byte, 0, 16+32+32+32+8)
	buf = append(buf, withdrawalDomainTag...)
	buf = append(buf, caller[:]...)
	amtBytes := amount.Bytes32()
	buf = append(buf, amtBytes[:]...)
	buf = append(buf, id[:]...)
	var expiryBuf [8]byte
	binary.BigEndian.PutUint64(expiryBuf[:], expiryMs)
	buf = append(buf, expiryBuf[:]...)
	return buf
}

// withdrawalHash hashes the canonical payload with Blake2b-256.
func withdrawalHash(caller core.Address, amount core.Amount, id core.WithdrawalID, expiryMs uint64) [32]byte {
	return blake2b.Sum256(withdrawalPayload(caller, amount, id, expiryMs))
}

// Withdraw lets the authenticated caller mint themselves amount, authorized
// by a detached sr25519 signature from the configured backend signer.
// Preconditions are checked in the order spec.md §4.2 lists; all are fatal.
func (t *Token) Withdraw(caller core.Address, amount core.Amount, id core.WithdrawalID, expiryMs uint64, sig core.Signature, now core.Clock) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.withdrawalsPaused {
		return false, core.ErrWithdrawalsPaused
	}
	if now.NowMs() > expiryMs {
		return false, core.ErrWithdrawalExpired
	}
	if _, used := t.usedWithdrawals[id]; used {
		return false, core.ErrWithdrawalUsed
	}
	if t.backendSignerPubKey == nil {
		return false, core.ErrSignerNotConfigured
	}
	if t.maxWithdrawalPerTx != nil && amount.Gt(*t.maxWithdrawalPerTx) {
		return false, core.ErrExceedsCap
	}

	digest := withdrawalHash(caller, amount, id, expiryMs)
	ok, err := sr25519.Verify(*t.backendSignerPubKey, digest[:], sig)
	if err != nil {
		return false, core.ErrMalformedKeyOrSig
	}
	if !ok {
		return false, core.ErrInvalidSignature
	}

	// Mark the nonce used before minting; a failed mint removes the mark
	// again so the returned error leaves no state change.
	t.usedWithdrawals[id] = struct{}{}

	newSupply, overflow := t.totalSupply.Add(amount)
	if overflow {
		delete(t.usedWithdrawals, id)
		return false, core.ErrOverflow
	}
	if err := t.addBalance(caller, amount); err != nil {
		delete(t.usedWithdrawals, id)
		return false, err
	}
	t.totalSupply = newSupply

	log.WithFields(log.Fields{"token": t.symbol, "to": caller.Hex(), "amount": amount.String(), "withdrawal_id": id.Hex()}).Info("withdrawal executed")
	_ = t.events.Emit(core.WithdrawalExecuted{To: caller, Amount: amount, WithdrawalID: id})
	return true, nil
}

// IsWithdrawalUsed reports whether id has already been consumed.
func (t *Token) IsWithdrawalUsed(id core.WithdrawalID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.usedWithdrawals[id]
	return ok
}

// WithdrawalsPaused reports the current pause state.
func (t *Token) WithdrawalsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.withdrawalsPaused
}

// MaxWithdrawal returns the configured cap, if any.
func (t *Token) MaxWithdrawal() (core.Amount, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.maxWithdrawalPerTx == nil {
		return core.ZeroAmount(), false
	}
	return *t.maxWithdrawalPerTx, true
}

// BackendSigner returns the configured signer public key, if any.
func (t *Token) BackendSigner() (core.PubKey, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.backendSignerPubKey == nil {
		return core.PubKey{}, false
	}
	return *t.backendSignerPubKey, true
}

// SetBackendSigner admin-gates configuring (or clearing) the backend signer
// public key. A nil/zero key disables withdrawal by design (spec.md §3).
func (t *Token) SetBackendSigner(caller core.Address, pub *core.PubKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	if pub != nil && *pub == (core.PubKey{}) {
		pub = nil
	}
	t.backendSignerPubKey = pub
	return nil
}

// PauseWithdrawals admin-gates pausing.
func (t *Token) PauseWithdrawals(caller core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	t.withdrawalsPaused = true
	return nil
}

// UnpauseWithdrawals admin-gates resuming.
func (t *Token) UnpauseWithdrawals(caller core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	t.withdrawalsPaused = false
	return nil
}

// SetMaxWithdrawal admin-gates configuring (or clearing) the per-tx cap.
func (t *Token) SetMaxWithdrawal(caller core.Address, max *core.Amount) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	t.maxWithdrawalPerTx = max
	return nil
}
