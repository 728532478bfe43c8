// Package linetoken implements the LINE fungible credit token: balances,
// allowances, mint/transfer, and the signed-withdrawal path (withdrawal.go).
package linetoken

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"line-exchange/core"
)

// Token is the fungible token contract's entire persistent state, modeled
// as a lifecycle-scoped object per spec.md's design notes rather than
// package-level globals.
type Token struct {
	mu sync.Mutex

	name     string
	symbol   string
	decimals uint8

	balances    map[core.Address]core.Amount
	allowances  map[core.Address]map[core.Address]core.Amount
	totalSupply core.Amount

	minters map[core.Address]struct{}
	admins  map[core.Address]struct{}

	events *core.EventManager

	withdrawalState
}

// New constructs a Token with deployer as the sole initial admin and
// minter, matching the originals' init behavior.
func New(name, symbol string, decimals uint8, deployer core.Address) *Token {
	t := &Token{
		name:        name,
		symbol:      symbol,
		decimals:    decimals,
		balances:    make(map[core.Address]core.Amount),
		allowances:  make(map[core.Address]map[core.Address]core.Amount),
		totalSupply: core.ZeroAmount(),
		minters:     map[core.Address]struct{}{deployer: {}},
		admins:      map[core.Address]struct{}{deployer: {}},
		events:      core.NewEventManager(core.NewInMemoryStore()),
	}
	t.withdrawalState = newWithdrawalState()
	return t
}

// Events returns the token's event log, the public interface an off-chain
// observer subscribes to (spec.md §6).
func (t *Token) Events() *core.EventManager { return t.events }

func (t *Token) Name() string     { return t.name }
func (t *Token) Symbol() string   { return t.symbol }
func (t *Token) Decimals() uint8  { return t.decimals }

// TotalSupply returns Σ balances, maintained as an invariant by every
// mutating method.
func (t *Token) TotalSupply() core.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.totalSupply
}

// BalanceOf returns the balance of addr, or zero if absent.
func (t *Token) BalanceOf(addr core.Address) core.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[addr]
}

// Allowance returns the amount spender may still pull from owner.
func (t *Token) Allowance(owner, spender core.Address) core.Amount {
	t.mu.Lock()
	defer t.mu.Unlock()
	inner, ok := t.allowances[owner]
	if !ok {
		return core.ZeroAmount()
	}
	return inner[spender]
}

func (t *Token) IsMinter(addr core.Address) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.minters[addr]
	return ok
}

func (t *Token) IsAdmin(addr core.Address) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.admins[addr]
	return ok
}

func (t *Token) Admins() []core.Address {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Address, 0, len(t.admins))
	for a := range t.admins {
		out = append(out, a)
	}
	return out
}

func (t *Token) Minters() []core.Address {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Address, 0, len(t.minters))
	for a := range t.minters {
		out = append(out, a)
	}
	return out
}

// addBalance increments balances[addr] by v, checking for overflow. Caller
// must hold t.mu.
func (t *Token) addBalance(addr core.Address, v core.Amount) error {
	sum, overflow := t.balances[addr].Add(v)
	if overflow {
		return core.ErrOverflow
	}
	t.balances[addr] = sum
	return nil
}

// subBalance decrements balances[addr] by v, pruning a zero result, and
// checking for insufficient balance. Caller must hold t.mu.
func (t *Token) subBalance(addr core.Address, v core.Amount) error {
	bal := t.balances[addr]
	if bal.Lt(v) {
		return core.ErrInsufficientBalance
	}
	next, _ := bal.Sub(v)
	if next.IsZero() {
		delete(t.balances, addr)
	} else {
		t.balances[addr] = next
	}
	return nil
}

// Transfer moves value from caller to to. Returns false without mutation if
// value is zero.
func (t *Token) Transfer(caller, to core.Address, value core.Amount) (bool, error) {
	if value.IsZero() {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.subBalance(caller, value); err != nil {
		return false, err
	}
	if err := t.addBalance(to, value); err != nil {
		// undo the subtraction: the add is the only thing that can still
		// fail after the subtract succeeded, so restore eagerly.
		_ = t.addBalance(caller, value)
		return false, err
	}

	log.WithFields(log.Fields{"token": t.symbol, "from": caller.Hex(), "to": to.Hex(), "value": value.String()}).Info("transfer")
	_ = t.events.Emit(core.Transfer{From: caller, To: to, Value: value})
	return true, nil
}

// Approve overwrites the (caller, spender) allowance entry. value == 0
// clears it. Always returns true.
func (t *Token) Approve(caller, spender core.Address, value core.Amount) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if value.IsZero() {
		if inner, ok := t.allowances[caller]; ok {
			delete(inner, spender)
			if len(inner) == 0 {
				delete(t.allowances, caller)
			}
		}
	} else {
		inner, ok := t.allowances[caller]
		if !ok {
			inner = make(map[core.Address]core.Amount)
			t.allowances[caller] = inner
		}
		inner[spender] = value
	}

	log.WithFields(log.Fields{"token": t.symbol, "owner": caller.Hex(), "spender": spender.Hex(), "value": value.String()}).Info("approve")
	_ = t.events.Emit(core.Approval{Owner: caller, Spender: spender, Value: value})
	return true, nil
}

// TransferFrom moves value from from to to, spending caller's allowance.
// The allowance is decremented before the balance move per spec.md's
// check-effects-interactions discipline.
func (t *Token) TransferFrom(caller, from, to core.Address, value core.Amount) (bool, error) {
	if value.IsZero() {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	inner := t.allowances[from]
	allowed := core.ZeroAmount()
	if inner != nil {
		allowed = inner[caller]
	}
	if allowed.Lt(value) {
		return false, core.ErrInsufficientAllowance
	}

	remaining, _ := allowed.Sub(value)
	if remaining.IsZero() {
		delete(inner, caller)
		if len(inner) == 0 {
			delete(t.allowances, from)
		}
	} else {
		inner[caller] = remaining
	}

	if err := t.subBalance(from, value); err != nil {
		// restore the allowance: nothing committed yet besides the
		// allowance edit above.
		if t.allowances[from] == nil {
			t.allowances[from] = make(map[core.Address]core.Amount)
		}
		t.allowances[from][caller] = allowed
		return false, err
	}
	if err := t.addBalance(to, value); err != nil {
		_ = t.addBalance(from, value)
		if t.allowances[from] == nil {
			t.allowances[from] = make(map[core.Address]core.Amount)
		}
		t.allowances[from][caller] = allowed
		return false, err
	}

	log.WithFields(log.Fields{"token": t.symbol, "from": from.Hex(), "to": to.Hex(), "spender": caller.Hex(), "value": value.String()}).Info("transfer_from")
	_ = t.events.Emit(core.Transfer{From: from, To: to, Value: value})
	return true, nil
}

// Mint credits value to to. caller must be a minter. Returns false without
// mutation if value is zero.
func (t *Token) Mint(caller, to core.Address, value core.Amount) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.minters[caller]; !ok {
		return false, core.ErrNotMinter
	}
	if value.IsZero() {
		return false, nil
	}

	newSupply, overflow := t.totalSupply.Add(value)
	if overflow {
		return false, core.ErrOverflow
	}
	if err := t.addBalance(to, value); err != nil {
		return false, err
	}
	t.totalSupply = newSupply

	log.WithFields(log.Fields{"token": t.symbol, "to": to.Hex(), "value": value.String()}).Info("mint")
	_ = t.events.Emit(core.Minted{To: to, Value: value})
	return true, nil
}

func (t *Token) requireAdmin(caller core.Address) error {
	if _, ok := t.admins[caller]; !ok {
		return core.ErrNotAdmin
	}
	return nil
}

// AddMinter admin-gates a new minter. Idempotent.
func (t *Token) AddMinter(caller, minter core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	t.minters[minter] = struct{}{}
	return nil
}

// RemoveMinter admin-gates minter removal. The minter set may legitimately
// become empty. Idempotent.
func (t *Token) RemoveMinter(caller, minter core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	delete(t.minters, minter)
	return nil
}

// AddAdmin admin-gates a new admin. Idempotent.
func (t *Token) AddAdmin(caller, admin core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	t.admins[admin] = struct{}{}
	return nil
}

// RemoveAdmin admin-gates admin removal. The admin set must never become
// empty.
func (t *Token) RemoveAdmin(caller, admin core.Address) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.requireAdmin(caller); err != nil {
		return err
	}
	if len(t.admins) <= 1 {
		if _, ok := t.admins[admin]; ok {
			return core.ErrLastAdmin
		}
	}
	delete(t.admins, admin)
	return nil
}
