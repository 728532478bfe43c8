package linetoken

import (
	"testing"
	"time"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"

	"line-exchange/core"
)

// signWithdrawal signs the canonical withdrawal digest with a freshly
// generated sr25519 keypair and returns the public key and signature.
func signWithdrawal(t *testing.T, caller core.Address, amount core.Amount, id core.WithdrawalID, expiryMs uint64) (core.PubKey, core.Signature) {
	t.Helper()

	miniKey, pub, err := schnorrkel.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	secretKey, err := miniKey.ExpandEd25519()
	if err != nil {
		t.Fatalf("expand secret key: %v", err)
	}

	digest := withdrawalHash(caller, amount, id, expiryMs)
	transcript := schnorrkel.NewSigningContext([]byte("substrate"), digest[:])
	sig, err := secretKey.Sign(transcript)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	return core.PubKey(pub.Encode()), core.Signature(sig.Encode())
}

func TestWithdrawSucceedsAndPreventsReplay(t *testing.T) {
	deployer := addr(1)
	dave := addr(5)
	tok := New("Line", "LINE", 18, deployer)

	var id core.WithdrawalID
	id[0] = 0xAA
	expiry := uint64(60_000)
	amount := core.NewAmount(500)

	pub, sig := signWithdrawal(t, dave, amount, id, expiry)
	if err := tok.SetBackendSigner(deployer, &pub); err != nil {
		t.Fatal(err)
	}

	clk := core.NewMockClock()

	ok, err := tok.Withdraw(dave, amount, id, expiry, sig, clk)
	if err != nil || !ok {
		t.Fatalf("withdraw failed: ok=%v err=%v", ok, err)
	}
	if tok.BalanceOf(dave).Cmp(amount) != 0 {
		t.Fatalf("expected dave balance 500")
	}
	if !tok.IsWithdrawalUsed(id) {
		t.Fatalf("expected withdrawal id marked used")
	}

	if _, err := tok.Withdraw(dave, amount, id, expiry, sig, clk); err != core.ErrWithdrawalUsed {
		t.Fatalf("expected ErrWithdrawalUsed on replay, got %v", err)
	}
}

func TestWithdrawRejectsExpired(t *testing.T) {
	deployer := addr(1)
	dave := addr(5)
	tok := New("Line", "LINE", 18, deployer)

	var id core.WithdrawalID
	id[0] = 0xBB
	expiry := uint64(1_000)
	amount := core.NewAmount(10)

	pub, sig := signWithdrawal(t, dave, amount, id, expiry)
	if err := tok.SetBackendSigner(deployer, &pub); err != nil {
		t.Fatal(err)
	}

	clk := core.NewMockClock()
	clk.M.Add(2 * time.Second)

	if _, err := tok.Withdraw(dave, amount, id, expiry, sig, clk); err != core.ErrWithdrawalExpired {
		t.Fatalf("expected ErrWithdrawalExpired, got %v", err)
	}
}

func TestWithdrawRejectsWhenPaused(t *testing.T) {
	deployer := addr(1)
	dave := addr(5)
	tok := New("Line", "LINE", 18, deployer)

	var id core.WithdrawalID
	expiry := uint64(60_000)
	amount := core.NewAmount(10)
	pub, sig := signWithdrawal(t, dave, amount, id, expiry)
	if err := tok.SetBackendSigner(deployer, &pub); err != nil {
		t.Fatal(err)
	}
	if err := tok.PauseWithdrawals(deployer); err != nil {
		t.Fatal(err)
	}

	clk := core.NewMockClock()
	if _, err := tok.Withdraw(dave, amount, id, expiry, sig, clk); err != core.ErrWithdrawalsPaused {
		t.Fatalf("expected ErrWithdrawalsPaused, got %v", err)
	}
}

func TestWithdrawRejectsOverCap(t *testing.T) {
	deployer := addr(1)
	dave := addr(5)
	tok := New("Line", "LINE", 18, deployer)

	var id core.WithdrawalID
	expiry := uint64(60_000)
	amount := core.NewAmount(1000)
	pub, sig := signWithdrawal(t, dave, amount, id, expiry)
	if err := tok.SetBackendSigner(deployer, &pub); err != nil {
		t.Fatal(err)
	}
	cap := core.NewAmount(500)
	if err := tok.SetMaxWithdrawal(deployer, &cap); err != nil {
		t.Fatal(err)
	}

	clk := core.NewMockClock()
	if _, err := tok.Withdraw(dave, amount, id, expiry, sig, clk); err != core.ErrExceedsCap {
		t.Fatalf("expected ErrExceedsCap, got %v", err)
	}
}
