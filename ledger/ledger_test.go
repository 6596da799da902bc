package ledger

import (
	"errors"
	"testing"
)

var (
	alice = addr(0xa1)
	bob   = addr(0xb2)
	carol = addr(0xc3)
)

func addr(b byte) Address {
	var a Address
	a[19] = b
	return a
}

// sumBalances totals every tracked balance.
func sumBalances(l *Ledger) uint64 {
	var total uint64
	for _, balance := range l.balances {
		total += balance
	}
	return total
}

func checkInvariant(t *testing.T, l *Ledger) {
	t.Helper()
	if got, want := sumBalances(l), l.NextID()-1; got != want {
		t.Errorf("balance sum = %d, want %d (minted count)", got, want)
	}
}

func TestMint(t *testing.T) {
	l := New()

	id, err := l.Mint(alice)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if id != 1 {
		t.Errorf("first mint id = %d, want 1", id)
	}

	owner, err := l.OwnerOf(id)
	if err != nil {
		t.Fatalf("OwnerOf failed: %v", err)
	}
	if owner != alice {
		t.Errorf("owner = %s, want %s", owner, alice)
	}

	balance, err := l.BalanceOf(alice)
	if err != nil {
		t.Fatalf("BalanceOf failed: %v", err)
	}
	if balance != 1 {
		t.Errorf("balance = %d, want 1", balance)
	}

	if id2, _ := l.Mint(alice); id2 != 2 {
		t.Errorf("second mint id = %d, want 2", id2)
	}
	checkInvariant(t, l)
}

func TestMintNullCaller(t *testing.T) {
	l := New()
	if _, err := l.Mint(ZeroAddress); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("Mint(zero) error = %v, want ErrInvalidAddress", err)
	}
	if l.NextID() != 1 {
		t.Error("failed mint advanced the identifier counter")
	}
}

func TestBalanceOfNullOwner(t *testing.T) {
	l := New()
	if _, err := l.BalanceOf(ZeroAddress); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("BalanceOf(zero) error = %v, want ErrInvalidAddress", err)
	}
}

func TestBalanceOfDefaultsToZero(t *testing.T) {
	l := New()
	balance, err := l.BalanceOf(bob)
	if err != nil {
		t.Fatalf("BalanceOf failed: %v", err)
	}
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestUnmintedLookupsFail(t *testing.T) {
	l := New()
	l.Mint(alice)

	for _, id := range []uint64{0, 2, 99} {
		if _, err := l.OwnerOf(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("OwnerOf(%d) error = %v, want ErrNotFound", id, err)
		}
		if _, err := l.GetApproved(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetApproved(%d) error = %v, want ErrNotFound", id, err)
		}
		if err := l.TransferFrom(alice, alice, bob, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("TransferFrom(%d) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestApprove(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	if err := l.Approve(alice, bob, id); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	delegate, err := l.GetApproved(id)
	if err != nil {
		t.Fatalf("GetApproved failed: %v", err)
	}
	if delegate != bob {
		t.Errorf("delegate = %s, want %s", delegate, bob)
	}
}

func TestApproveOwnerRejected(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	if err := l.Approve(alice, alice, id); !errors.Is(err, ErrInvalidApproval) {
		t.Errorf("approving the owner: error = %v, want ErrInvalidApproval", err)
	}
}

func TestApproveUnauthorized(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	if err := l.Approve(bob, carol, id); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("stranger approve: error = %v, want ErrUnauthorized", err)
	}
}

func TestApproveByOperator(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	if err := l.SetApprovalForAll(alice, bob, true); err != nil {
		t.Fatalf("SetApprovalForAll failed: %v", err)
	}
	if err := l.Approve(bob, carol, id); err != nil {
		t.Errorf("operator approve failed: %v", err)
	}
}

func TestSetApprovalForAll(t *testing.T) {
	l := New()

	if err := l.SetApprovalForAll(alice, bob, true); err != nil {
		t.Fatalf("SetApprovalForAll failed: %v", err)
	}
	if !l.IsApprovedForAll(alice, bob) {
		t.Error("grant not recorded")
	}
	if l.IsApprovedForAll(alice, carol) {
		t.Error("ungranted operator reported approved")
	}

	l.SetApprovalForAll(alice, bob, false)
	if l.IsApprovedForAll(alice, bob) {
		t.Error("revoked grant still reported approved")
	}
}

func TestSetApprovalForAllSelf(t *testing.T) {
	l := New()
	if err := l.SetApprovalForAll(alice, alice, true); !errors.Is(err, ErrInvalidApproval) {
		t.Errorf("self-approval: error = %v, want ErrInvalidApproval", err)
	}
}

func TestTransferFrom(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.Approve(alice, carol, id)

	if err := l.TransferFrom(alice, alice, bob, id); err != nil {
		t.Fatalf("TransferFrom failed: %v", err)
	}

	owner, _ := l.OwnerOf(id)
	if owner != bob {
		t.Errorf("owner = %s, want %s", owner, bob)
	}
	aliceBalance, _ := l.BalanceOf(alice)
	bobBalance, _ := l.BalanceOf(bob)
	if aliceBalance != 0 || bobBalance != 1 {
		t.Errorf("balances = %d/%d, want 0/1", aliceBalance, bobBalance)
	}

	// Delegate is cleared by every successful transfer.
	delegate, _ := l.GetApproved(id)
	if !delegate.IsZero() {
		t.Errorf("delegate after transfer = %s, want null", delegate)
	}
	checkInvariant(t, l)
}

func TestTransferFromUnauthorized(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	err := l.TransferFrom(carol, alice, bob, id)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("stranger transfer: error = %v, want ErrUnauthorized", err)
	}

	owner, _ := l.OwnerOf(id)
	if owner != alice {
		t.Error("failed transfer changed ownership")
	}
	if balance, _ := l.BalanceOf(alice); balance != 1 {
		t.Error("failed transfer changed balances")
	}
}

func TestTransferFromByDelegate(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.Approve(alice, carol, id)

	if err := l.TransferFrom(carol, alice, bob, id); err != nil {
		t.Errorf("delegate transfer failed: %v", err)
	}
}

func TestTransferFromByOperator(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.SetApprovalForAll(alice, carol, true)

	if err := l.TransferFrom(carol, alice, bob, id); err != nil {
		t.Errorf("operator transfer failed: %v", err)
	}
}

func TestTransferFromOwnershipMismatch(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	if err := l.TransferFrom(alice, bob, carol, id); !errors.Is(err, ErrOwnershipMismatch) {
		t.Errorf("wrong from: error = %v, want ErrOwnershipMismatch", err)
	}
}

func TestTransferFromNullRecipient(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	if err := l.TransferFrom(alice, alice, ZeroAddress, id); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("null recipient: error = %v, want ErrInvalidAddress", err)
	}
	owner, _ := l.OwnerOf(id)
	if owner != alice {
		t.Error("failed transfer changed ownership")
	}
}

func TestTransferFromNullCaller(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	// No delegate is set; the null identity must not match the unset
	// delegate slot.
	if err := l.TransferFrom(ZeroAddress, alice, bob, id); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("null caller transfer: error = %v, want ErrUnauthorized", err)
	}
	if err := l.SafeTransferFrom(ZeroAddress, alice, bob, id, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("null caller safe transfer: error = %v, want ErrUnauthorized", err)
	}

	owner, _ := l.OwnerOf(id)
	if owner != alice {
		t.Errorf("owner = %s, want %s", owner, alice)
	}
	if balance, _ := l.BalanceOf(alice); balance != 1 {
		t.Error("unauthorized transfer changed balances")
	}
}

func TestTransferAuthorityEndsWhenDelegateCleared(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.Approve(alice, carol, id)

	// The successful transfer clears carol's delegation.
	if err := l.TransferFrom(carol, alice, bob, id); err != nil {
		t.Fatalf("delegate transfer failed: %v", err)
	}
	if err := l.TransferFrom(carol, bob, alice, id); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("former delegate retransfer: error = %v, want ErrUnauthorized", err)
	}
	owner, _ := l.OwnerOf(id)
	if owner != bob {
		t.Error("retransfer by former delegate moved the asset")
	}
}

func TestApproveNullClearsDelegate(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.Approve(alice, bob, id)

	if err := l.Approve(alice, ZeroAddress, id); err != nil {
		t.Fatalf("clearing approval failed: %v", err)
	}
	delegate, _ := l.GetApproved(id)
	if !delegate.IsZero() {
		t.Errorf("delegate = %s, want null", delegate)
	}

	// An explicit clear must not leave a null delegate that authorizes
	// the null identity.
	if err := l.TransferFrom(ZeroAddress, alice, bob, id); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("null caller after clear: error = %v, want ErrUnauthorized", err)
	}
}

type hookFunc func(operator, from, to Address, id uint64) error

func (f hookFunc) Accept(operator, from, to Address, id uint64) error {
	return f(operator, from, to, id)
}

func TestSafeTransferFromAccepted(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	var sawOperator Address
	hook := hookFunc(func(operator, from, to Address, hookID uint64) error {
		sawOperator = operator
		// The hook observes the settled post-transfer state.
		if owner := l.owners[hookID]; owner != to {
			t.Errorf("hook saw owner %s, want %s", owner, to)
		}
		return nil
	})

	if err := l.SafeTransferFrom(alice, alice, bob, id, hook); err != nil {
		t.Fatalf("SafeTransferFrom failed: %v", err)
	}
	if sawOperator != alice {
		t.Errorf("hook operator = %s, want %s", sawOperator, alice)
	}
	owner, _ := l.OwnerOf(id)
	if owner != bob {
		t.Errorf("owner = %s, want %s", owner, bob)
	}
}

func TestSafeTransferFromRejectedRevertsEverything(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)
	l.Approve(alice, carol, id)

	reject := hookFunc(func(_, _, _ Address, _ uint64) error {
		return errors.New("no thanks")
	})

	err := l.SafeTransferFrom(alice, alice, bob, id, reject)
	if !errors.Is(err, ErrReceiverRejected) {
		t.Fatalf("rejected transfer: error = %v, want ErrReceiverRejected", err)
	}

	owner, _ := l.OwnerOf(id)
	if owner != alice {
		t.Errorf("owner after revert = %s, want %s", owner, alice)
	}
	aliceBalance, _ := l.BalanceOf(alice)
	bobBalance, _ := l.BalanceOf(bob)
	if aliceBalance != 1 || bobBalance != 0 {
		t.Errorf("balances after revert = %d/%d, want 1/0", aliceBalance, bobBalance)
	}
	delegate, _ := l.GetApproved(id)
	if delegate != carol {
		t.Errorf("delegate after revert = %s, want %s", delegate, carol)
	}
	checkInvariant(t, l)
}

func TestSafeTransferFromNilHook(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	if err := l.SafeTransferFrom(alice, alice, bob, id, nil); err != nil {
		t.Errorf("nil hook transfer failed: %v", err)
	}
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) Emit(ev Event) { s.events = append(s.events, ev) }

func TestEventEmission(t *testing.T) {
	l := New()
	sink := &recordingSink{}
	l.SetSink(sink)

	id, _ := l.Mint(alice)
	l.Approve(alice, bob, id)
	l.SetApprovalForAll(alice, carol, true)
	l.TransferFrom(alice, alice, bob, id)

	kinds := make([]string, len(sink.events))
	for i, ev := range sink.events {
		kinds[i] = ev.Kind()
	}
	want := []string{"transfer", "approval", "approval_for_all", "transfer"}
	if len(kinds) != len(want) {
		t.Fatalf("got %d events, want %d", len(kinds), len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d kind = %q, want %q", i, kinds[i], want[i])
		}
	}

	mint, ok := sink.events[0].(TransferEvent)
	if !ok || !mint.From.IsZero() || mint.To != alice || mint.TokenID != id {
		t.Errorf("mint event = %+v, want null->alice id %d", sink.events[0], id)
	}
}

func TestNoEventOnRejectedSafeTransfer(t *testing.T) {
	l := New()
	id, _ := l.Mint(alice)

	sink := &recordingSink{}
	l.SetSink(sink)

	reject := hookFunc(func(_, _, _ Address, _ uint64) error {
		return errors.New("rejected")
	})
	l.SafeTransferFrom(alice, alice, bob, id, reject)

	if len(sink.events) != 0 {
		t.Errorf("rejected safe transfer emitted %d events, want 0", len(sink.events))
	}
}

func TestBalanceSumInvariantAcrossWorkload(t *testing.T) {
	l := New()
	l.Mint(alice)
	l.Mint(alice)
	l.Mint(bob)
	l.TransferFrom(alice, alice, carol, 1)
	l.SetApprovalForAll(carol, alice, true)
	l.TransferFrom(alice, carol, bob, 1)
	checkInvariant(t, l)

	var total uint64
	for _, owner := range []Address{alice, bob, carol} {
		balance, _ := l.BalanceOf(owner)
		total += balance
	}
	if total != 3 {
		t.Errorf("balances total %d, want 3", total)
	}
}
