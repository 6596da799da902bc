package ledger

import (
	"fmt"
	"sync"
)

// Ledger is the in-memory ownership record. All operations are safe for
// concurrent use; mutations take the write lock for their full duration,
// including the receiver hook of a safe transfer, so no caller observes
// an intermediate state.
type Ledger struct {
	mu        sync.RWMutex
	owners    map[uint64]Address
	balances  map[Address]uint64
	delegates map[uint64]Address
	operators map[Address]map[Address]bool
	nextID    uint64
	sink      Sink
}

// New creates an empty ledger with the next asset identifier at 1.
func New() *Ledger {
	return &Ledger{
		owners:    make(map[uint64]Address),
		balances:  make(map[Address]uint64),
		delegates: make(map[uint64]Address),
		operators: make(map[Address]map[Address]bool),
		nextID:    1,
	}
}

// SetSink installs the event sink. Pass nil to silence notifications.
func (l *Ledger) SetSink(sink Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = sink
}

func (l *Ledger) emit(ev Event) {
	if l.sink != nil {
		l.sink.Emit(ev)
	}
}

// NextID returns the identifier the next mint will assign.
func (l *Ledger) NextID() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.nextID
}

// BalanceOf returns how many assets owner holds, zero if none.
func (l *Ledger) BalanceOf(owner Address) (uint64, error) {
	if owner.IsZero() {
		return 0, ErrInvalidAddress
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[owner], nil
}

// OwnerOf returns the current owner of id.
func (l *Ledger) OwnerOf(id uint64) (Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	owner, ok := l.owners[id]
	if !ok {
		return ZeroAddress, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return owner, nil
}

// GetApproved returns the delegate for id, which may be the null
// identity when no delegate is set.
func (l *Ledger) GetApproved(id uint64) (Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if _, ok := l.owners[id]; !ok {
		return ZeroAddress, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return l.delegates[id], nil
}

// IsApprovedForAll reports whether operator may act on all of owner's
// assets.
func (l *Ledger) IsApprovedForAll(owner, operator Address) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.operators[owner][operator]
}

// Mint assigns the next identifier to caller and records ownership.
func (l *Ledger) Mint(caller Address) (uint64, error) {
	if caller.IsZero() {
		return 0, ErrInvalidAddress
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.owners[id] = caller
	l.balances[caller]++

	l.emit(TransferEvent{From: ZeroAddress, To: caller, TokenID: id})
	return id, nil
}

// Approve sets to as the delegate for id; the null identity clears it.
// Only the owner or one of the owner's operators may call it, and the
// current owner cannot be made its own delegate.
func (l *Ledger) Approve(caller, to Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[id]
	if !ok {
		return fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	if to == owner {
		return fmt.Errorf("%w: delegate equals current owner", ErrInvalidApproval)
	}
	if caller != owner && !l.operators[owner][caller] {
		return ErrUnauthorized
	}

	if to.IsZero() {
		delete(l.delegates, id)
	} else {
		l.delegates[id] = to
	}
	l.emit(ApprovalEvent{Owner: owner, Approved: to, TokenID: id})
	return nil
}

// SetApprovalForAll grants or revokes operator rights over every asset
// caller owns, now and in the future.
func (l *Ledger) SetApprovalForAll(caller, operator Address, approved bool) error {
	if operator == caller {
		return fmt.Errorf("%w: operator equals caller", ErrInvalidApproval)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	grants := l.operators[caller]
	if grants == nil {
		grants = make(map[Address]bool)
		l.operators[caller] = grants
	}
	grants[operator] = approved

	l.emit(ApprovalForAllEvent{Owner: caller, Operator: operator, Approved: approved})
	return nil
}

// TransferFrom moves id from from to to. The caller must be the owner,
// the asset's delegate, or an approved operator of the owner. The
// asset's delegate is cleared on success.
func (l *Ledger) TransferFrom(caller, from, to Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.transferLocked(caller, from, to, id); err != nil {
		return err
	}
	l.emit(TransferEvent{From: from, To: to, TokenID: id})
	return nil
}

// SafeTransferFrom performs TransferFrom and then asks hook to confirm
// the recipient accepts the asset. If the hook reports rejection the
// transfer is rolled back and ErrReceiverRejected is returned; the
// ledger is left exactly as it was before the call.
func (l *Ledger) SafeTransferFrom(caller, from, to Address, id uint64, hook Hook) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delegate := l.delegates[id]
	if err := l.transferLocked(caller, from, to, id); err != nil {
		return err
	}

	if hook != nil {
		if err := hook.Accept(caller, from, to, id); err != nil {
			// Revert: restore ownership, balances, and the delegate.
			l.owners[id] = from
			l.balances[to]--
			if l.balances[to] == 0 {
				delete(l.balances, to)
			}
			l.balances[from]++
			if !delegate.IsZero() {
				l.delegates[id] = delegate
			}
			return fmt.Errorf("%w: %v", ErrReceiverRejected, err)
		}
	}

	l.emit(TransferEvent{From: from, To: to, TokenID: id})
	return nil
}

// transferLocked validates and applies a transfer. Every check runs
// before the first write.
func (l *Ledger) transferLocked(caller, from, to Address, id uint64) error {
	owner, ok := l.owners[id]
	if !ok {
		return fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	// An unset delegate is the zero value; it must never authorize the
	// null identity as caller.
	delegate := l.delegates[id]
	if caller != owner && (delegate.IsZero() || caller != delegate) && !l.operators[owner][caller] {
		return ErrUnauthorized
	}
	if owner != from {
		return fmt.Errorf("%w: asset %d is owned by %s, not %s", ErrOwnershipMismatch, id, owner.Hex(), from.Hex())
	}
	if to.IsZero() {
		return ErrInvalidAddress
	}

	delete(l.delegates, id)
	l.balances[from]--
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	l.balances[to]++
	l.owners[id] = to
	return nil
}
