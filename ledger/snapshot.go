package ledger

// State is a fully-settled copy of a ledger, suitable for persistence.
// Balances are not carried: they are derivable from Owners and are
// rebuilt on restore, which keeps the balance-sum invariant true by
// construction.
type State struct {
	NextID    uint64
	Owners    map[uint64]Address
	Delegates map[uint64]Address
	Operators map[Address][]Address
}

// Snapshot copies the current ledger state.
func (l *Ledger) Snapshot() State {
	l.mu.RLock()
	defer l.mu.RUnlock()

	owners := make(map[uint64]Address, len(l.owners))
	for id, owner := range l.owners {
		owners[id] = owner
	}

	delegates := make(map[uint64]Address, len(l.delegates))
	for id, delegate := range l.delegates {
		delegates[id] = delegate
	}

	operators := make(map[Address][]Address)
	for owner, grants := range l.operators {
		for operator, approved := range grants {
			if approved {
				operators[owner] = append(operators[owner], operator)
			}
		}
	}

	return State{
		NextID:    l.nextID,
		Owners:    owners,
		Delegates: delegates,
		Operators: operators,
	}
}

// FromState builds a ledger from a snapshot, rebuilding balances by
// counting owned assets.
func FromState(state State) *Ledger {
	l := New()
	if state.NextID > 0 {
		l.nextID = state.NextID
	}
	for id, owner := range state.Owners {
		l.owners[id] = owner
		l.balances[owner]++
	}
	for id, delegate := range state.Delegates {
		if !delegate.IsZero() {
			l.delegates[id] = delegate
		}
	}
	for owner, operators := range state.Operators {
		grants := make(map[Address]bool, len(operators))
		for _, operator := range operators {
			grants[operator] = true
		}
		l.operators[owner] = grants
	}
	return l
}
