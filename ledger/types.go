// Package ledger maintains the authoritative ownership record for
// uniquely identified assets: asset to owner, owner to balance, per-asset
// delegates, and owner-scoped operator approvals. All mutating
// operations check every precondition before touching state, so a failed
// call never leaves a partial mutation behind.
package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address identifies a participant. The zero value is the null identity
// and never owns an asset.
type Address [20]byte

// ZeroAddress is the null identity.
var ZeroAddress Address

// IsZero reports whether a is the null identity.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Hex returns the 0x-prefixed lowercase hex form of the address.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (a Address) String() string {
	return a.Hex()
}

// ParseAddress parses a 40-hex-digit address, with or without a 0x
// prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return ZeroAddress, fmt.Errorf("parse address %q: %w", s, err)
	}
	if len(raw) != len(Address{}) {
		return ZeroAddress, fmt.Errorf("parse address %q: need %d bytes, got %d", s, len(Address{}), len(raw))
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

// Event is a ledger state-change notification.
type Event interface {
	// Kind returns the stable notification name.
	Kind() string
}

// TransferEvent records an ownership change, including mints (From is
// the null identity).
type TransferEvent struct {
	From    Address
	To      Address
	TokenID uint64
}

func (TransferEvent) Kind() string { return "transfer" }

// ApprovalEvent records a delegate change for one asset.
type ApprovalEvent struct {
	Owner    Address
	Approved Address
	TokenID  uint64
}

func (ApprovalEvent) Kind() string { return "approval" }

// ApprovalForAllEvent records an operator grant or revocation.
type ApprovalForAllEvent struct {
	Owner    Address
	Operator Address
	Approved bool
}

func (ApprovalForAllEvent) Kind() string { return "approval_for_all" }

// Sink receives events emitted by successful mutations. Emit is called
// after the mutation has fully settled and, for safe transfers, after
// the receiver accepted.
type Sink interface {
	Emit(Event)
}

// Hook confirms that a recipient accepts an incoming asset during a safe
// transfer. It runs after ownership has moved; a non-nil error reverts
// the transfer.
type Hook interface {
	Accept(operator, from, to Address, id uint64) error
}
