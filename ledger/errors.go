package ledger

import "errors"

var (
	// Argument errors
	ErrInvalidAddress  = errors.New("ledger: null identity where a real owner or recipient is required")
	ErrInvalidApproval = errors.New("ledger: approval target is invalid")

	// Lookup errors
	ErrNotFound = errors.New("ledger: asset not minted")

	// Authorization errors
	ErrUnauthorized      = errors.New("ledger: caller is neither owner, delegate, nor approved operator")
	ErrOwnershipMismatch = errors.New("ledger: stated owner does not match recorded owner")

	// Safe-transfer errors
	ErrReceiverRejected = errors.New("ledger: receiver rejected the transfer")
)
