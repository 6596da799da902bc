// Package token exposes the public contract surface: the ownership
// operations of the ledger plus the metadata query, with safe transfers
// gated by the recipient acknowledgement protocol.
package token

import (
	"errors"
	"fmt"

	"github.com/artmint/go-artmint/artwork"
	"github.com/artmint/go-artmint/entropy"
	"github.com/artmint/go-artmint/ledger"
	"github.com/artmint/go-artmint/metadata"
)

// Magic is the 4-byte acknowledgement a code-bearing recipient must
// return from OnAssetReceived to accept a safe transfer.
var Magic = [4]byte{0x15, 0x0b, 0x7a, 0x02}

// Receiver is the callback a code-bearing recipient exposes. Returning
// anything other than Magic, or returning an error, rejects the
// transfer.
type Receiver interface {
	OnAssetReceived(operator ledger.Address, id uint64, data []byte) ([4]byte, error)
}

// Host is the execution-environment capability for recipient
// introspection: whether an identity is code-bearing, and if so, its
// receiver callback.
type Host interface {
	IsContract(addr ledger.Address) bool
	Receiver(addr ledger.Address) Receiver
}

// Token combines the ledger with seed derivation and metadata assembly.
type Token struct {
	name   string
	symbol string
	self   ledger.Address
	ledger *ledger.Ledger
	source entropy.Source
	host   Host
}

// New creates a token contract over lgr. self is the ledger's own
// identity and feeds seed derivation; host may be nil when no recipient
// is ever code-bearing.
func New(name, symbol string, self ledger.Address, lgr *ledger.Ledger, source entropy.Source, host Host) *Token {
	return &Token{
		name:   name,
		symbol: symbol,
		self:   self,
		ledger: lgr,
		source: source,
		host:   host,
	}
}

// Name returns the collection name.
func (t *Token) Name() string { return t.name }

// Symbol returns the collection symbol.
func (t *Token) Symbol() string { return t.symbol }

// Ledger returns the underlying ownership ledger.
func (t *Token) Ledger() *ledger.Ledger { return t.ledger }

// Mint assigns the next asset to caller.
func (t *Token) Mint(caller ledger.Address) (uint64, error) {
	return t.ledger.Mint(caller)
}

// BalanceOf returns caller-visible balance for owner.
func (t *Token) BalanceOf(owner ledger.Address) (uint64, error) {
	return t.ledger.BalanceOf(owner)
}

// OwnerOf returns the current owner of id.
func (t *Token) OwnerOf(id uint64) (ledger.Address, error) {
	return t.ledger.OwnerOf(id)
}

// GetApproved returns the delegate for id.
func (t *Token) GetApproved(id uint64) (ledger.Address, error) {
	return t.ledger.GetApproved(id)
}

// IsApprovedForAll reports whether operator acts for owner.
func (t *Token) IsApprovedForAll(owner, operator ledger.Address) bool {
	return t.ledger.IsApprovedForAll(owner, operator)
}

// Approve sets the delegate for id.
func (t *Token) Approve(caller, to ledger.Address, id uint64) error {
	return t.ledger.Approve(caller, to, id)
}

// SetApprovalForAll grants or revokes an operator.
func (t *Token) SetApprovalForAll(caller, operator ledger.Address, approved bool) error {
	return t.ledger.SetApprovalForAll(caller, operator, approved)
}

// TransferFrom moves id between identities without the receiver check.
func (t *Token) TransferFrom(caller, from, to ledger.Address, id uint64) error {
	return t.ledger.TransferFrom(caller, from, to, id)
}

// SafeTransferFrom moves id and requires a code-bearing recipient to
// acknowledge receipt with Magic. Recipients without code accept
// unconditionally.
func (t *Token) SafeTransferFrom(caller, from, to ledger.Address, id uint64, data []byte) error {
	return t.ledger.SafeTransferFrom(caller, from, to, id, receiverHook{host: t.host, data: data})
}

// TokenURI derives the asset's seed from the current entropy snapshot
// and returns the assembled metadata document. It never mutates the
// ledger, and because the entropy moves over time the document is only
// reproducible within one snapshot.
func (t *Token) TokenURI(id uint64) (string, error) {
	if _, err := t.ledger.OwnerOf(id); err != nil {
		return "", err
	}
	seed := entropy.DeriveSeed(t.source, id, t.self)
	return metadata.TokenDocument(id, artwork.Select(seed)), nil
}

// receiverHook adapts Host to the ledger's safe-transfer hook.
type receiverHook struct {
	host Host
	data []byte
}

func (h receiverHook) Accept(operator, from, to ledger.Address, id uint64) error {
	if h.host == nil || !h.host.IsContract(to) {
		return nil
	}
	receiver := h.host.Receiver(to)
	if receiver == nil {
		return errors.New("recipient has code but no receiver callback")
	}
	ack, err := receiver.OnAssetReceived(operator, id, h.data)
	if err != nil {
		return fmt.Errorf("receiver callback: %w", err)
	}
	if ack != Magic {
		return fmt.Errorf("wrong acknowledgement %x", ack)
	}
	return nil
}
