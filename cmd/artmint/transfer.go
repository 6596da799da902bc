package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/artmint/go-artmint/entropy"
	"github.com/artmint/go-artmint/ledger"
	"github.com/artmint/go-artmint/token"
)

// plainHost is the CLI's recipient-introspection capability: no identity
// reachable from the command line bears code, so safe transfers accept
// unconditionally.
type plainHost struct{}

func (plainHost) IsContract(ledger.Address) bool { return false }

func (plainHost) Receiver(ledger.Address) token.Receiver { return nil }

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	callerHex := fs.String("caller", "", "calling identity (hex address)")
	fromHex := fs.String("from", "", "current owner (hex address)")
	toHex := fs.String("to", "", "recipient (hex address)")
	id := fs.Uint64("id", 0, "asset identifier")
	safe := fs.Bool("safe", false, "run the safe-transfer receiver check")
	eventsPath := fs.String("events", "", "append emitted events to this JSONL file")
	fs.Parse(args)

	caller, err := parseAddr("caller", *callerHex)
	if err != nil {
		return err
	}
	from, err := parseAddr("from", *fromHex)
	if err != nil {
		return err
	}
	to, err := parseAddr("to", *toHex)
	if err != nil {
		return err
	}

	self, err := ledger.ParseAddress(defaultSelf)
	if err != nil {
		return err
	}

	return withLedger(*db, *eventsPath, func(lgr *ledger.Ledger) error {
		if *safe {
			tok := token.New("Artmint", "ART", self, lgr, entropy.NewSystem(15*time.Second), plainHost{})
			err = tok.SafeTransferFrom(caller, from, to, *id, nil)
		} else {
			err = lgr.TransferFrom(caller, from, to, *id)
		}
		if err != nil {
			return err
		}
		fmt.Printf("asset %d: %s -> %s\n", *id, from.Hex(), to.Hex())
		return nil
	})
}
