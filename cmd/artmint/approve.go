package main

import (
	"flag"
	"fmt"

	"github.com/artmint/go-artmint/ledger"
)

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	callerHex := fs.String("caller", "", "calling identity (hex address)")
	toHex := fs.String("to", "", "delegate (hex address, all-zero clears)")
	id := fs.Uint64("id", 0, "asset identifier")
	eventsPath := fs.String("events", "", "append emitted events to this JSONL file")
	fs.Parse(args)

	caller, err := parseAddr("caller", *callerHex)
	if err != nil {
		return err
	}
	to, err := parseAddr("to", *toHex)
	if err != nil {
		return err
	}

	return withLedger(*db, *eventsPath, func(lgr *ledger.Ledger) error {
		if err := lgr.Approve(caller, to, *id); err != nil {
			return err
		}
		fmt.Printf("asset %d delegate set to %s\n", *id, to.Hex())
		return nil
	})
}

func operator(args []string) error {
	fs := flag.NewFlagSet("operator", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	callerHex := fs.String("caller", "", "granting identity (hex address)")
	operatorHex := fs.String("operator", "", "operator identity (hex address)")
	approved := fs.Bool("approved", true, "grant (true) or revoke (false)")
	eventsPath := fs.String("events", "", "append emitted events to this JSONL file")
	fs.Parse(args)

	caller, err := parseAddr("caller", *callerHex)
	if err != nil {
		return err
	}
	op, err := parseAddr("operator", *operatorHex)
	if err != nil {
		return err
	}

	return withLedger(*db, *eventsPath, func(lgr *ledger.Ledger) error {
		if err := lgr.SetApprovalForAll(caller, op, *approved); err != nil {
			return err
		}
		verb := "granted to"
		if !*approved {
			verb = "revoked from"
		}
		fmt.Printf("operator rights %s %s for %s\n", verb, op.Hex(), caller.Hex())
		return nil
	})
}
