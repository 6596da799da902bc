package main

import (
	"flag"
	"fmt"

	"github.com/artmint/go-artmint/ledger"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	callerHex := fs.String("caller", "", "minting identity (hex address)")
	eventsPath := fs.String("events", "", "append emitted events to this JSONL file")
	fs.Parse(args)

	caller, err := parseAddr("caller", *callerHex)
	if err != nil {
		return err
	}

	return withLedger(*db, *eventsPath, func(lgr *ledger.Ledger) error {
		id, err := lgr.Mint(caller)
		if err != nil {
			return err
		}
		fmt.Printf("minted asset %d to %s\n", id, caller.Hex())
		return nil
	})
}
