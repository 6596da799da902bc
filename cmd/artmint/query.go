package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/artmint/go-artmint/eventlog"
	"github.com/artmint/go-artmint/ledger"
)

func owner(args []string) error {
	fs := flag.NewFlagSet("owner", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	id := fs.Uint64("id", 0, "asset identifier")
	fs.Parse(args)

	store, err := ledger.OpenStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	lgr, err := store.Load()
	if err != nil {
		return err
	}

	who, err := lgr.OwnerOf(*id)
	if err != nil {
		return err
	}
	delegate, err := lgr.GetApproved(*id)
	if err != nil {
		return err
	}

	fmt.Printf("asset %d owner: %s\n", *id, who.Hex())
	if !delegate.IsZero() {
		fmt.Printf("asset %d delegate: %s\n", *id, delegate.Hex())
	}
	return nil
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	ownerHex := fs.String("owner", "", "identity to query (hex address)")
	fs.Parse(args)

	who, err := parseAddr("owner", *ownerHex)
	if err != nil {
		return err
	}

	store, err := ledger.OpenStore(*db)
	if err != nil {
		return err
	}
	defer store.Close()

	lgr, err := store.Load()
	if err != nil {
		return err
	}

	count, err := lgr.BalanceOf(who)
	if err != nil {
		return err
	}
	fmt.Printf("%s owns %d asset(s)\n", who.Hex(), count)
	return nil
}

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	file := fs.String("file", "events.jsonl", "event log file")
	fs.Parse(args)

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := eventlog.ReadJSONL(f)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%s  %-16s  %v\n", record.Timestamp.Format("2006-01-02 15:04:05"), record.Kind, record.Fields)
	}
	fmt.Printf("%d record(s)\n", len(records))
	return nil
}
