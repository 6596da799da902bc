package main

import (
	"fmt"
	"os"

	"github.com/artmint/go-artmint/eventlog"
	"github.com/artmint/go-artmint/ledger"
)

// withLedger loads the ledger from db, runs fn with an attached event
// log, and on success saves the ledger back and appends any emitted
// records to eventsPath (when set).
func withLedger(db, eventsPath string, fn func(*ledger.Ledger) error) error {
	store, err := ledger.OpenStore(db)
	if err != nil {
		return err
	}
	defer store.Close()

	lgr, err := store.Load()
	if err != nil {
		return err
	}

	log := eventlog.New()
	lgr.SetSink(log)

	if err := fn(lgr); err != nil {
		return err
	}

	if err := store.Save(lgr); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	if eventsPath != "" && log.Len() > 0 {
		f, err := os.OpenFile(eventsPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer f.Close()
		if err := log.WriteJSONL(f); err != nil {
			return fmt.Errorf("append event log: %w", err)
		}
	}

	return nil
}

func parseAddr(flagName, value string) (ledger.Address, error) {
	if value == "" {
		return ledger.ZeroAddress, fmt.Errorf("-%s is required", flagName)
	}
	addr, err := ledger.ParseAddress(value)
	if err != nil {
		return ledger.ZeroAddress, err
	}
	return addr, nil
}
