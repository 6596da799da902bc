package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/artmint/go-artmint/artwork"
	"github.com/artmint/go-artmint/entropy"
	"github.com/artmint/go-artmint/ledger"
	"github.com/artmint/go-artmint/metadata"
)

// defaultSelf stands in for the ledger's own identity when none is
// given; it feeds seed derivation only.
const defaultSelf = "0x00000000000000000000000000000000aa570a17"

func uri(args []string) error {
	fs := flag.NewFlagSet("uri", flag.ExitOnError)
	db := fs.String("db", "artmint.db", "ledger database path")
	id := fs.Uint64("id", 0, "asset identifier")
	selfHex := fs.String("self", defaultSelf, "ledger identity used in seed derivation")
	out := fs.String("out", "", "write the document to this file instead of stdout")
	svgOut := fs.String("svg", "", "also write the bare SVG to this file")
	fs.Parse(args)

	self, err := ledger.ParseAddress(*selfHex)
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
	if _, err := lgr.OwnerOf(*id); err != nil {
		return err
	}

	source := entropy.NewSystem(15 * time.Second)
	seed := entropy.DeriveSeed(source, *id, self)
	attrs := artwork.Select(seed)
	doc := metadata.TokenDocument(*id, attrs)

	if *svgOut != "" {
		if err := os.WriteFile(*svgOut, []byte(artwork.RenderSVG(*id, attrs)), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(doc), 0644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		return nil
	}

	fmt.Println(doc)
	return nil
}
