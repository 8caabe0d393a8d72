// Command refgen converts Enka's published store files (characters.json,
// namecards.json, pfps.json, loc.json) into a reference data directory that
// hoyox loads through HOYOX_REFDATA_DIR.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"

	"hoyox/internal/refdata"
)

func main() {
	storeDir := pflag.StringP("store", "s", "", "directory holding Enka's store JSON files")
	outDir := pflag.StringP("out", "o", "refdata", "directory to write the reference tables to")
	lang := pflag.StringP("lang", "l", "en", "loc.json language used for character names")
	pflag.Parse()

	if *storeDir == "" {
		fmt.Fprintln(os.Stderr, "usage: refgen --store <dir> [--out <dir>] [--lang <code>]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	tables, err := refdata.FromEnkaStore(os.DirFS(*storeDir), *lang)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if err := tables.WriteDir(*outDir); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// Load the result back so a bad conversion fails here rather than at startup.
	store, err := refdata.LoadDir(*outDir)
	if err != nil {
		log.Fatalf("FATAL: written tables do not load: %v", err)
	}
	fmt.Printf("Wrote %s: %v\n", *outDir, store.Counts())
}
