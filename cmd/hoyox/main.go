package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"hoyox/internal/app"
	"hoyox/internal/config"
	"hoyox/internal/enka"
	"hoyox/internal/refdata"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// Diagnostics go to stderr and only when debugging; stdout is the UI.
	infoOut := io.Discard
	if cfg.Debug {
		infoOut = os.Stderr
	}
	infoLog := log.New(infoOut, "[INFO] ", log.LstdFlags|log.Lmsgprefix)
	errLog := log.New(infoOut, "[ERROR] ", log.LstdFlags|log.Lmsgprefix)

	// --- Reference data ---
	var store *refdata.InMemoryStore
	if cfg.RefDataDir != "" {
		store, err = refdata.LoadDir(cfg.RefDataDir)
	} else {
		store, err = refdata.Embedded()
	}
	if err != nil {
		log.Fatalf("FATAL: Failed to load reference data: %v", err)
	}
	infoLog.Printf("reference data loaded: %v", store.Counts())

	// --- Systems ---
	client := enka.NewClient(cfg.APIBaseURL, cfg.UserAgent, nil)
	engine, err := app.NewEngine(client, store, infoLog)
	if err != nil {
		log.Fatalf("FATAL: Failed to create engine: %v", err)
	}
	menu := app.NewMenuExecutor(store, cfg.AssetBaseURL)
	runner := app.NewRunner(engine, menu, errLog)
	infoLog.Printf("session %s started against %s", runner.Session.ID, cfg.APIBaseURL)

	// Lookup failures are printed by the runner; only input errors land here.
	if err := runner.Run(context.Background(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
	}
}
