// The sandbox serves an in-memory rendition of the rental backend for local
// development: same routes, same envelope, demo data. State resets on
// restart.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/costamaya/backoffice/internal/config"
	"github.com/costamaya/backoffice/internal/stub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	var geography stub.Catalog
	if path := os.Getenv("BACKOFFICE_GEOGRAPHY"); path != "" {
		geography, err = stub.LoadCatalog(path)
		if err != nil {
			fmt.Printf("Error loading geography catalog: %v\n", err)
			os.Exit(1)
		}
	}

	srv := stub.New(geography, log)
	log.Info("sandbox listening", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Handler()); err != nil {
		fmt.Printf("Error running sandbox: %v\n", err)
		os.Exit(1)
	}
}
