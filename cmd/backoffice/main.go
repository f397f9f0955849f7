package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/config"
	"github.com/costamaya/backoffice/internal/session"
	"github.com/costamaya/backoffice/internal/ui"
)

func main() {
	apiURL := flag.String("api", "", "Backend base URL (overrides BACKOFFICE_API_URL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		fmt.Printf("Error creating data directory: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout; logs go to a file next to the session db.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "backoffice.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Printf("Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.LogLevel}))

	client := api.New(cfg.APIBaseURL, cfg.APITimeout)
	sess := session.NewStore(session.DefaultPath(cfg.DataDir))

	p := tea.NewProgram(ui.NewModel(client, sess, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}
