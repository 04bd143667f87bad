package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/alhariq/mahkah/internal/client"
	"github.com/alhariq/mahkah/internal/config"
	"github.com/alhariq/mahkah/internal/storage/sqlite"
	"github.com/alhariq/mahkah/internal/ui"
	"github.com/alhariq/mahkah/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		log.Println("kiosk: loaded .env")
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFromFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("kiosk: failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Kiosk.DataPath, 0o755); err != nil {
		log.Fatalf("kiosk: failed to create data directory: %v", err)
	}

	library, err := sqlite.NewLibraryStore(filepath.Join(cfg.Kiosk.DataPath, "mahkah.db"))
	if err != nil {
		log.Fatalf("kiosk: failed to open plant library: %v", err)
	}
	defer library.Close()

	// The client timeout covers the relay's whole retry budget.
	storyClient := client.NewStoryClient(cfg.Kiosk.RelayURL, 3*time.Minute)

	healthCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if !storyClient.Healthy(healthCtx) {
		log.Printf("kiosk: warning: relay at %s is not answering", cfg.Kiosk.RelayURL)
	}
	cancel()

	model := ui.New(storyClient, library, types.Language(cfg.Kiosk.DefaultLanguage))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("kiosk: %v", err)
	}
}
