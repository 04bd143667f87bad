package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alhariq/mahkah/internal/config"
	"github.com/alhariq/mahkah/internal/llm"
	"github.com/alhariq/mahkah/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (optional)")
	flag.Parse()

	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("relay: loaded .env")
	}

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadConfigFromFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatalf("relay: failed to load config: %v", err)
	}

	if cfg.LLM.APIKey == "" {
		log.Println("relay: warning: no API key configured, story requests will fail")
	}

	generator := llm.NewGeminiClient(llm.GeminiConfig{
		APIKey:        cfg.LLM.APIKey,
		Model:         cfg.LLM.Model,
		BaseURL:       cfg.LLM.BaseURL,
		Timeout:       cfg.LLM.Timeout,
		MaxAttempts:   cfg.LLM.MaxAttempts,
		RetryBaseWait: cfg.LLM.RetryBaseWait,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr, _, err := server.Start(ctx, cfg, generator)
	if err != nil {
		log.Fatalf("relay: %v", err)
	}
	log.Printf("relay: story relay running at http://%s (model %s)", addr, generator.GetModel())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Println("relay: shutting down gracefully...")
	cancel()
	time.Sleep(1 * time.Second) // Give time for connections to close
}
