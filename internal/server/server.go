// Package server provides HTTP server initialization and lifecycle
// management for the Mahkah story relay.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/alhariq/mahkah/internal/config"
	"github.com/alhariq/mahkah/internal/llm"
	"github.com/alhariq/mahkah/web/handlers"
)

// Start initializes and starts the relay HTTP server.
// Returns the actual address being listened on (useful for testing with
// port 0), the EventsHub for wiring activity broadcasts, and an error if
// the listen socket could not be opened. The server shuts down when ctx
// is cancelled.
func Start(ctx context.Context, cfg *config.Config, generator llm.StoryGenerator) (string, *handlers.EventsHub, error) {
	mux := http.NewServeMux()

	// Activity hub for the festival ops screen
	hub := handlers.NewEventsHub()
	go hub.Run()

	rateLimiter := handlers.NewRateLimiter(cfg.Relay.RateLimitRPS, cfg.Relay.RateLimitBurst)

	storyHandlers := handlers.NewStoryHandlers(cfg, generator, hub)

	// API routes (require auth in production mode)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/story", storyHandlers.GenerateStory)

	// Health endpoint, no auth required, used by kiosks and monitoring
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		handlers.Health(w, r)
	})

	// Wrap API routes with auth middleware
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoint for the ops activity feed
	mux.Handle("/ws", hub)

	// Wrap entire server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = handlers.SecurityHeaders(handler)

	// Generation can take a while; the write timeout must outlive the
	// provider timeout plus the retry waits.
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("server: %v", err)
		}
	}()

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server: shutdown error: %v", err)
		}
		hub.Stop()
	}()

	return actualAddr, hub, nil
}
