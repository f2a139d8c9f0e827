// Package main provides an AG-UI HTTP server that streams agent runs to
// AG-UI compatible frontends like CopilotKit over Server-Sent Events.
//
// Model output is streamed from the configured provider, translated to
// AG-UI protocol events, and written to the client as SSE. Tools hosted
// by an optional MCP server are executed server-side with activity
// heartbeats; frontend-defined tools are left to the client.
//
// Configuration is via environment variables:
//
//	AGUI_PORT               - Server port (default: 8080)
//	AGUI_LOG_LEVEL          - Log level: debug, info, warn, error (default: info)
//	AGUI_PROVIDER           - Provider: anthropic, openai, or google (required)
//	AGUI_MODEL              - Model override (optional, uses provider default)
//	AGUI_MAX_TOKENS         - Max output tokens (default: 4096)
//	AGUI_TIMEOUT            - Per-run timeout (default: 2m)
//	AGUI_HEARTBEAT_INTERVAL - Tool progress snapshot interval (default: 10s)
//	AGUI_SESSION_TIMEOUT    - Idle session expiry (default: 20m)
//	AGUI_SESSION_SWEEP      - Expiry sweep interval (default: 5m)
//	AGUI_MAX_SESSIONS       - Session cap (default: 100)
//	AGUI_MCP_COMMAND        - Optional MCP tool server command (stdio)
//	AGUI_MCP_ARGS           - Arguments for the MCP server command
//	ANTHROPIC_API_KEY       - Anthropic API key
//	OPENAI_API_KEY          - OpenAI API key
//	GOOGLE_API_KEY          - Google API key
//
// Usage:
//
//	AGUI_PROVIDER=anthropic go run ./cmd/aguiserver
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spetersoncode/agui/mcptool"
	"github.com/spetersoncode/agui/session"
)

func main() {
	// Load configuration
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()

	// Create provider client
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}

	// Session manager for per-thread streaming state
	sessions := session.NewManager(
		session.WithTimeout(cfg.SessionTimeout),
		session.WithSweepInterval(cfg.SessionSweep),
		session.WithMaxSessions(cfg.MaxSessions),
	)
	defer sessions.Close()

	// Optional MCP tool server
	var remote *mcptool.Remote
	if cfg.MCPCommand != "" {
		remote, err = mcptool.Connect(ctx, cfg.MCPCommand, nil, cfg.MCPArgs...)
		if err != nil {
			log.Fatalf("Failed to connect to MCP server: %v", err)
		}
		defer remote.Close()
		log.Printf("Connected to MCP server %s (%d tools)", cfg.MCPCommand, remote.Len())
	}

	// Create HTTP handler
	handler := NewAgentHandler(provider, sessions, remote, cfg)

	// Setup routes
	mux := http.NewServeMux()
	mux.Handle("/api/agent", corsMiddleware(handler))
	mux.HandleFunc("/health", healthHandler)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	// Start server
	log.Printf("AG-UI server starting on :%s", cfg.Port)
	log.Printf("Provider: %s", cfg.Provider)
	log.Printf("Endpoint: POST http://localhost:%s/api/agent", cfg.Port)
	log.Printf("Health:   GET  http://localhost:%s/health", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
}
