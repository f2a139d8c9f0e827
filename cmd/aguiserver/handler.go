package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/heartbeat"
	"github.com/spetersoncode/agui/mcptool"
	"github.com/spetersoncode/agui/session"
	"github.com/spetersoncode/agui/sse"
	"github.com/spetersoncode/agui/toolexec"
	"github.com/spetersoncode/agui/translate"
)

// AgentHandler handles agent run requests over SSE.
type AgentHandler struct {
	provider Provider
	sessions *session.Manager
	remote   *mcptool.Remote // nil when no MCP server is configured
	config   *Config
}

// NewAgentHandler creates a handler for the given provider and session
// manager. remote may be nil.
func NewAgentHandler(p Provider, s *session.Manager, remote *mcptool.Remote, cfg *Config) *AgentHandler {
	return &AgentHandler{provider: p, sessions: s, remote: remote, config: cfg}
}

// ServeHTTP handles POST requests to run the agent and stream events via SSE.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Only accept POST
	if r.Method != http.MethodPost {
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse request body
	var input events.RunAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		slog.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if input.ThreadID == "" {
		input.ThreadID = events.GenerateThreadID()
	}
	if input.RunID == "" {
		input.RunID = events.GenerateRunID()
	}

	// Create request-scoped logger
	log := slog.With(
		"run_id", input.RunID,
		"thread_id", input.ThreadID,
	)

	for i := range input.Messages {
		if err := input.Messages[i].Validate(); err != nil {
			log.Warn("invalid input", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sess, err := h.sessions.GetOrCreate(input.ThreadID)
	if err != nil {
		log.Warn("session unavailable", "error", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	tr := sess.BeginRun(input.RunID)
	defer sess.EndRun()

	log.Info("request started", "message_count", len(input.Messages), "tool_count", len(input.Tools))

	sw, err := sse.NewWriter(w)
	if err != nil {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.Timeout)
	defer cancel()

	// Server-side tools are advertised to the model alongside the
	// frontend's own tool definitions.
	tools := input.Tools
	if h.remote != nil {
		tools = append(tools, h.remote.Tools()...)
	}

	src, err := h.provider.Stream(ctx, input.Messages, tools)
	if err != nil {
		log.Error("failed to start model stream", "error", err)
		sw.WriteEvent(tr.RunStarted())
		sw.WriteEvent(tr.RunError(err))
		return
	}

	q := translate.NewQueue(0)
	var hb *heartbeat.Emitter
	if h.remote != nil {
		hb, err = heartbeat.New(q, h.config.HeartbeatInterval, heartbeat.WithLogger(log))
		if err != nil {
			log.Error("invalid heartbeat config", "error", err)
			sw.WriteEvent(tr.RunStarted())
			sw.WriteEvent(tr.RunError(err))
			return
		}
		src = toolexec.NewSource(src, remoteExecutor{h.remote}, hb)
	}

	// Producer: drive the model stream through translation. The queue
	// is closed once the run is over so the write loop below drains
	// everything and stops.
	runErr := make(chan error, 1)
	go func() {
		err := translate.Run(ctx, tr, src, q)
		if hb != nil {
			hb.Close()
		}
		q.Close()
		runErr <- err
	}()

	var eventCount int
	var writeErr error
	for {
		ev, err := q.Get(ctx)
		if err != nil {
			break
		}
		eventCount++
		log.Debug("sending SSE event",
			"event_type", ev.Type(),
			"event_num", eventCount,
		)
		if err := sw.WriteEvent(ev); err != nil {
			log.Error("failed to write SSE event", "error", err, "event_type", ev.Type())
			writeErr = err
			cancel()
			break
		}
	}
	// Close before waiting: a producer stuck in a full-buffer Put after
	// the consumer stopped would otherwise never return.
	q.Close()
	err = <-runErr

	duration := time.Since(start)
	switch {
	case writeErr != nil:
		log.Error("request failed",
			"duration_ms", duration.Milliseconds(),
			"events_sent", eventCount,
			"error", writeErr,
		)
	case err != nil:
		log.Error("run failed",
			"duration_ms", duration.Milliseconds(),
			"events_sent", eventCount,
			"error", err,
		)
	default:
		log.Info("request completed",
			"duration_ms", duration.Milliseconds(),
			"events_sent", eventCount,
		)
	}
}

// remoteExecutor adapts an MCP connection to the tool execution
// interface. MCP-level error results surface as execution failures.
type remoteExecutor struct {
	remote *mcptool.Remote
}

func (e remoteExecutor) Has(name string) bool { return e.remote.Has(name) }

func (e remoteExecutor) Execute(ctx context.Context, call events.ToolCall) (string, error) {
	res := e.remote.Execute(ctx, call)
	if res.IsError {
		return "", errors.New(res.Content)
	}
	return res.Content, nil
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
