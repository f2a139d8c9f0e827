// Package agui implements the AG-UI protocol for Go agent backends.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based
// protocol that standardizes how AI agents connect to user-facing
// applications. This module translates provider-native model streams
// into the AG-UI event vocabulary and streams them to frontends such
// as CopilotKit over Server-Sent Events.
//
// # Packages
//
//   - [github.com/spetersoncode/agui/events]: AG-UI event types, their
//     JSON encoding, and sequence validation
//   - [github.com/spetersoncode/agui/translate]: the translation state
//     machine turning provider stream items into well-bracketed events
//   - [github.com/spetersoncode/agui/adapter/openaichat],
//     [github.com/spetersoncode/agui/adapter/anthropic],
//     [github.com/spetersoncode/agui/adapter/gemini]: provider SDK
//     stream adapters
//   - [github.com/spetersoncode/agui/heartbeat]: activity snapshots for
//     long-running tool executions
//   - [github.com/spetersoncode/agui/session]: per-thread streaming
//     state with idle expiry
//   - [github.com/spetersoncode/agui/toolexec]: server-side tool
//     execution inside a run
//   - [github.com/spetersoncode/agui/mcptool]: MCP tool integration
//   - [github.com/spetersoncode/agui/sse]: SSE response writing
//
// # Basic Usage
//
// Translate a provider stream into AG-UI events:
//
//	tr := translate.NewTranslator(threadID, runID)
//	q := translate.NewQueue(0)
//
//	go func() {
//	    defer q.Close()
//	    src := openaichat.NewSource(stream)
//	    translate.Run(ctx, tr, src, q)
//	}()
//
//	for {
//	    ev, err := q.Get(ctx)
//	    if err != nil {
//	        break
//	    }
//	    // deliver ev to the frontend
//	}
//
// A complete HTTP server wiring sessions, tool execution, and SSE
// delivery lives in cmd/aguiserver.
package agui
