// Package sse writes AG-UI protocol events as Server-Sent Events.
//
// Each event is serialized to JSON and framed as
// "event: TYPE\ndata: {json}\n\n", flushed immediately so clients see
// events as they are produced. The writer is a pure encoder; it keeps
// no protocol state.
package sse

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spetersoncode/agui/events"
)

// ErrStreamingUnsupported is returned by NewWriter when the underlying
// ResponseWriter cannot flush.
var ErrStreamingUnsupported = errors.New("sse: response writer does not support streaming")

// Writer frames protocol events as SSE on an HTTP response.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares w for an SSE stream: it sets the stream headers
// and verifies the writer can flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent serializes one event and flushes it to the client.
func (s *Writer) WriteEvent(ev events.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("serialize %s event: %w", ev.Type(), err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", ev.Type(), data); err != nil {
		return fmt.Errorf("write %s event: %w", ev.Type(), err)
	}
	s.flusher.Flush()
	return nil
}
