// Package toolexec runs tools server-side as their calls complete in a
// model stream. It decorates a translate.Source: tool-call fragments
// pass through untouched, and once a call is fully delivered the tool
// is executed and its result injected back into the stream before the
// run finishes.
package toolexec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/heartbeat"
	"github.com/spetersoncode/agui/translate"
)

// Executor executes a named tool with JSON-encoded arguments.
type Executor interface {
	// Has reports whether the executor can run the named tool.
	Has(name string) bool
	// Execute runs the tool and returns its textual result.
	Execute(ctx context.Context, call events.ToolCall) (content string, err error)
}

// ExecutorFunc adapts a function to the Executor interface, accepting
// every tool name.
type ExecutorFunc func(ctx context.Context, call events.ToolCall) (string, error)

func (f ExecutorFunc) Has(string) bool { return true }

func (f ExecutorFunc) Execute(ctx context.Context, call events.ToolCall) (string, error) {
	return f(ctx, call)
}

type pendingCall struct {
	name string
	args strings.Builder
}

// Source wraps an inner stream source and executes completed tool
// calls. Results are delivered as tool-result items immediately after
// the call that produced them.
type Source struct {
	inner translate.Source
	exec  Executor
	hb    *heartbeat.Emitter

	calls   map[string]*pendingCall
	results []translate.Native
}

// NewSource wraps inner with tool execution. The heartbeat emitter may
// be nil, in which case calls execute without progress reporting.
func NewSource(inner translate.Source, exec Executor, hb *heartbeat.Emitter) *Source {
	return &Source{
		inner: inner,
		exec:  exec,
		hb:    hb,
		calls: make(map[string]*pendingCall),
	}
}

// Next returns the next stream item, running tools as a side effect of
// observing their final fragment.
func (s *Source) Next(ctx context.Context) (translate.Native, error) {
	if len(s.results) > 0 {
		n := s.results[0]
		s.results = s.results[1:]
		return n, nil
	}

	n, err := s.inner.Next(ctx)
	if err != nil {
		return translate.Native{}, err
	}

	switch n.Kind {
	case translate.KindToolCallBegin:
		pc := &pendingCall{name: n.ToolName}
		pc.args.WriteString(encodeArgs(n.Args))
		s.calls[n.ToolCallID] = pc
	case translate.KindToolCallDelta:
		if pc, ok := s.calls[n.ToolCallID]; ok {
			pc.args.WriteString(encodeArgs(n.ArgsDelta))
		}
	case translate.KindToolCallRemap:
		if pc, ok := s.calls[n.ToolCallID]; ok {
			delete(s.calls, n.ToolCallID)
			s.calls[n.ConfirmedID] = pc
		}
	case translate.KindToolCallDone:
		if pc, ok := s.calls[n.ToolCallID]; ok {
			delete(s.calls, n.ToolCallID)
			s.run(ctx, n.ToolCallID, pc)
		}
	}
	return n, nil
}

// run executes one completed call and queues its result.
func (s *Source) run(ctx context.Context, callID string, pc *pendingCall) {
	if s.exec == nil || !s.exec.Has(pc.name) {
		return
	}

	if s.hb != nil {
		s.hb.Begin(callID, pc.name)
	}

	content, err := s.exec.Execute(ctx, events.ToolCall{
		ID:   callID,
		Type: "function",
		Function: events.FunctionCall{
			Name:      pc.name,
			Arguments: pc.args.String(),
		},
	})

	if s.hb != nil {
		if err != nil {
			s.hb.Fail(callID, pc.name, err)
		} else {
			s.hb.Complete(callID, pc.name)
		}
	}
	if err != nil {
		content = fmt.Sprintf("tool %s failed: %v", pc.name, err)
	}

	s.results = append(s.results, translate.Native{
		Kind:       translate.KindToolResult,
		ToolCallID: callID,
		Result:     content,
	})
}

func encodeArgs(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case string:
		return a
	case []byte:
		return string(a)
	case json.RawMessage:
		return string(a)
	default:
		b, err := json.Marshal(a)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
