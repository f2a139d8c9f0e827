package translate

import (
	"log/slog"
	"sort"

	"github.com/spetersoncode/agui/events"
)

// Translator converts Native events into AG-UI protocol events for a
// single run. It owns the per-run aggregator state: the assistant text
// stream, the thinking stream, the refusal stream, and the tool-call
// correlator.
//
// Create a Translator per run with NewTranslator, or reuse one across
// sequential runs with Reset between them. A Translator is not safe for
// concurrent use.
type Translator struct {
	threadID string
	runID    string

	text     *TextStream
	thinking *ThinkingStream
	refusal  *TextStream
	tools    *ToolCalls

	log *slog.Logger
}

// TranslatorOption configures a Translator.
type TranslatorOption func(*Translator)

// WithLogger sets the logger used for debug output on unrecognized
// native events. The default is slog.Default().
func WithLogger(log *slog.Logger) TranslatorOption {
	return func(t *Translator) {
		t.log = log
	}
}

// NewTranslator creates a Translator for a single run. Empty ids are
// generated.
func NewTranslator(threadID, runID string, opts ...TranslatorOption) *Translator {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	t := &Translator{
		threadID: threadID,
		runID:    runID,
		text:     NewTextStream(),
		thinking: NewThinkingStream(),
		refusal:  NewTextStream(),
		tools:    NewToolCalls(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ThreadID returns the thread ID for this translator.
func (t *Translator) ThreadID() string {
	return t.threadID
}

// RunID returns the run ID for this translator.
func (t *Translator) RunID() string {
	return t.runID
}

// RunStarted returns the RUN_STARTED event opening this run.
func (t *Translator) RunStarted() events.Event {
	return events.NewRunStartedEvent(t.threadID, t.runID)
}

// RunFinished returns the RUN_FINISHED event closing this run.
func (t *Translator) RunFinished(result any) events.Event {
	ev := events.NewRunFinishedEvent(t.threadID, t.runID)
	ev.Result = result
	return ev
}

// RunError returns the RUN_ERROR event for a failed run.
func (t *Translator) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// Translate converts one Native event into zero or more protocol events.
// Unrecognized kinds yield nil and a debug log entry, never an error:
// adapters may forward shapes this version does not know about.
func (t *Translator) Translate(n Native) []events.Event {
	switch n.Kind {
	case KindTextDelta:
		if n.MessageID != "" {
			t.text.UseMessageID(n.MessageID)
		}
		return t.text.HandleFragment(n.Text)

	case KindTextDone:
		return t.text.ForceClose()

	case KindThinkingDelta:
		if n.Title != "" {
			t.thinking.SetTitle(n.Title)
		}
		return t.thinking.HandleFragment(n.Text)

	case KindThinkingDone:
		return t.thinking.ForceClose()

	case KindRefusalDelta:
		return t.refusal.HandleFragment(n.Text)

	case KindRefusalDone:
		return t.refusal.ForceClose()

	case KindToolCallBegin:
		// A tool call interrupts the assistant message. Close the open
		// text stream first so the ordering rule (no tool call inside
		// an open message) holds, keeping its id as the call's parent.
		parent := t.text.MessageID()
		out := t.text.ForceClose()
		return append(out, t.tools.StartCall(Call{
			NativeID:        n.ToolCallID,
			Name:            n.ToolName,
			Args:            n.Args,
			Streaming:       n.Streaming,
			ParentMessageID: parent,
		})...)

	case KindToolCallDelta:
		return t.tools.AppendArgs(n.ToolCallID, n.ArgsDelta)

	case KindToolCallDone:
		return t.tools.EndCall(n.ToolCallID)

	case KindToolCallRemap:
		t.tools.Remap(n.ToolCallID, n.ConfirmedID)
		return nil

	case KindToolResult:
		return t.tools.Result(n.ToolCallID, n.Result)

	case KindStateSnapshot:
		return []events.Event{events.NewStateSnapshotEvent(n.State)}

	case KindStateDelta:
		ops := stateDeltaOps(n.State)
		if len(ops) == 0 {
			return nil
		}
		return []events.Event{events.NewStateDeltaEvent(ops)}

	case KindResponseDone:
		// End of one model response: close every message channel so the
		// next response always opens fresh brackets, whether or not
		// this one produced content.
		out := t.text.ForceClose()
		out = append(out, t.thinking.ForceClose()...)
		return append(out, t.refusal.ForceClose()...)

	case KindCustom:
		return []events.Event{events.NewCustomEvent(n.Name, n.Value)}

	default:
		t.log.Debug("unrecognized native event", "kind", string(n.Kind))
		return nil
	}
}

// ForceCloseAll synthesizes the missing End event for every aggregator
// left open, in a fixed order: text, thinking, refusal, then open tool
// calls in start order. After ForceCloseAll the event sequence produced
// by this translator satisfies the bracket invariant regardless of how
// the native stream terminated.
func (t *Translator) ForceCloseAll() []events.Event {
	out := t.text.ForceClose()
	out = append(out, t.thinking.ForceClose()...)
	out = append(out, t.refusal.ForceClose()...)
	return append(out, t.tools.ForceClose()...)
}

// BeginRun prepares a long-lived translator for its next run: all
// aggregator state is cleared and the run id is replaced. An empty
// runID is generated. The thread id is unchanged.
func (t *Translator) BeginRun(runID string) {
	if runID == "" {
		runID = events.GenerateRunID()
	}
	t.runID = runID
	t.Reset()
}

// Reset clears all aggregator state, making the translator reusable for
// the next run. It emits nothing; call ForceCloseAll first if open state
// must be closed on the wire.
func (t *Translator) Reset() {
	t.text.Reset()
	t.thinking.Reset()
	t.refusal.Reset()
	t.tools.Reset()
}

// stateDeltaOps builds one JSON-Patch add operation per state key, in
// sorted key order for deterministic output.
func stateDeltaOps(state map[string]any) []events.JSONPatchOperation {
	if len(state) == 0 {
		return nil
	}
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ops := make([]events.JSONPatchOperation, 0, len(keys))
	for _, k := range keys {
		ops = append(ops, events.JSONPatchOperation{
			Op:    "add",
			Path:  "/" + k,
			Value: state[k],
		})
	}
	return ops
}
