package translate

import (
	"errors"
	"testing"

	"github.com/spetersoncode/agui/events"
)

func TestNewTranslator(t *testing.T) {
	t.Run("generates missing ids", func(t *testing.T) {
		tr := NewTranslator("", "")
		if tr.ThreadID() == "" || tr.RunID() == "" {
			t.Error("expected generated ids")
		}
	})

	t.Run("keeps provided ids", func(t *testing.T) {
		tr := NewTranslator("thread-1", "run-1")
		if tr.ThreadID() != "thread-1" || tr.RunID() != "run-1" {
			t.Errorf("got %q %q", tr.ThreadID(), tr.RunID())
		}
	})
}

func TestTranslatorLifecycleEvents(t *testing.T) {
	tr := NewTranslator("thread-1", "run-1")

	started := tr.RunStarted().(*events.RunStartedEvent)
	if started.ThreadID != "thread-1" || started.RunID != "run-1" {
		t.Errorf("unexpected run started: %+v", started)
	}

	finished := tr.RunFinished(map[string]any{"ok": true}).(*events.RunFinishedEvent)
	if finished.Result == nil {
		t.Error("result dropped")
	}

	runErr := tr.RunError(errors.New("boom")).(*events.RunErrorEvent)
	if runErr.Message != "boom" {
		t.Errorf("unexpected message %q", runErr.Message)
	}
	if tr.RunError(nil).(*events.RunErrorEvent).Message == "" {
		t.Error("nil error produced empty message")
	}
}

func TestTranslatorDispatch(t *testing.T) {
	t.Run("text channel", func(t *testing.T) {
		tr := NewTranslator("", "")
		out := tr.Translate(Native{Kind: KindTextDelta, Text: "hi"})
		if len(out) != 2 {
			t.Fatalf("expected start+content, got %d", len(out))
		}
		out = tr.Translate(Native{Kind: KindTextDone})
		if len(out) != 1 {
			t.Fatalf("expected end, got %d", len(out))
		}
	})

	t.Run("fixed message id from framework", func(t *testing.T) {
		tr := NewTranslator("", "")
		out := tr.Translate(Native{Kind: KindTextDelta, Text: "hi", MessageID: "item-7"})
		if got := out[0].(*events.TextMessageStartEvent).MessageID; got != "item-7" {
			t.Errorf("expected item-7, got %q", got)
		}
	})

	t.Run("thinking and refusal channels are independent", func(t *testing.T) {
		tr := NewTranslator("", "")
		text := tr.Translate(Native{Kind: KindTextDelta, Text: "answer"})
		thinking := tr.Translate(Native{Kind: KindThinkingDelta, Text: "hmm", Title: "reasoning"})
		refusal := tr.Translate(Native{Kind: KindRefusalDelta, Text: "cannot help"})

		textID := text[0].(*events.TextMessageStartEvent).MessageID
		thinkingID := thinking[1].(*events.ThinkingTextMessageStartEvent).MessageID
		refusalID := refusal[0].(*events.TextMessageStartEvent).MessageID
		if textID == thinkingID || textID == refusalID || thinkingID == refusalID {
			t.Error("channel message ids overlap")
		}
	})

	t.Run("tool call begin closes open text message", func(t *testing.T) {
		tr := NewTranslator("", "")
		text := tr.Translate(Native{Kind: KindTextDelta, Text: "calling a tool"})
		textID := text[0].(*events.TextMessageStartEvent).MessageID

		out := tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "native-1", ToolName: "f", Streaming: true})
		if len(out) != 2 {
			t.Fatalf("expected text end + tool start, got %d", len(out))
		}
		end, ok := out[0].(*events.TextMessageEndEvent)
		if !ok || end.MessageID != textID {
			t.Fatalf("expected text end for %q first, got %T", textID, out[0])
		}
		start := out[1].(*events.ToolCallStartEvent)
		if start.ParentMessageID != textID {
			t.Errorf("expected parent %q, got %q", textID, start.ParentMessageID)
		}
	})

	t.Run("remap produces no events", func(t *testing.T) {
		tr := NewTranslator("", "")
		start := tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "native-1", ToolName: "f", Streaming: true})
		if out := tr.Translate(Native{Kind: KindToolCallRemap, ToolCallID: "native-1", ConfirmedID: "native-2"}); out != nil {
			t.Errorf("remap emitted %d events", len(out))
		}
		end := tr.Translate(Native{Kind: KindToolCallDone, ToolCallID: "native-2"})
		if got := end[0].(*events.ToolCallEndEvent).ToolCallID; got != start[0].(*events.ToolCallStartEvent).ToolCallID {
			t.Error("confirmed id resolved to a different external id")
		}
	})

	t.Run("state snapshot and delta", func(t *testing.T) {
		tr := NewTranslator("", "")
		out := tr.Translate(Native{Kind: KindStateSnapshot, State: map[string]any{"counter": 1}})
		if _, ok := out[0].(*events.StateSnapshotEvent); !ok {
			t.Fatalf("expected StateSnapshotEvent, got %T", out[0])
		}

		out = tr.Translate(Native{Kind: KindStateDelta, State: map[string]any{"b": 2, "a": 1}})
		delta := out[0].(*events.StateDeltaEvent)
		if len(delta.Delta) != 2 {
			t.Fatalf("expected 2 patch ops, got %d", len(delta.Delta))
		}
		if delta.Delta[0].Path != "/a" || delta.Delta[1].Path != "/b" {
			t.Errorf("patch ops not in sorted key order: %+v", delta.Delta)
		}
		if delta.Delta[0].Op != "add" {
			t.Errorf("expected add op, got %q", delta.Delta[0].Op)
		}

		if out := tr.Translate(Native{Kind: KindStateDelta}); out != nil {
			t.Error("empty state delta emitted events")
		}
	})

	t.Run("custom passthrough", func(t *testing.T) {
		tr := NewTranslator("", "")
		out := tr.Translate(Native{Kind: KindCustom, Name: "usage", Value: 12})
		custom := out[0].(*events.CustomEvent)
		if custom.Name != "usage" {
			t.Errorf("unexpected name %q", custom.Name)
		}
	})

	t.Run("unrecognized kind yields nothing", func(t *testing.T) {
		tr := NewTranslator("", "")
		if out := tr.Translate(Native{Kind: Kind("future_thing")}); out != nil {
			t.Errorf("expected no events, got %d", len(out))
		}
	})
}

func TestTranslatorResponseDone(t *testing.T) {
	tr := NewTranslator("", "")
	tr.Translate(Native{Kind: KindTextDelta, Text: "a"})
	tr.Translate(Native{Kind: KindThinkingDelta, Text: "b"})
	tr.Translate(Native{Kind: KindRefusalDelta, Text: "c"})

	out := tr.Translate(Native{Kind: KindResponseDone})
	// text end, thinking message end + bracket end, refusal end
	if len(out) != 4 {
		t.Fatalf("expected 4 closing events, got %d", len(out))
	}

	// A new response opens a fresh thinking bracket.
	next := tr.Translate(Native{Kind: KindThinkingDelta, Text: "again"})
	if len(next) != 3 {
		t.Fatalf("expected fresh bracket, got %d events", len(next))
	}
}

func TestTranslatorForceCloseAll(t *testing.T) {
	tr := NewTranslator("", "")
	var seq []events.Event
	seq = append(seq, tr.Translate(Native{Kind: KindThinkingDelta, Text: "hmm"})...)
	seq = append(seq, tr.Translate(Native{Kind: KindTextDelta, Text: "partial"})...)
	seq = append(seq, tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "n1", ToolName: "f", Streaming: true})...)
	seq = append(seq, tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "n2", ToolName: "g", Streaming: true})...)
	seq = append(seq, tr.Translate(Native{Kind: KindRefusalDelta, Text: "no"})...)

	closing := tr.ForceCloseAll()
	seq = append(seq, closing...)
	if err := events.ValidateSequence(seq); err != nil {
		t.Fatalf("sequence invalid after force close: %v", err)
	}
	if out := tr.ForceCloseAll(); out != nil {
		t.Error("second force close emitted events")
	}

	// Fixed order: thinking before refusal, tool ends last in start order.
	var kinds []events.EventType
	for _, ev := range closing {
		kinds = append(kinds, ev.Type())
	}
	want := []events.EventType{
		events.EventTypeThinkingTextMessageEnd,
		events.EventTypeThinkingEnd,
		events.EventTypeTextMessageEnd,
		events.EventTypeToolCallEnd,
		events.EventTypeToolCallEnd,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d closing events, got %d (%v)", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("closing event %d: got %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestTranslatorReset(t *testing.T) {
	tr := NewTranslator("", "")
	tr.Translate(Native{Kind: KindTextDelta, Text: "a"})
	tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "n1", ToolName: "f", Streaming: true})
	tr.Reset()

	if out := tr.ForceCloseAll(); out != nil {
		t.Errorf("state survived reset: %d events", len(out))
	}
	// A remap against pre-reset state is a no-op; the id is free again.
	out := tr.Translate(Native{Kind: KindToolCallBegin, ToolCallID: "n1", ToolName: "f", Streaming: true})
	if len(out) != 1 {
		t.Errorf("expected fresh start after reset, got %d events", len(out))
	}
}
