package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

func mustEvent(t *testing.T, raw string) sdk.MessageStreamEventUnion {
	t.Helper()
	var ev sdk.MessageStreamEventUnion
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}
	return ev
}

func TestAdapterTextBlock(t *testing.T) {
	a := New()
	a.Event(mustEvent(t, `{"type": "content_block_start", "index": 0, "content_block": {"type": "text", "text": ""}}`))

	out := a.Event(mustEvent(t, `{"type": "content_block_delta", "index": 0, "delta": {"type": "text_delta", "text": "hello"}}`))
	if len(out) != 1 || out[0].Kind != translate.KindTextDelta || out[0].Text != "hello" {
		t.Fatalf("unexpected events %+v", out)
	}

	out = a.Event(mustEvent(t, `{"type": "content_block_stop", "index": 0}`))
	if len(out) != 1 || out[0].Kind != translate.KindTextDone {
		t.Fatalf("unexpected events %+v", out)
	}
}

func TestAdapterThinkingBlock(t *testing.T) {
	a := New()
	a.Event(mustEvent(t, `{"type": "content_block_start", "index": 0, "content_block": {"type": "thinking", "thinking": ""}}`))

	out := a.Event(mustEvent(t, `{"type": "content_block_delta", "index": 0, "delta": {"type": "thinking_delta", "thinking": "let me see"}}`))
	if len(out) != 1 || out[0].Kind != translate.KindThinkingDelta || out[0].Text != "let me see" {
		t.Fatalf("unexpected events %+v", out)
	}

	// Signature deltas are bookkeeping, not content.
	out = a.Event(mustEvent(t, `{"type": "content_block_delta", "index": 0, "delta": {"type": "signature_delta", "signature": "abc"}}`))
	if out != nil {
		t.Fatalf("signature delta produced events: %+v", out)
	}

	out = a.Event(mustEvent(t, `{"type": "content_block_stop", "index": 0}`))
	if len(out) != 1 || out[0].Kind != translate.KindThinkingDone {
		t.Fatalf("unexpected events %+v", out)
	}
}

func TestAdapterToolUseBlock(t *testing.T) {
	a := New()
	out := a.Event(mustEvent(t, `{"type": "content_block_start", "index": 1, "content_block": {"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": {}}}`))
	if len(out) != 1 {
		t.Fatalf("expected begin, got %+v", out)
	}
	begin := out[0]
	if begin.Kind != translate.KindToolCallBegin || begin.ToolCallID != "toolu_1" ||
		begin.ToolName != "get_weather" || !begin.Streaming {
		t.Fatalf("unexpected begin %+v", begin)
	}

	out = a.Event(mustEvent(t, `{"type": "content_block_delta", "index": 1, "delta": {"type": "input_json_delta", "partial_json": "{\"city\":"}}`))
	if len(out) != 1 || out[0].Kind != translate.KindToolCallDelta || out[0].ToolCallID != "toolu_1" {
		t.Fatalf("unexpected delta %+v", out)
	}

	out = a.Event(mustEvent(t, `{"type": "content_block_stop", "index": 1}`))
	if len(out) != 1 || out[0].Kind != translate.KindToolCallDone || out[0].ToolCallID != "toolu_1" {
		t.Fatalf("unexpected stop %+v", out)
	}
}

func TestAdapterMessageLifecycle(t *testing.T) {
	a := New()
	if out := a.Event(mustEvent(t, `{"type": "message_start", "message": {"id": "msg_1", "role": "assistant", "content": []}}`)); out != nil {
		t.Errorf("message_start produced events: %+v", out)
	}
	out := a.Event(mustEvent(t, `{"type": "message_stop"}`))
	if len(out) != 1 || out[0].Kind != translate.KindResponseDone {
		t.Fatalf("unexpected events %+v", out)
	}
	if out := a.Event(mustEvent(t, `{"type": "content_block_stop", "index": 9}`)); out != nil {
		t.Errorf("stop for unknown block produced events: %+v", out)
	}
}

type fakeStream struct {
	events []sdk.MessageStreamEventUnion
	err    error
	pos    int
}

func (s *fakeStream) Next() bool {
	if s.pos >= len(s.events) {
		return false
	}
	s.pos++
	return true
}

func (s *fakeStream) Current() sdk.MessageStreamEventUnion {
	return s.events[s.pos-1]
}

func (s *fakeStream) Err() error {
	return s.err
}

func TestSourceEndToEnd(t *testing.T) {
	stream := &fakeStream{events: []sdk.MessageStreamEventUnion{
		mustEvent(t, `{"type": "message_start", "message": {"id": "msg_1", "role": "assistant", "content": []}}`),
		mustEvent(t, `{"type": "content_block_start", "index": 0, "content_block": {"type": "thinking", "thinking": ""}}`),
		mustEvent(t, `{"type": "content_block_delta", "index": 0, "delta": {"type": "thinking_delta", "thinking": "checking the forecast"}}`),
		mustEvent(t, `{"type": "content_block_stop", "index": 0}`),
		mustEvent(t, `{"type": "content_block_start", "index": 1, "content_block": {"type": "text", "text": ""}}`),
		mustEvent(t, `{"type": "content_block_delta", "index": 1, "delta": {"type": "text_delta", "text": "Here is the weather."}}`),
		mustEvent(t, `{"type": "content_block_stop", "index": 1}`),
		mustEvent(t, `{"type": "content_block_start", "index": 2, "content_block": {"type": "tool_use", "id": "toolu_1", "name": "get_weather", "input": {}}}`),
		mustEvent(t, `{"type": "content_block_delta", "index": 2, "delta": {"type": "input_json_delta", "partial_json": "{}"}}`),
		mustEvent(t, `{"type": "content_block_stop", "index": 2}`),
		mustEvent(t, `{"type": "message_stop"}`),
	}}

	tr := translate.NewTranslator("thread-1", "run-1")
	q := translate.NewQueue(0)
	if err := translate.Run(context.Background(), tr, NewSource(stream), q); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	q.Close()

	var seq []events.Event
	ctx := context.Background()
	for {
		ev, err := q.Get(ctx)
		if errors.Is(err, translate.ErrQueueClosed) {
			break
		}
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		seq = append(seq, ev)
	}
	if err := events.ValidateSequence(seq); err != nil {
		t.Fatalf("sequence invalid: %v", err)
	}

	var sawThinking, sawText, sawTool bool
	for _, ev := range seq {
		switch ev.(type) {
		case *events.ThinkingTextMessageContentEvent:
			sawThinking = true
		case *events.TextMessageContentEvent:
			sawText = true
		case *events.ToolCallStartEvent:
			sawTool = true
		}
	}
	if !sawThinking || !sawText || !sawTool {
		t.Errorf("missing channels: thinking=%v text=%v tool=%v", sawThinking, sawText, sawTool)
	}
}

func TestSourceStreamError(t *testing.T) {
	stream := &fakeStream{err: errors.New("connection reset")}
	src := NewSource(stream)
	if _, err := src.Next(context.Background()); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected stream error, got %v", err)
	}
}
