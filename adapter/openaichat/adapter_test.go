package openaichat

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/openai/openai-go"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

func textChunk(content string) openai.ChatCompletionChunk {
	return openai.ChatCompletionChunk{
		Choices: []openai.ChatCompletionChunkChoice{{
			Delta: openai.ChatCompletionChunkChoiceDelta{Content: content},
		}},
	}
}

func toolChunk(index int64, id, name, args string) openai.ChatCompletionChunk {
	return openai.ChatCompletionChunk{
		Choices: []openai.ChatCompletionChunkChoice{{
			Delta: openai.ChatCompletionChunkChoiceDelta{
				ToolCalls: []openai.ChatCompletionChunkChoiceDeltaToolCall{{
					Index: index,
					ID:    id,
					Function: openai.ChatCompletionChunkChoiceDeltaToolCallFunction{
						Name:      name,
						Arguments: args,
					},
				}},
			},
		}},
	}
}

func finishChunk(reason string) openai.ChatCompletionChunk {
	return openai.ChatCompletionChunk{
		Choices: []openai.ChatCompletionChunkChoice{{FinishReason: reason}},
	}
}

func TestAdapterText(t *testing.T) {
	a := New()
	out := a.Chunk(textChunk("Hel"))
	if len(out) != 1 || out[0].Kind != translate.KindTextDelta || out[0].Text != "Hel" {
		t.Fatalf("unexpected events %+v", out)
	}
	if out := a.Chunk(openai.ChatCompletionChunk{}); out != nil {
		t.Errorf("empty chunk produced events: %+v", out)
	}
}

func TestAdapterRefusal(t *testing.T) {
	a := New()
	chunk := openai.ChatCompletionChunk{
		Choices: []openai.ChatCompletionChunkChoice{{
			Delta: openai.ChatCompletionChunkChoiceDelta{Refusal: "I can't help with that"},
		}},
	}
	out := a.Chunk(chunk)
	if len(out) != 1 || out[0].Kind != translate.KindRefusalDelta {
		t.Fatalf("unexpected events %+v", out)
	}
}

func TestAdapterStreamingToolCall(t *testing.T) {
	a := New()

	out := a.Chunk(toolChunk(0, "call_abc", "get_weather", ""))
	if len(out) != 1 {
		t.Fatalf("expected begin only, got %+v", out)
	}
	begin := out[0]
	if begin.Kind != translate.KindToolCallBegin || begin.ToolCallID != "call_abc" ||
		begin.ToolName != "get_weather" || !begin.Streaming {
		t.Fatalf("unexpected begin %+v", begin)
	}

	out = a.Chunk(toolChunk(0, "", "", `{"city":`))
	if len(out) != 1 || out[0].Kind != translate.KindToolCallDelta || out[0].ToolCallID != "call_abc" {
		t.Fatalf("unexpected delta %+v", out)
	}
	out = a.Chunk(toolChunk(0, "", "", `"Oslo"}`))
	if out[0].ArgsDelta != `"Oslo"}` {
		t.Fatalf("unexpected fragment %+v", out[0])
	}

	out = a.Chunk(finishChunk("tool_calls"))
	if len(out) != 2 {
		t.Fatalf("expected done+response done, got %+v", out)
	}
	if out[0].Kind != translate.KindToolCallDone || out[0].ToolCallID != "call_abc" {
		t.Errorf("unexpected done %+v", out[0])
	}
	if out[1].Kind != translate.KindResponseDone {
		t.Errorf("unexpected terminator %+v", out[1])
	}
}

func TestAdapterFirstChunkWithArgs(t *testing.T) {
	a := New()
	out := a.Chunk(toolChunk(0, "call_abc", "get_weather", `{"ci`))
	if len(out) != 2 {
		t.Fatalf("expected begin+delta, got %+v", out)
	}
	if out[1].Kind != translate.KindToolCallDelta || out[1].ArgsDelta != `{"ci` {
		t.Errorf("first fragment dropped: %+v", out[1])
	}
}

func TestAdapterParallelToolCalls(t *testing.T) {
	a := New()
	a.Chunk(toolChunk(0, "call_a", "f1", ""))
	a.Chunk(toolChunk(1, "call_b", "f2", ""))
	a.Chunk(toolChunk(0, "", "", `{}`))

	out := a.Chunk(finishChunk("tool_calls"))
	if len(out) != 3 {
		t.Fatalf("expected two dones + response done, got %+v", out)
	}
	if out[0].ToolCallID != "call_a" || out[1].ToolCallID != "call_b" {
		t.Errorf("dones out of start order: %+v", out[:2])
	}
}

func TestAdapterMissingToolCallID(t *testing.T) {
	a := New()
	out := a.Chunk(toolChunk(0, "", "get_weather", ""))
	if out[0].ToolCallID == "" {
		t.Error("expected generated id for idless first chunk")
	}
}

type fakeStream struct {
	chunks []openai.ChatCompletionChunk
	err    error
	pos    int
}

func (s *fakeStream) Next() bool {
	if s.pos >= len(s.chunks) {
		return false
	}
	s.pos++
	return true
}

func (s *fakeStream) Current() openai.ChatCompletionChunk {
	return s.chunks[s.pos-1]
}

func (s *fakeStream) Err() error {
	return s.err
}

func TestSourceEndToEnd(t *testing.T) {
	stream := &fakeStream{chunks: []openai.ChatCompletionChunk{
		textChunk("Hel"),
		textChunk("lo"),
		toolChunk(0, "call_a", "f", ""),
		toolChunk(0, "", "", `{}`),
		finishChunk("tool_calls"),
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
	if _, ok := seq[len(seq)-1].(*events.RunFinishedEvent); !ok {
		t.Errorf("expected RUN_FINISHED last, got %T", seq[len(seq)-1])
	}
}

func TestSourceStreamError(t *testing.T) {
	stream := &fakeStream{
		chunks: []openai.ChatCompletionChunk{textChunk("partial")},
		err:    errors.New("connection reset"),
	}
	src := NewSource(stream)
	ctx := context.Background()
	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("expected buffered event, got %v", err)
	}
	if _, err := src.Next(ctx); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected stream error, got %v", err)
	}
}
