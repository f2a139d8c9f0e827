package events

import "testing"

func TestValidateSequence(t *testing.T) {
	t.Run("well formed run", func(t *testing.T) {
		seq := []Event{
			NewRunStartedEvent("thread-1", "run-1"),
			NewTextMessageStartEvent("msg-1"),
			NewTextMessageContentEvent("msg-1", "hello"),
			NewTextMessageEndEvent("msg-1"),
			NewToolCallStartEvent("call-1", "get_weather", WithParentMessageID("msg-1")),
			NewToolCallArgsEvent("call-1", `{"city":"Oslo"}`),
			NewToolCallEndEvent("call-1"),
			NewToolCallResultEvent("msg-2", "call-1", "sunny"),
			NewRunFinishedEvent("thread-1", "run-1"),
		}
		if err := ValidateSequence(seq); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("content before start", func(t *testing.T) {
		seq := []Event{
			NewTextMessageContentEvent("msg-1", "hello"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for content without start")
		}
	})

	t.Run("unterminated message", func(t *testing.T) {
		seq := []Event{
			NewTextMessageStartEvent("msg-1"),
			NewTextMessageContentEvent("msg-1", "hello"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for missing end")
		}
	})

	t.Run("reopened message id", func(t *testing.T) {
		seq := []Event{
			NewTextMessageStartEvent("msg-1"),
			NewTextMessageStartEvent("msg-1"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for duplicate start")
		}
	})

	t.Run("finish without start", func(t *testing.T) {
		seq := []Event{
			NewRunFinishedEvent("thread-1", "run-1"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for finishing unknown run")
		}
	})

	t.Run("finished run cannot restart", func(t *testing.T) {
		seq := []Event{
			NewRunStartedEvent("thread-1", "run-1"),
			NewRunFinishedEvent("thread-1", "run-1"),
			NewRunStartedEvent("thread-1", "run-1"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for restarting a finished run")
		}
	})

	t.Run("thinking message inside bracket", func(t *testing.T) {
		seq := []Event{
			NewThinkingStartEvent("planning"),
			NewThinkingTextMessageStartEvent("msg-t"),
			NewThinkingTextMessageContentEvent("msg-t", "pondering"),
			NewThinkingTextMessageEndEvent("msg-t"),
			NewThinkingEndEvent(),
		}
		if err := ValidateSequence(seq); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("thinking message outside bracket", func(t *testing.T) {
		seq := []Event{
			NewThinkingTextMessageStartEvent("msg-t"),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for thinking message outside block")
		}
	})

	t.Run("bracket closed over open message", func(t *testing.T) {
		seq := []Event{
			NewThinkingStartEvent(""),
			NewThinkingTextMessageStartEvent("msg-t"),
			NewThinkingEndEvent(),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for closing bracket over open message")
		}
	})

	t.Run("unterminated tool call", func(t *testing.T) {
		seq := []Event{
			NewToolCallStartEvent("call-1", "get_weather"),
			NewToolCallArgsEvent("call-1", `{"a"`),
		}
		if err := ValidateSequence(seq); err == nil {
			t.Error("expected error for missing tool call end")
		}
	})

	t.Run("interleaved messages allowed", func(t *testing.T) {
		seq := []Event{
			NewTextMessageStartEvent("msg-1"),
			NewTextMessageStartEvent("msg-2"),
			NewTextMessageContentEvent("msg-2", "b"),
			NewTextMessageContentEvent("msg-1", "a"),
			NewTextMessageEndEvent("msg-1"),
			NewTextMessageEndEvent("msg-2"),
		}
		if err := ValidateSequence(seq); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
