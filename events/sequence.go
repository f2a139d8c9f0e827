package events

import "fmt"

// ValidateSequence checks a recorded event sequence against the protocol's
// pairing rules: every Start has a matching later End with the same ID, no
// ID is reopened while still open, content and args events fall between
// their Start and End, and runs close with exactly one lifecycle event.
func ValidateSequence(seq []Event) error {
	activeRuns := make(map[string]bool)
	finishedRuns := make(map[string]bool)
	activeMessages := make(map[string]bool)
	activeToolCalls := make(map[string]bool)
	thinkingOpen := false
	thinkingMessage := ""

	for i, event := range seq {
		if err := event.Validate(); err != nil {
			return fmt.Errorf("event %d validation failed: %w", i, err)
		}

		switch ev := event.(type) {
		case *RunStartedEvent:
			if activeRuns[ev.RunID] {
				return fmt.Errorf("event %d: run %s already started", i, ev.RunID)
			}
			if finishedRuns[ev.RunID] {
				return fmt.Errorf("event %d: cannot restart finished run %s", i, ev.RunID)
			}
			activeRuns[ev.RunID] = true

		case *RunFinishedEvent:
			if !activeRuns[ev.RunID] {
				return fmt.Errorf("event %d: cannot finish run %s that was not started", i, ev.RunID)
			}
			delete(activeRuns, ev.RunID)
			finishedRuns[ev.RunID] = true

		case *TextMessageStartEvent:
			if activeMessages[ev.MessageID] {
				return fmt.Errorf("event %d: message %s already started", i, ev.MessageID)
			}
			activeMessages[ev.MessageID] = true

		case *TextMessageContentEvent:
			if !activeMessages[ev.MessageID] {
				return fmt.Errorf("event %d: content for message %s that was not started", i, ev.MessageID)
			}

		case *TextMessageEndEvent:
			if !activeMessages[ev.MessageID] {
				return fmt.Errorf("event %d: cannot end message %s that was not started", i, ev.MessageID)
			}
			delete(activeMessages, ev.MessageID)

		case *ThinkingStartEvent:
			if thinkingOpen {
				return fmt.Errorf("event %d: thinking block already open", i)
			}
			thinkingOpen = true

		case *ThinkingEndEvent:
			if !thinkingOpen {
				return fmt.Errorf("event %d: thinking block not open", i)
			}
			if thinkingMessage != "" {
				return fmt.Errorf("event %d: thinking block closed with open message %s", i, thinkingMessage)
			}
			thinkingOpen = false

		case *ThinkingTextMessageStartEvent:
			if !thinkingOpen {
				return fmt.Errorf("event %d: thinking message %s outside thinking block", i, ev.MessageID)
			}
			if thinkingMessage != "" {
				return fmt.Errorf("event %d: thinking message %s started while %s open", i, ev.MessageID, thinkingMessage)
			}
			thinkingMessage = ev.MessageID

		case *ThinkingTextMessageContentEvent:
			if thinkingMessage != ev.MessageID {
				return fmt.Errorf("event %d: content for thinking message %s that was not started", i, ev.MessageID)
			}

		case *ThinkingTextMessageEndEvent:
			if thinkingMessage != ev.MessageID {
				return fmt.Errorf("event %d: cannot end thinking message %s that was not started", i, ev.MessageID)
			}
			thinkingMessage = ""

		case *ToolCallStartEvent:
			if activeToolCalls[ev.ToolCallID] {
				return fmt.Errorf("event %d: tool call %s already started", i, ev.ToolCallID)
			}
			activeToolCalls[ev.ToolCallID] = true

		case *ToolCallArgsEvent:
			if !activeToolCalls[ev.ToolCallID] {
				return fmt.Errorf("event %d: args for tool call %s that was not started", i, ev.ToolCallID)
			}

		case *ToolCallEndEvent:
			if !activeToolCalls[ev.ToolCallID] {
				return fmt.Errorf("event %d: cannot end tool call %s that was not started", i, ev.ToolCallID)
			}
			delete(activeToolCalls, ev.ToolCallID)
		}
	}

	if len(activeMessages) > 0 {
		return fmt.Errorf("sequence ended with %d unterminated message(s)", len(activeMessages))
	}
	if thinkingMessage != "" || thinkingOpen {
		return fmt.Errorf("sequence ended with an open thinking block")
	}
	if len(activeToolCalls) > 0 {
		return fmt.Errorf("sequence ended with %d unterminated tool call(s)", len(activeToolCalls))
	}
	return nil
}
