package translate

import "github.com/spetersoncode/agui/events"

// ThinkingStream aggregates reasoning fragments into a thinking text
// message triple nested inside a THINKING_START / THINKING_END bracket.
// Its message id namespace is independent of the text channel.
type ThinkingStream struct {
	bracketOpen bool
	messageOpen bool
	messageID   string
	title       string
}

// NewThinkingStream creates an aggregator with no open bracket.
func NewThinkingStream() *ThinkingStream {
	return &ThinkingStream{}
}

// Open reports whether a thinking bracket is currently open.
func (s *ThinkingStream) Open() bool {
	return s.bracketOpen
}

// SetTitle labels the next thinking bracket this stream opens. It has no
// effect on a bracket that is already open.
func (s *ThinkingStream) SetTitle(title string) {
	if !s.bracketOpen {
		s.title = title
	}
}

// HandleFragment appends one reasoning fragment. The first non-empty
// fragment opens the bracket and the inner message; empty fragments
// yield nothing.
func (s *ThinkingStream) HandleFragment(text string) []events.Event {
	if text == "" {
		return nil
	}
	var out []events.Event
	if !s.bracketOpen {
		out = append(out, events.NewThinkingStartEvent(s.title))
		s.bracketOpen = true
		s.title = ""
	}
	if !s.messageOpen {
		s.messageID = events.GenerateMessageID()
		s.messageOpen = true
		out = append(out, events.NewThinkingTextMessageStartEvent(s.messageID))
	}
	out = append(out, events.NewThinkingTextMessageContentEvent(s.messageID, text))
	return out
}

// ForceClose ends the inner message and the bracket, in that order, if
// open. Idempotent.
func (s *ThinkingStream) ForceClose() []events.Event {
	var out []events.Event
	if s.messageOpen {
		out = append(out, events.NewThinkingTextMessageEndEvent(s.messageID))
		s.messageOpen = false
		s.messageID = ""
	}
	if s.bracketOpen {
		out = append(out, events.NewThinkingEndEvent())
		s.bracketOpen = false
	}
	return out
}

// Reset clears all state, including a pending title.
func (s *ThinkingStream) Reset() {
	s.bracketOpen = false
	s.messageOpen = false
	s.messageID = ""
	s.title = ""
}
