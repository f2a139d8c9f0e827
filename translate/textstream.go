package translate

import "github.com/spetersoncode/agui/events"

// TextStream aggregates incremental text fragments into a single
// start/content/end message triple. At most one message is open at a
// time; the message id is allocated on the first non-empty fragment and
// reused until the stream is closed.
//
// The same aggregator serves the assistant text channel and the refusal
// channel; each gets its own instance with its own id namespace.
type TextStream struct {
	role      string
	messageID string
	nextID    string
	open      bool
}

// TextStreamOption configures a TextStream.
type TextStreamOption func(*TextStream)

// WithStreamRole overrides the role emitted on TEXT_MESSAGE_START.
func WithStreamRole(role string) TextStreamOption {
	return func(s *TextStream) {
		s.role = role
	}
}

// NewTextStream creates an aggregator with no open message.
func NewTextStream(opts ...TextStreamOption) *TextStream {
	s := &TextStream{role: string(events.RoleAssistant)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open reports whether a message is currently open.
func (s *TextStream) Open() bool {
	return s.open
}

// MessageID returns the id of the open message, or "" when closed.
func (s *TextStream) MessageID() string {
	if !s.open {
		return ""
	}
	return s.messageID
}

// UseMessageID fixes the id for the next message this stream opens, for
// frameworks that assign their own item ids. It has no effect on a
// message that is already open.
func (s *TextStream) UseMessageID(id string) {
	if !s.open {
		s.nextID = id
	}
}

// HandleFragment appends one text fragment. The first non-empty fragment
// opens a message and yields a Start/Content pair; later fragments yield
// a single Content event with the same id. Empty fragments yield nothing
// and never open or close a message.
func (s *TextStream) HandleFragment(text string) []events.Event {
	if text == "" {
		return nil
	}
	var out []events.Event
	if !s.open {
		id := s.nextID
		if id == "" {
			id = events.GenerateMessageID()
		}
		s.nextID = ""
		s.messageID = id
		s.open = true
		out = append(out, events.NewTextMessageStartEvent(id, events.WithRole(s.role)))
	}
	out = append(out, events.NewTextMessageContentEvent(s.messageID, text))
	return out
}

// ForceClose ends the open message, if any. Idempotent.
func (s *TextStream) ForceClose() []events.Event {
	if !s.open {
		return nil
	}
	id := s.messageID
	s.open = false
	s.messageID = ""
	return []events.Event{events.NewTextMessageEndEvent(id)}
}

// Reset clears all state, including a pending fixed message id.
func (s *TextStream) Reset() {
	s.open = false
	s.messageID = ""
	s.nextID = ""
}
