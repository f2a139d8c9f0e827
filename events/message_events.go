package events

import (
	"encoding/json"
	"fmt"
)

// TextMessageStartEvent opens an assistant text message stream.
type TextMessageStartEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
	Role      string `json:"role"`
}

// TextMessageStartOption configures a TextMessageStartEvent.
type TextMessageStartOption func(*TextMessageStartEvent)

// WithRole overrides the role on a TEXT_MESSAGE_START event. The default
// is "assistant".
func WithRole(role string) TextMessageStartOption {
	return func(e *TextMessageStartEvent) {
		e.Role = role
	}
}

// NewTextMessageStartEvent creates a TEXT_MESSAGE_START event with the
// assistant role.
func NewTextMessageStartEvent(messageID string, opts ...TextMessageStartOption) *TextMessageStartEvent {
	e := &TextMessageStartEvent{
		BaseEvent: NewBaseEvent(EventTypeTextMessageStart),
		MessageID: messageID,
		Role:      string(RoleAssistant),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks the event structure and required fields.
func (e *TextMessageStartEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TextMessageStartEvent validation failed: messageId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *TextMessageStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TextMessageContentEvent carries one incremental text fragment. Delta is
// never empty: zero-length fragments are dropped by producers, not emitted.
type TextMessageContentEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
}

// NewTextMessageContentEvent creates a TEXT_MESSAGE_CONTENT event.
func NewTextMessageContentEvent(messageID, delta string) *TextMessageContentEvent {
	return &TextMessageContentEvent{
		BaseEvent: NewBaseEvent(EventTypeTextMessageContent),
		MessageID: messageID,
		Delta:     delta,
	}
}

// Validate checks the event structure and required fields.
func (e *TextMessageContentEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TextMessageContentEvent validation failed: messageId is required")
	}
	if e.Delta == "" {
		return fmt.Errorf("TextMessageContentEvent validation failed: delta must not be empty")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *TextMessageContentEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TextMessageEndEvent closes an assistant text message stream.
type TextMessageEndEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
}

// NewTextMessageEndEvent creates a TEXT_MESSAGE_END event.
func NewTextMessageEndEvent(messageID string) *TextMessageEndEvent {
	return &TextMessageEndEvent{
		BaseEvent: NewBaseEvent(EventTypeTextMessageEnd),
		MessageID: messageID,
	}
}

// Validate checks the event structure and required fields.
func (e *TextMessageEndEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("TextMessageEndEvent validation failed: messageId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *TextMessageEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
