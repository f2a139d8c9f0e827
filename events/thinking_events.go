package events

import (
	"encoding/json"
	"fmt"
)

// ThinkingStartEvent opens a reasoning block. Thinking text message triples
// nest inside the THINKING_START / THINKING_END bracket.
type ThinkingStartEvent struct {
	BaseEvent
	Title string `json:"title,omitempty"`
}

// NewThinkingStartEvent creates a THINKING_START event. title may be empty.
func NewThinkingStartEvent(title string) *ThinkingStartEvent {
	return &ThinkingStartEvent{
		BaseEvent: NewBaseEvent(EventTypeThinkingStart),
		Title:     title,
	}
}

// Validate checks the event structure.
func (e *ThinkingStartEvent) Validate() error {
	return e.validateBase()
}

// ToJSON serializes the event for wire transport.
func (e *ThinkingStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingEndEvent closes a reasoning block.
type ThinkingEndEvent struct {
	BaseEvent
}

// NewThinkingEndEvent creates a THINKING_END event.
func NewThinkingEndEvent() *ThinkingEndEvent {
	return &ThinkingEndEvent{
		BaseEvent: NewBaseEvent(EventTypeThinkingEnd),
	}
}

// Validate checks the event structure.
func (e *ThinkingEndEvent) Validate() error {
	return e.validateBase()
}

// ToJSON serializes the event for wire transport.
func (e *ThinkingEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingTextMessageStartEvent opens a reasoning text message stream. Its
// message ID namespace is independent of regular text messages.
type ThinkingTextMessageStartEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
}

// NewThinkingTextMessageStartEvent creates a THINKING_TEXT_MESSAGE_START event.
func NewThinkingTextMessageStartEvent(messageID string) *ThinkingTextMessageStartEvent {
	return &ThinkingTextMessageStartEvent{
		BaseEvent: NewBaseEvent(EventTypeThinkingTextMessageStart),
		MessageID: messageID,
	}
}

// Validate checks the event structure and required fields.
func (e *ThinkingTextMessageStartEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("ThinkingTextMessageStartEvent validation failed: messageId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ThinkingTextMessageStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingTextMessageContentEvent carries one reasoning text fragment.
// Delta is never empty.
type ThinkingTextMessageContentEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
}

// NewThinkingTextMessageContentEvent creates a THINKING_TEXT_MESSAGE_CONTENT event.
func NewThinkingTextMessageContentEvent(messageID, delta string) *ThinkingTextMessageContentEvent {
	return &ThinkingTextMessageContentEvent{
		BaseEvent: NewBaseEvent(EventTypeThinkingTextMessageContent),
		MessageID: messageID,
		Delta:     delta,
	}
}

// Validate checks the event structure and required fields.
func (e *ThinkingTextMessageContentEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("ThinkingTextMessageContentEvent validation failed: messageId is required")
	}
	if e.Delta == "" {
		return fmt.Errorf("ThinkingTextMessageContentEvent validation failed: delta must not be empty")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ThinkingTextMessageContentEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ThinkingTextMessageEndEvent closes a reasoning text message stream.
type ThinkingTextMessageEndEvent struct {
	BaseEvent
	MessageID string `json:"messageId"`
}

// NewThinkingTextMessageEndEvent creates a THINKING_TEXT_MESSAGE_END event.
func NewThinkingTextMessageEndEvent(messageID string) *ThinkingTextMessageEndEvent {
	return &ThinkingTextMessageEndEvent{
		BaseEvent: NewBaseEvent(EventTypeThinkingTextMessageEnd),
		MessageID: messageID,
	}
}

// Validate checks the event structure and required fields.
func (e *ThinkingTextMessageEndEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("ThinkingTextMessageEndEvent validation failed: messageId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ThinkingTextMessageEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
