package events

import (
	"encoding/json"
	"fmt"
)

// ToolCallStartEvent opens a tool call stream. Multiple tool calls may be
// open concurrently; each is keyed by its tool call ID.
type ToolCallStartEvent struct {
	BaseEvent
	ToolCallID      string `json:"toolCallId"`
	ToolCallName    string `json:"toolCallName"`
	ParentMessageID string `json:"parentMessageId,omitempty"`
}

// ToolCallStartOption configures a ToolCallStartEvent.
type ToolCallStartOption func(*ToolCallStartEvent)

// WithParentMessageID links a tool call to the assistant message that
// requested it.
func WithParentMessageID(messageID string) ToolCallStartOption {
	return func(e *ToolCallStartEvent) {
		e.ParentMessageID = messageID
	}
}

// NewToolCallStartEvent creates a TOOL_CALL_START event.
func NewToolCallStartEvent(toolCallID, toolCallName string, opts ...ToolCallStartOption) *ToolCallStartEvent {
	e := &ToolCallStartEvent{
		BaseEvent:    NewBaseEvent(EventTypeToolCallStart),
		ToolCallID:   toolCallID,
		ToolCallName: toolCallName,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks the event structure and required fields.
func (e *ToolCallStartEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("ToolCallStartEvent validation failed: toolCallId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ToolCallStartEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallArgsEvent carries one fragment of the serialized tool arguments.
// Concatenating the deltas of one tool call yields its full JSON arguments.
type ToolCallArgsEvent struct {
	BaseEvent
	ToolCallID string `json:"toolCallId"`
	Delta      string `json:"delta"`
}

// NewToolCallArgsEvent creates a TOOL_CALL_ARGS event.
func NewToolCallArgsEvent(toolCallID, delta string) *ToolCallArgsEvent {
	return &ToolCallArgsEvent{
		BaseEvent:  NewBaseEvent(EventTypeToolCallArgs),
		ToolCallID: toolCallID,
		Delta:      delta,
	}
}

// Validate checks the event structure and required fields.
func (e *ToolCallArgsEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("ToolCallArgsEvent validation failed: toolCallId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ToolCallArgsEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallEndEvent closes a tool call stream. The tool call ID remains
// valid for a later TOOL_CALL_RESULT.
type ToolCallEndEvent struct {
	BaseEvent
	ToolCallID string `json:"toolCallId"`
}

// NewToolCallEndEvent creates a TOOL_CALL_END event.
func NewToolCallEndEvent(toolCallID string) *ToolCallEndEvent {
	return &ToolCallEndEvent{
		BaseEvent:  NewBaseEvent(EventTypeToolCallEnd),
		ToolCallID: toolCallID,
	}
}

// Validate checks the event structure and required fields.
func (e *ToolCallEndEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("ToolCallEndEvent validation failed: toolCallId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ToolCallEndEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ToolCallResultEvent reports the outcome of an executed tool call. Its
// tool call ID must equal the ID used in the corresponding TOOL_CALL_START
// and TOOL_CALL_END, even when the underlying framework reported the result
// under a different identifier.
type ToolCallResultEvent struct {
	BaseEvent
	MessageID  string `json:"messageId"`
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
	Role       string `json:"role,omitempty"`
}

// NewToolCallResultEvent creates a TOOL_CALL_RESULT event.
func NewToolCallResultEvent(messageID, toolCallID, content string) *ToolCallResultEvent {
	return &ToolCallResultEvent{
		BaseEvent:  NewBaseEvent(EventTypeToolCallResult),
		MessageID:  messageID,
		ToolCallID: toolCallID,
		Content:    content,
		Role:       string(RoleTool),
	}
}

// Validate checks the event structure and required fields.
func (e *ToolCallResultEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("ToolCallResultEvent validation failed: messageId is required")
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("ToolCallResultEvent validation failed: toolCallId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ToolCallResultEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
