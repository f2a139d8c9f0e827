package events

import (
	"fmt"
	"time"
)

// EventType identifies the kind of AG-UI event.
type EventType string

// AG-UI event type constants, matching the protocol specification.
const (
	EventTypeRunStarted  EventType = "RUN_STARTED"
	EventTypeRunFinished EventType = "RUN_FINISHED"
	EventTypeRunError    EventType = "RUN_ERROR"

	EventTypeTextMessageStart   EventType = "TEXT_MESSAGE_START"
	EventTypeTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	EventTypeTextMessageEnd     EventType = "TEXT_MESSAGE_END"

	EventTypeThinkingStart              EventType = "THINKING_START"
	EventTypeThinkingEnd                EventType = "THINKING_END"
	EventTypeThinkingTextMessageStart   EventType = "THINKING_TEXT_MESSAGE_START"
	EventTypeThinkingTextMessageContent EventType = "THINKING_TEXT_MESSAGE_CONTENT"
	EventTypeThinkingTextMessageEnd     EventType = "THINKING_TEXT_MESSAGE_END"

	EventTypeToolCallStart  EventType = "TOOL_CALL_START"
	EventTypeToolCallArgs   EventType = "TOOL_CALL_ARGS"
	EventTypeToolCallEnd    EventType = "TOOL_CALL_END"
	EventTypeToolCallResult EventType = "TOOL_CALL_RESULT"

	EventTypeStateSnapshot    EventType = "STATE_SNAPSHOT"
	EventTypeStateDelta       EventType = "STATE_DELTA"
	EventTypeMessagesSnapshot EventType = "MESSAGES_SNAPSHOT"
	EventTypeActivitySnapshot EventType = "ACTIVITY_SNAPSHOT"

	EventTypeCustom EventType = "CUSTOM"
	EventTypeRaw    EventType = "RAW"
)

var validEventTypes = map[EventType]bool{
	EventTypeRunStarted:                 true,
	EventTypeRunFinished:                true,
	EventTypeRunError:                   true,
	EventTypeTextMessageStart:           true,
	EventTypeTextMessageContent:         true,
	EventTypeTextMessageEnd:             true,
	EventTypeThinkingStart:              true,
	EventTypeThinkingEnd:                true,
	EventTypeThinkingTextMessageStart:   true,
	EventTypeThinkingTextMessageContent: true,
	EventTypeThinkingTextMessageEnd:     true,
	EventTypeToolCallStart:              true,
	EventTypeToolCallArgs:               true,
	EventTypeToolCallEnd:                true,
	EventTypeToolCallResult:             true,
	EventTypeStateSnapshot:              true,
	EventTypeStateDelta:                 true,
	EventTypeMessagesSnapshot:           true,
	EventTypeActivitySnapshot:           true,
	EventTypeCustom:                     true,
	EventTypeRaw:                        true,
}

// Event is the common interface for all AG-UI events.
type Event interface {
	// Type returns the event type tag.
	Type() EventType

	// Timestamp returns the event timestamp (Unix milliseconds), or nil.
	Timestamp() *int64

	// SetTimestamp sets the event timestamp (Unix milliseconds).
	SetTimestamp(timestamp int64)

	// Validate checks the event structure and required fields.
	Validate() error

	// ToJSON serializes the event for cross-SDK wire compatibility.
	ToJSON() ([]byte, error)
}

// BaseEvent provides the common type tag and timestamp for all events.
type BaseEvent struct {
	EventType   EventType `json:"type"`
	TimestampMs *int64    `json:"timestamp,omitempty"`
}

// NewBaseEvent creates a base event of the given type stamped with the
// current time.
func NewBaseEvent(eventType EventType) BaseEvent {
	now := time.Now().UnixMilli()
	return BaseEvent{
		EventType:   eventType,
		TimestampMs: &now,
	}
}

// Type returns the event type tag.
func (b *BaseEvent) Type() EventType {
	return b.EventType
}

// Timestamp returns the event timestamp (Unix milliseconds), or nil.
func (b *BaseEvent) Timestamp() *int64 {
	return b.TimestampMs
}

// SetTimestamp sets the event timestamp (Unix milliseconds).
func (b *BaseEvent) SetTimestamp(timestamp int64) {
	b.TimestampMs = &timestamp
}

func (b *BaseEvent) validateBase() error {
	if b.EventType == "" {
		return fmt.Errorf("event validation failed: type field is required")
	}
	if !validEventTypes[b.EventType] {
		return fmt.Errorf("event validation failed: invalid event type %q", b.EventType)
	}
	return nil
}
