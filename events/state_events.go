package events

import (
	"encoding/json"
	"fmt"
)

// StateSnapshotEvent replaces the client's view of shared state wholesale.
type StateSnapshotEvent struct {
	BaseEvent
	Snapshot any `json:"snapshot"`
}

// NewStateSnapshotEvent creates a STATE_SNAPSHOT event.
func NewStateSnapshotEvent(snapshot any) *StateSnapshotEvent {
	return &StateSnapshotEvent{
		BaseEvent: NewBaseEvent(EventTypeStateSnapshot),
		Snapshot:  snapshot,
	}
}

// Validate checks the event structure and required fields.
func (e *StateSnapshotEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.Snapshot == nil {
		return fmt.Errorf("StateSnapshotEvent validation failed: snapshot is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *StateSnapshotEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// JSONPatchOperation is a single RFC 6902 operation within a STATE_DELTA.
type JSONPatchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
	From  string `json:"from,omitempty"`
}

// StateDeltaEvent applies incremental changes to the client's state view.
type StateDeltaEvent struct {
	BaseEvent
	Delta []JSONPatchOperation `json:"delta"`
}

// NewStateDeltaEvent creates a STATE_DELTA event.
func NewStateDeltaEvent(delta []JSONPatchOperation) *StateDeltaEvent {
	return &StateDeltaEvent{
		BaseEvent: NewBaseEvent(EventTypeStateDelta),
		Delta:     delta,
	}
}

// Validate checks the event structure and required fields.
func (e *StateDeltaEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if len(e.Delta) == 0 {
		return fmt.Errorf("StateDeltaEvent validation failed: delta must not be empty")
	}
	for i, op := range e.Delta {
		switch op.Op {
		case "add", "remove", "replace", "move", "copy", "test":
		default:
			return fmt.Errorf("StateDeltaEvent validation failed: delta[%d] has invalid op %q", i, op.Op)
		}
		if op.Path == "" {
			return fmt.Errorf("StateDeltaEvent validation failed: delta[%d] is missing path", i)
		}
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *StateDeltaEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// MessagesSnapshotEvent replaces the client's view of the conversation
// history wholesale.
type MessagesSnapshotEvent struct {
	BaseEvent
	Messages []Message `json:"messages"`
}

// NewMessagesSnapshotEvent creates a MESSAGES_SNAPSHOT event.
func NewMessagesSnapshotEvent(messages []Message) *MessagesSnapshotEvent {
	return &MessagesSnapshotEvent{
		BaseEvent: NewBaseEvent(EventTypeMessagesSnapshot),
		Messages:  messages,
	}
}

// Validate checks the event structure.
func (e *MessagesSnapshotEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	for i, m := range e.Messages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("MessagesSnapshotEvent validation failed: messages[%d]: %w", i, err)
		}
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *MessagesSnapshotEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
