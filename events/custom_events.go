package events

import (
	"encoding/json"
	"fmt"
)

// CustomEvent is the escape hatch for framework-specific metadata that has
// no protocol equivalent.
type CustomEvent struct {
	BaseEvent
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
}

// NewCustomEvent creates a CUSTOM event.
func NewCustomEvent(name string, value any) *CustomEvent {
	return &CustomEvent{
		BaseEvent: NewBaseEvent(EventTypeCustom),
		Name:      name,
		Value:     value,
	}
}

// Validate checks the event structure and required fields.
func (e *CustomEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.Name == "" {
		return fmt.Errorf("CustomEvent validation failed: name is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *CustomEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RawEvent passes a framework-native event through untranslated.
type RawEvent struct {
	BaseEvent
	Event  any    `json:"event"`
	Source string `json:"source,omitempty"`
}

// NewRawEvent creates a RAW event.
func NewRawEvent(event any) *RawEvent {
	return &RawEvent{
		BaseEvent: NewBaseEvent(EventTypeRaw),
		Event:     event,
	}
}

// Validate checks the event structure and required fields.
func (e *RawEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.Event == nil {
		return fmt.Errorf("RawEvent validation failed: event is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *RawEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
