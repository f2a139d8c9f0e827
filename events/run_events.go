package events

import (
	"encoding/json"
	"fmt"
)

// RunStartedEvent opens a run. Exactly one RunStartedEvent is emitted per
// run, before any other event for that run.
type RunStartedEvent struct {
	BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
}

// NewRunStartedEvent creates a RUN_STARTED event.
func NewRunStartedEvent(threadID, runID string) *RunStartedEvent {
	return &RunStartedEvent{
		BaseEvent: NewBaseEvent(EventTypeRunStarted),
		ThreadID:  threadID,
		RunID:     runID,
	}
}

// Validate checks the event structure and required fields.
func (e *RunStartedEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.ThreadID == "" {
		return fmt.Errorf("RunStartedEvent validation failed: threadId is required")
	}
	if e.RunID == "" {
		return fmt.Errorf("RunStartedEvent validation failed: runId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *RunStartedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RunFinishedEvent closes a run that completed normally. Result optionally
// carries the run outcome for the client.
type RunFinishedEvent struct {
	BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
	Result   any    `json:"result,omitempty"`
}

// NewRunFinishedEvent creates a RUN_FINISHED event.
func NewRunFinishedEvent(threadID, runID string) *RunFinishedEvent {
	return &RunFinishedEvent{
		BaseEvent: NewBaseEvent(EventTypeRunFinished),
		ThreadID:  threadID,
		RunID:     runID,
	}
}

// Validate checks the event structure and required fields.
func (e *RunFinishedEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.ThreadID == "" {
		return fmt.Errorf("RunFinishedEvent validation failed: threadId is required")
	}
	if e.RunID == "" {
		return fmt.Errorf("RunFinishedEvent validation failed: runId is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *RunFinishedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RunErrorEvent closes a run that failed. It is the terminal event for the
// run: no further events follow it.
type RunErrorEvent struct {
	BaseEvent
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewRunErrorEvent creates a RUN_ERROR event.
func NewRunErrorEvent(message string) *RunErrorEvent {
	return &RunErrorEvent{
		BaseEvent: NewBaseEvent(EventTypeRunError),
		Message:   message,
	}
}

// Validate checks the event structure and required fields.
func (e *RunErrorEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.Message == "" {
		return fmt.Errorf("RunErrorEvent validation failed: message is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *RunErrorEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
