package events

import (
	"encoding/json"
	"fmt"
)

// ActivitySnapshotEvent is a progress or keep-alive signal. When Replace is
// true, the event supersedes the previous snapshot with the same message ID
// instead of appending, so renderers overwrite in place.
type ActivitySnapshotEvent struct {
	BaseEvent
	MessageID    string `json:"messageId"`
	ActivityType string `json:"activityType"`
	Content      any    `json:"content"`
	Replace      bool   `json:"replace"`
}

// NewActivitySnapshotEvent creates an ACTIVITY_SNAPSHOT event with
// Replace set to true.
func NewActivitySnapshotEvent(messageID, activityType string, content any) *ActivitySnapshotEvent {
	return &ActivitySnapshotEvent{
		BaseEvent:    NewBaseEvent(EventTypeActivitySnapshot),
		MessageID:    messageID,
		ActivityType: activityType,
		Content:      content,
		Replace:      true,
	}
}

// Validate checks the event structure and required fields.
func (e *ActivitySnapshotEvent) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("ActivitySnapshotEvent validation failed: messageId is required")
	}
	if e.ActivityType == "" {
		return fmt.Errorf("ActivitySnapshotEvent validation failed: activityType is required")
	}
	return nil
}

// ToJSON serializes the event for wire transport.
func (e *ActivitySnapshotEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
