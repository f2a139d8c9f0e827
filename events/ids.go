package events

import "github.com/google/uuid"

// GenerateMessageID returns a unique message ID with the protocol prefix.
func GenerateMessageID() string {
	return "msg-" + uuid.NewString()
}

// GenerateToolCallID returns a unique tool call ID with the protocol prefix.
func GenerateToolCallID() string {
	return "call-" + uuid.NewString()
}

// GenerateThreadID returns a unique thread ID with the protocol prefix.
func GenerateThreadID() string {
	return "thread-" + uuid.NewString()
}

// GenerateRunID returns a unique run ID with the protocol prefix.
func GenerateRunID() string {
	return "run-" + uuid.NewString()
}
