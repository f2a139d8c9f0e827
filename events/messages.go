package events

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a message. The protocol role set is closed.
type Role string

// Protocol message roles.
const (
	RoleDeveloper Role = "developer"
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the protocol roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDeveloper, RoleSystem, RoleAssistant, RoleUser, RoleTool:
		return true
	}
	return false
}

// FunctionCall is the name and serialized JSON arguments of a tool call
// carried on an assistant message.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is a tool invocation recorded on an assistant message.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// Message is one entry in a conversation history, as exchanged in
// RunAgentInput and MESSAGES_SNAPSHOT events.
type Message struct {
	ID         string     `json:"id"`
	Role       Role       `json:"role"`
	Content    *string    `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"toolCalls,omitempty"`
	ToolCallID *string    `json:"toolCallId,omitempty"`
}

// Validate checks the message against the protocol's role and field rules.
func (m *Message) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("message validation failed: invalid role %q", m.Role)
	}
	if m.Role == RoleTool && (m.ToolCallID == nil || *m.ToolCallID == "") {
		return fmt.Errorf("message validation failed: tool message requires toolCallId")
	}
	if m.Role != RoleAssistant && len(m.ToolCalls) > 0 {
		return fmt.Errorf("message validation failed: only assistant messages may carry tool calls")
	}
	return nil
}

// Tool is a tool definition advertised to the agent, with JSON-Schema
// parameters.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// Context is one item of free-form context forwarded with a run request.
type Context struct {
	Description string `json:"description,omitempty"`
	Value       string `json:"value"`
}

// RunAgentInput is the inbound request to run an agent: thread and run
// identity, prior conversation, tool definitions, and free-form state.
type RunAgentInput struct {
	ThreadID       string    `json:"threadId"`
	RunID          string    `json:"runId"`
	Messages       []Message `json:"messages"`
	Tools          []Tool    `json:"tools,omitempty"`
	Context        []Context `json:"context,omitempty"`
	State          any       `json:"state,omitempty"`
	ForwardedProps any       `json:"forwardedProps,omitempty"`
}
