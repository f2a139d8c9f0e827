// Package mcptool bridges AG-UI tool definitions and MCP (Model
// Context Protocol) tools.
//
// Frontend tools arrive in a run request as name/description/JSON-Schema
// triples; MCP servers describe theirs the same way. This package
// converts both directions so an agent can expose frontend tools to an
// MCP client, or execute a protocol tool call against an MCP server and
// feed the text result back into the event stream as TOOL_CALL_RESULT
// content.
package mcptool

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/agui/events"
)

// ToMCPTool converts a protocol tool definition to an MCP Tool. The
// JSON-Schema parameters are carried as the MCP tool's raw input schema.
func ToMCPTool(t events.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// ToMCPTools converts a slice of protocol tool definitions.
func ToMCPTools(tools []events.Tool) []mcp.Tool {
	result := make([]mcp.Tool, len(tools))
	for i, t := range tools {
		result[i] = ToMCPTool(t)
	}
	return result
}

// FromMCPTool converts an MCP Tool to a protocol tool definition,
// preferring the raw schema when the server provided one.
func FromMCPTool(t mcp.Tool) events.Tool {
	var schema json.RawMessage
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}
	return events.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromMCPTools converts a slice of MCP Tools.
func FromMCPTools(tools []mcp.Tool) []events.Tool {
	result := make([]events.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromMCPTool(t)
	}
	return result
}

// ToCallRequest converts an assistant tool call to an MCP call request.
// Arguments that are not valid JSON are passed through as a string.
func ToCallRequest(call events.ToolCall) mcp.CallToolRequest {
	var args any
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			args = call.Function.Arguments
		}
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      call.Function.Name,
			Arguments: args,
		},
	}
}

// ResultContent flattens an MCP call result into the text content a
// TOOL_CALL_RESULT event carries, and reports whether the server marked
// the call failed. Non-text content blocks are JSON-encoded.
func ResultContent(result *mcp.CallToolResult) (content string, isError bool) {
	if result == nil {
		return "", true
	}

	var parts []string
	for _, c := range result.Content {
		switch block := c.(type) {
		case mcp.TextContent:
			parts = append(parts, block.Text)
		case *mcp.TextContent:
			parts = append(parts, block.Text)
		default:
			if data, err := json.Marshal(block); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}
	return strings.Join(parts, "\n"), result.IsError
}
