package mcptool

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spetersoncode/agui/events"
)

func TestToMCPTool(t *testing.T) {
	t.Run("carries raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"city":{"type":"string"}}}`)
		tool := events.Tool{
			Name:        "get_weather",
			Description: "Get the weather",
			Parameters:  schema,
		}

		mcpTool := ToMCPTool(tool)

		assert.Equal(t, "get_weather", mcpTool.Name)
		assert.Equal(t, "Get the weather", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("handles nil parameters", func(t *testing.T) {
		mcpTool := ToMCPTool(events.Tool{Name: "simple", Description: "Simple tool"})
		assert.Equal(t, "simple", mcpTool.Name)
	})
}

func TestFromMCPTool(t *testing.T) {
	t.Run("prefers raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		tool := FromMCPTool(mcp.NewToolWithRawSchema("search", "Search the web", schema))

		assert.Equal(t, "search", tool.Name)
		assert.JSONEq(t, `{"type":"object"}`, string(tool.Parameters))
	})

	t.Run("marshals structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("search",
			mcp.WithDescription("Search the web"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		)

		tool := FromMCPTool(mcpTool)

		require.NotEmpty(t, tool.Parameters)
		var schema map[string]any
		require.NoError(t, json.Unmarshal(tool.Parameters, &schema))
		assert.Equal(t, "object", schema["type"])
	})
}

func TestRoundTrip(t *testing.T) {
	tools := []events.Tool{
		{Name: "t1", Description: "First", Parameters: json.RawMessage(`{"type":"object"}`)},
		{Name: "t2", Description: "Second", Parameters: json.RawMessage(`{"type":"object"}`)},
	}
	back := FromMCPTools(ToMCPTools(tools))
	require.Len(t, back, 2)
	assert.Equal(t, tools[0].Name, back[0].Name)
	assert.Equal(t, tools[1].Description, back[1].Description)
}

func TestToCallRequest(t *testing.T) {
	t.Run("parses JSON arguments", func(t *testing.T) {
		req := ToCallRequest(events.ToolCall{
			ID:   "call-1",
			Type: "function",
			Function: events.FunctionCall{
				Name:      "get_weather",
				Arguments: `{"city":"Oslo"}`,
			},
		})

		assert.Equal(t, "get_weather", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Oslo", args["city"])
	})

	t.Run("passes invalid JSON through as string", func(t *testing.T) {
		req := ToCallRequest(events.ToolCall{
			Function: events.FunctionCall{Name: "f", Arguments: "not json"},
		})
		assert.Equal(t, "not json", req.Params.Arguments)
	})
}

func TestResultContent(t *testing.T) {
	t.Run("joins text blocks", func(t *testing.T) {
		result := &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "line one"},
				mcp.TextContent{Type: "text", Text: "line two"},
			},
		}
		content, isError := ResultContent(result)
		assert.False(t, isError)
		assert.Equal(t, "line one\nline two", content)
	})

	t.Run("includes structured content", func(t *testing.T) {
		result := &mcp.CallToolResult{
			StructuredContent: map[string]any{"forecast": "sunny"},
		}
		content, _ := ResultContent(result)
		assert.JSONEq(t, `{"forecast":"sunny"}`, content)
	})

	t.Run("error results flagged", func(t *testing.T) {
		content, isError := ResultContent(mcp.NewToolResultError("boom"))
		assert.True(t, isError)
		assert.Equal(t, "boom", content)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		content, isError := ResultContent(nil)
		assert.True(t, isError)
		assert.Empty(t, content)
	})
}
