package mcptool

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/agui/events"
)

// Remote provides access to tools hosted by an MCP server. The tool
// list is cached locally and refreshed with [Remote.Refresh]. Remote is
// safe for concurrent use.
type Remote struct {
	client *client.Client

	mu    sync.RWMutex
	tools map[string]events.Tool
}

// Result is the outcome of one remote tool execution.
type Result struct {
	ToolCallID string
	Content    string
	IsError    bool
}

// Connect creates a Remote talking to an MCP server over stdio. The
// command is the server executable; args are passed to it.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("create MCP client: %w", err)
	}
	return newRemote(ctx, c)
}

// ConnectSSE creates a Remote talking to an MCP server over SSE.
func ConnectSSE(ctx context.Context, baseURL string) (*Remote, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("create SSE MCP client: %w", err)
	}
	return newRemote(ctx, c)
}

func newRemote(ctx context.Context, c *client.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "agui-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("initialize MCP session: %w", err)
	}

	r := &Remote{
		client: c,
		tools:  make(map[string]events.Tool),
	}
	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return r, nil
}

// Close closes the connection to the MCP server.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Refresh fetches the current tool list from the server.
func (r *Remote) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools = make(map[string]events.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
	}
	return nil
}

// Tools returns all cached tool definitions.
func (r *Remote) Tools() []events.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tools := make([]events.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// Has reports whether the server offers a tool with the given name.
func (r *Remote) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Len returns the number of cached tools.
func (r *Remote) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Execute calls a tool on the remote server. Transport errors are
// reported as an error Result, not returned: from the stream's point of
// view a failed tool call is still a result.
func (r *Remote) Execute(ctx context.Context, call events.ToolCall) Result {
	result, err := r.client.CallTool(ctx, ToCallRequest(call))
	if err != nil {
		return Result{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}
	content, isError := ResultContent(result)
	return Result{
		ToolCallID: call.ID,
		Content:    content,
		IsError:    isError,
	}
}
