package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolInfo is the part of an MCP tool listing shown to users.
type ToolInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// MCPClient talks to a deployctl MCP server listening over SSE.
type MCPClient struct {
	endpoint string
	client   client.MCPClient
	timeout  time.Duration
}

// NewMCPClient creates a client for endpoint, e.g. http://localhost:8090/sse.
func NewMCPClient(endpoint string) *MCPClient {
	return &MCPClient{
		endpoint: endpoint,
		timeout:  30 * time.Second,
	}
}

// Connect establishes the SSE transport and performs the MCP handshake
func (c *MCPClient) Connect(ctx context.Context) error {
	sseClient, err := client.NewSSEMCPClient(c.endpoint)
	if err != nil {
		return fmt.Errorf("failed to create SSE client: %w", err)
	}
	c.client = sseClient

	if err := sseClient.Start(ctx); err != nil {
		return fmt.Errorf("failed to start SSE client: %w", err)
	}

	if err := c.initialize(ctx); err != nil {
		sseClient.Close()
		c.client = nil
		return fmt.Errorf("initialization failed: %w", err)
	}
	return nil
}

// ListTools returns the server's tools sorted by name.
func (c *MCPClient) ListTools(ctx context.Context) ([]ToolInfo, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.ListTools(timeoutCtx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}
	tools := make([]ToolInfo, 0, len(result.Tools))
	for _, t := range result.Tools {
		tools = append(tools, ToolInfo{Name: t.Name, Description: t.Description})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// CallTool executes a tool and returns the raw result
func (c *MCPClient) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	if c.client == nil {
		return nil, fmt.Errorf("client not connected")
	}

	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.client.CallTool(timeoutCtx, req)
	if err != nil {
		return nil, fmt.Errorf("tool call failed: %w", err)
	}
	return result, nil
}

// CallToolSimple executes a tool and returns its text content. A tool error is
// returned as a Go error carrying the tool's message.
func (c *MCPClient) CallToolSimple(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	result, err := c.CallTool(ctx, name, args)
	if err != nil {
		return "", err
	}
	return ResultText(result)
}

// Close closes the connection
func (c *MCPClient) Close() error {
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

func (c *MCPClient) initialize(ctx context.Context) error {
	var req mcp.InitializeRequest
	req.Params.ProtocolVersion = "2024-11-05"
	req.Params.ClientInfo = mcp.Implementation{
		Name:    "deployctl-cli",
		Version: "1.0.0",
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_, err := c.client.Initialize(timeoutCtx, req)
	return err
}

// ResultText joins the text content of result, or returns it as an error when the
// tool reported one.
func ResultText(result *mcp.CallToolResult) (string, error) {
	var parts []string
	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			parts = append(parts, textContent.Text)
		}
	}
	joined := strings.Join(parts, "\n")
	if result.IsError {
		return "", fmt.Errorf("%s", joined)
	}
	return joined, nil
}

// ParseToolArgs turns key=value pairs into tool arguments. Values that look like
// numbers or booleans are passed as such so the server sees JSON types.
func ParseToolArgs(pairs []string) (map[string]interface{}, error) {
	args := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q: expected key=value", pair)
		}
		args[key] = typedValue(value)
	}
	return args, nil
}

func typedValue(s string) interface{} {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
