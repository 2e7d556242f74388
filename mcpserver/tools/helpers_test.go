package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/mcptest"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"
)

// callTool serves a single tool over mcptest and calls it with args
func callTool(t *testing.T, tool mcp.Tool, handler server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	mcpServer, err := mcptest.NewServer(t, server.ServerTool{
		Tool:    tool,
		Handler: handler,
	})
	require.NoError(t, err, "Could not create MCP server")
	t.Cleanup(mcpServer.Close)

	toolResult, err := mcpServer.Client().CallTool(context.Background(), mcp.CallToolRequest{
		Request: mcp.Request{Method: "tools/call"},
		Params: mcp.CallToolParams{
			Name:      tool.Name,
			Arguments: args,
		},
	})
	require.NoError(t, err, "Could not make request")

	return toolResult
}

func resultText(t *testing.T, toolResult *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, toolResult.Content, "Expected content but got none")

	textContent, ok := toolResult.Content[0].(mcp.TextContent)
	require.True(t, ok, "Expected text content, got: %T", toolResult.Content[0])

	return textContent.Text
}
