package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rockerboo/mockito-tools/mocks"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedTools = []string{
	"do_nothing",
	"do_return",
	"then_return",
	"then_throw",
	"resolve_method",
	"mock_statement",
	"mock_statements",
	"infer_language",
	"lsp_connect",
	"lsp_disconnect",
	"lsp_status",
}

// roundTrip sends one JSON-RPC message and decodes the response's result
func roundTrip(t *testing.T, mcpServer *server.MCPServer, request string, result any) {
	t.Helper()

	response := mcpServer.HandleMessage(context.Background(), json.RawMessage(request))
	require.NotNil(t, response)

	data, err := json.Marshal(response)
	require.NoError(t, err)

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(data, &envelope))
	require.Nil(t, envelope.Error, "unexpected JSON-RPC error")
	require.NoError(t, json.Unmarshal(envelope.Result, result))
}

func TestMCPServerSetup(t *testing.T) {
	mcpServer := SetupMCPServer(&mocks.MockBridge{})
	require.NotNil(t, mcpServer)

	t.Run("server info", func(t *testing.T) {
		var result struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
			Instructions string `json:"instructions"`
		}
		roundTrip(t, mcpServer, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0.0.1"}}}`, &result)

		assert.Equal(t, ServerName, result.ServerInfo.Name)
		assert.Equal(t, ServerVersion, result.ServerInfo.Version)
		assert.Contains(t, result.Instructions, "Mockito")
	})

	t.Run("tool registration", func(t *testing.T) {
		var result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		}
		roundTrip(t, mcpServer, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`, &result)

		names := make([]string, 0, len(result.Tools))
		for _, tool := range result.Tools {
			names = append(names, tool.Name)
		}
		assert.ElementsMatch(t, expectedTools, names)
	})
}

type recordingToolServer struct {
	names []string
}

func (r *recordingToolServer) AddTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	r.names = append(r.names, tool.Name)
}

func TestRegisterAllTools(t *testing.T) {
	recorder := &recordingToolServer{}
	RegisterAllTools(recorder, &mocks.MockBridge{})

	assert.Equal(t, expectedTools, recorder.names)
}

func TestMockitoSession(t *testing.T) {
	session := NewMockitoSession("abc")

	assert.Equal(t, "abc", session.SessionID())
	assert.False(t, session.Initialized())
	assert.NotNil(t, session.NotificationChannel())

	created := session.GetCreatedAt()
	time.Sleep(time.Millisecond)

	session.Initialize()
	assert.True(t, session.Initialized())
	assert.True(t, session.GetLastAccessed().After(created))

	before := session.GetLastAccessed()
	time.Sleep(time.Millisecond)
	session.Touch()
	assert.True(t, session.GetLastAccessed().After(before))
	assert.Equal(t, created, session.GetCreatedAt())
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "{\n  \"a\": 1\n}", prettyJSON([]byte(`{"a":1}`)))
	assert.Equal(t, "{\n  \"a\": 1\n}", prettyJSON(`{"a":1}`))
	assert.Equal(t, "not json", prettyJSON("not json"))
	assert.Equal(t, "{\n  \"uri\": \"file:///A.java\"\n}", prettyJSON(map[string]any{"uri": "file:///A.java"}))
}
