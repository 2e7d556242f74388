package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "mockito-tools"
	ServerVersion = "1.0.0"

	defaultSessionID = "default"
)

const instructions = `This MCP server generates Mockito stubbing statements for Java methods.

## Usage Flow

1.  **Connect**: Call lsp_connect once so jdtls can import the project before the first request.
2.  **Generate at a caret**: Call do_nothing, do_return, then_return or then_throw with a file URI and a 0-based line and character.
    *   The caret may be on a method declaration name or on a method call.
    *   The statement is returned and copied to the clipboard unless copy='false'.
    *   Any other location answers "This feature is not supported".
3.  **Check first**: resolve_method shows the signature a caret resolves to without generating anything.
4.  **Without a language server**: mock_statement and mock_statements build statements from an explicit owner, method, parameter types and return type.
5.  **Clean up**: lsp_disconnect stops the language server. lsp_status reports its health.

Argument matchers and default return values are derived from simple type names, e.g. int becomes anyInt() and returns 0, unknown types become any(Type.class) and return new Type().`

// SetupMCPServer configures the MCP server with the Mockito tools
func SetupMCPServer(bridge interfaces.BridgeInterface) *server.MCPServer {
	session := NewMockitoSession(defaultSessionID)

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithHooks(newHooks(session)),
		server.WithInstructions(instructions),
	)

	RegisterAllTools(mcpServer, bridge)

	// Set up default session for clients that don't explicitly create sessions
	if err := mcpServer.RegisterSession(context.Background(), session); err != nil {
		logger.Error("Failed to register default session", err)
	} else {
		logger.Info("Default session registered successfully")
	}

	return mcpServer
}

func newHooks(session *MockitoSession) *server.Hooks {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		session.Touch()
		logger.Debug("beforeAny:", method, id)
	})
	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		logger.Debug("onSuccess:", method, id)
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Error("onError:", method, id, err)
	})
	hooks.AddOnRequestInitialization(func(ctx context.Context, id any, message any) error {
		logger.Debug(fmt.Sprintf("onRequestInitialization: id=%v, message=%s", id, prettyJSON(message)))
		return nil
	})
	hooks.AddAfterInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Info(fmt.Sprintf("Client initialized: %s %s", message.Params.ClientInfo.Name, message.Params.ClientInfo.Version))
	})
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest) {
		logger.Debug("beforeCallTool:", message.Params.Name, prettyJSON(message.Params.Arguments))
	})
	hooks.AddAfterCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest, result *mcp.CallToolResult) {
		if result != nil {
			logger.Debug("afterCallTool:", message.Params.Name, "isError:", result.IsError)
		}
	})

	return hooks
}

// prettyJSON indents raw or structured JSON for the debug log
func prettyJSON(message any) string {
	var out bytes.Buffer

	switch v := message.(type) {
	case []byte:
		if err := json.Indent(&out, v, "", "  "); err != nil {
			out.Write(v)
		}
	case string:
		if err := json.Indent(&out, []byte(v), "", "  "); err != nil {
			out.WriteString(v)
		}
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		out.Write(data)
	}

	return out.String()
}
