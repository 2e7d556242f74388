package tools

import (
	"context"
	"errors"
	"fmt"

	"rockerboo/mockito-tools/bridge"
	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/mockgen"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NotSupportedMessage is shown when the caret is not on a stubbable method
const NotSupportedMessage = "This feature is not supported"

var stubDescriptions = map[mockgen.StatementKind]string{
	mockgen.NoOp:           "Generate a Mockito doNothing() statement for the method at the caret, e.g. `doNothing().when(orderService.cancel(anyString()));`. Intended for void methods.",
	mockgen.ReturnValue:    "Generate a Mockito doReturn() statement for the method at the caret, e.g. `doReturn(0).when(calculator).add(anyInt(), anyInt());`. The returned value is a default for the method's return type.",
	mockgen.FluentReturn:   "Generate a Mockito when().thenReturn() statement for the method at the caret, e.g. `when(calculator.add(anyInt(), anyInt())).thenReturn(0);`.",
	mockgen.ThrowException: "Generate a Mockito when().thenThrow() statement for the method at the caret, e.g. `when(calculator.add(anyInt(), anyInt())).thenThrow(new Exception());`.",
}

// RegisterStubTools registers one caret-driven tool per statement kind
func RegisterStubTools(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	for _, kind := range mockgen.Kinds() {
		mcpServer.AddTool(StubTool(kind, bridge))
	}
}

// StubTool resolves the method at a caret position and renders the statement of kind
func StubTool(kind mockgen.StatementKind, b interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	name := kind.String()

	return mcp.NewTool(name,
			mcp.WithDescription(stubDescriptions[kind]+" The caret may sit on a method declaration name or on a method call. The statement is copied to the clipboard unless copy='false'."),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("uri", mcp.Description("URI to the Java file (file:// scheme, e.g., 'file:///path/to/OrderService.java')"), mcp.Required()),
			mcp.WithNumber("line", mcp.Description("Line number (0-based)"), mcp.Required()),
			mcp.WithNumber("character", mcp.Description("Character position (0-based)"), mcp.Required()),
			mcp.WithString("copy", mcp.Description("Whether to copy the statement to the clipboard. 'true' or 'false' (default from configuration, normally 'true')")),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			at, err := requireCaret(request)
			if err != nil {
				logger.Error(name+": Parameter parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			deliver, err := parseFlag(request, "copy", defaultCopy(b))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			result, err := b.GenerateAt(kind, at.uri, at.line, at.character, deliver)
			if err != nil {
				if errors.Is(err, bridge.ErrNotSupported) {
					logger.Info(fmt.Sprintf("%s: %v", name, err))
					return mcp.NewToolResultError(NotSupportedMessage), nil
				}

				logger.Error(name+": Generation failed", fmt.Sprintf("URI: %s, Line: %d, Character: %d, Error: %v", at.uri, at.line, at.character, err))
				return mcp.NewToolResultError(fmt.Sprintf("Failed to generate statement: %v", err)), nil
			}

			logger.Info(fmt.Sprintf("%s: %s", name, result.Message))

			return mcp.NewToolResultText(result.Message + "\n\n" + result.Statement), nil
		}
}
