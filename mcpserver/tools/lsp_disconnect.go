package tools

import (
	"context"
	"fmt"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterLSPDisconnectTool registers the lsp_disconnect tool
func RegisterLSPDisconnectTool(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	mcpServer.AddTool(LSPDisconnectTool(bridge))
}

func LSPDisconnectTool(bridge interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("lsp_disconnect",
			mcp.WithDescription("Disconnect language server clients. Disconnects every client unless a language is given."),
			mcp.WithString("language", mcp.Description("Only disconnect the client for this language (optional)")),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			language := request.GetString("language", "")

			if language == "" {
				bridge.CloseAllClients()

				logger.Info("lsp_disconnect: Disconnected all language server clients")

				return mcp.NewToolResultText("All language server clients disconnected"), nil
			}

			closed, err := bridge.CloseClient(language)
			if err != nil {
				logger.Error("lsp_disconnect: Close failed", err)
				return mcp.NewToolResultError(fmt.Sprintf("Failed to disconnect %s: %v", language, err)), nil
			}

			if !closed {
				return mcp.NewToolResultText(fmt.Sprintf("No active client for %s", language)), nil
			}

			logger.Info("lsp_disconnect: Disconnected " + language)

			return mcp.NewToolResultText(fmt.Sprintf("Disconnected LSP for %s", language)), nil
		}
}
