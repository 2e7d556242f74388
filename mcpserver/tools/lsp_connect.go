package tools

import (
	"context"
	"fmt"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterLSPConnectTool registers the lsp_connect tool
func RegisterLSPConnectTool(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	mcpServer.AddTool(LSPConnectTool(bridge))
}

func LSPConnectTool(bridge interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("lsp_connect",
			mcp.WithDescription("Start the language server for a language ahead of the first stub request. jdtls can take a while to import a project, so connecting early keeps the stub tools fast."),
			mcp.WithString("language", mcp.Description("Language to connect (default: 'java')")),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			language := request.GetString("language", "java")
			if language == "" {
				return mcp.NewToolResultError("language cannot be empty"), nil
			}

			config := bridge.GetConfig()
			if config == nil {
				logger.Error("lsp_connect: No configuration available")
				return mcp.NewToolResultError("No configuration available"), nil
			}

			if _, err := config.FindServerConfig(language); err != nil {
				logger.Error("lsp_connect: No language server configured",
					fmt.Sprintf("Language: %s", language),
				)
				return mcp.NewToolResultError(fmt.Sprintf("No language server configured for %s", language)), nil
			}

			if _, err := bridge.GetClientForLanguage(language); err != nil {
				logger.Error("lsp_connect: Failed to set up LSP client",
					fmt.Sprintf("Language: %s, Error: %v", language, err),
				)
				return mcp.NewToolResultError(fmt.Sprintf("Failed to set up LSP client: %v", err)), nil
			}

			logger.Info("lsp_connect: Successfully connected to LSP",
				fmt.Sprintf("Language: %s", language),
			)

			return mcp.NewToolResultText(fmt.Sprintf("Connected to LSP for %s", language)), nil
		}
}
