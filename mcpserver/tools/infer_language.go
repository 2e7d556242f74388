package tools

import (
	"context"
	"fmt"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterInferLanguageTool registers the infer_language tool
func RegisterInferLanguageTool(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	mcpServer.AddTool(InferLanguageTool(bridge))
}

func InferLanguageTool(bridge interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("infer_language",
			mcp.WithDescription("Infer the language of a file from its extension using the configured extension map. Only 'java' files can be stubbed."),
			mcp.WithString("file_path", mcp.Description("Path or file:// URI of the file"), mcp.Required()),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			filePath, err := request.RequireString("file_path")
			if err != nil {
				logger.Error("infer_language: File path parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			language, err := bridge.InferLanguage(filePath)
			if err != nil {
				logger.Error("infer_language: Language inference failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			logger.Info("infer_language: Successfully inferred language",
				fmt.Sprintf("File: %s, Language: %s", filePath, *language),
			)

			return mcp.NewToolResultText(string(*language)), nil
		}
}
