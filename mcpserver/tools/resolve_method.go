package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// siteReport is the JSON shape of a resolved caret
type siteReport struct {
	Kind        string     `json:"kind"`
	Description string     `json:"description,omitempty"`
	Site        types.Site `json:"site"`
}

// RegisterResolveMethodTool registers the resolve_method tool
func RegisterResolveMethodTool(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	mcpServer.AddTool(ResolveMethodTool(bridge))
}

func ResolveMethodTool(bridge interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("resolve_method",
			mcp.WithDescription("Show what the caret resolves to before generating a statement: a method declaration, a method call with its resolved signature, or an unsupported location with the reason. Returns JSON."),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithString("uri", mcp.Description("URI to the Java file (file:// scheme, e.g., 'file:///path/to/OrderService.java')"), mcp.Required()),
			mcp.WithNumber("line", mcp.Description("Line number (0-based)"), mcp.Required()),
			mcp.WithNumber("character", mcp.Description("Character position (0-based)"), mcp.Required()),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			at, err := requireCaret(request)
			if err != nil {
				logger.Error("resolve_method: Parameter parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			site, err := bridge.ResolveSite(at.uri, at.line, at.character)
			if err != nil {
				logger.Error("resolve_method: Request failed", err)
				return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve method: %v", err)), nil
			}
			if site == nil {
				return mcp.NewToolResultError("No site resolved"), nil
			}

			report := siteReport{Kind: site.SiteKind(), Site: site}
			if sig, ok := types.SignatureOf(site); ok {
				report.Description = sig.String()
			}

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
			}

			return mcp.NewToolResultText(string(data)), nil
		}
}
