package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/lsp"
	"rockerboo/mockito-tools/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterLSPStatusTool registers the lsp_status tool
func RegisterLSPStatusTool(mcpServer ToolServer, bridge interfaces.BridgeInterface) {
	mcpServer.AddTool(LSPStatusTool(bridge))
}

func LSPStatusTool(bridge interfaces.BridgeInterface) (mcp.Tool, server.ToolHandlerFunc) {
	return mcp.NewTool("lsp_status",
			mcp.WithDescription("Report connected language servers with their request counts and last error. Use when stub tools fail to find out whether jdtls is still starting or has crashed."),
			mcp.WithDestructiveHintAnnotation(false),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText(formatClientMetrics(bridge.ConnectedClients())), nil
		}
}

func formatClientMetrics(clients map[types.LanguageServer]types.ClientMetricsProvider) string {
	if len(clients) == 0 {
		return "No language servers connected"
	}

	names := make([]string, 0, len(clients))
	for name := range clients {
		names = append(names, string(name))
	}
	sort.Strings(names)

	var result strings.Builder

	result.WriteString("=== LANGUAGE SERVERS ===\n")

	for _, name := range names {
		m := clients[types.LanguageServer(name)]

		result.WriteString(fmt.Sprintf("\n%s (%s)\n", name, lsp.ClientStatus(m.GetStatus())))
		result.WriteString(fmt.Sprintf("  Command: %s\n", m.GetCommand()))
		if pid := m.GetProcessID(); pid > 0 {
			result.WriteString(fmt.Sprintf("  PID: %d\n", pid))
		}
		result.WriteString(fmt.Sprintf("  Requests: %d total, %d ok, %d failed\n",
			m.GetTotalRequests(), m.GetSuccessfulRequests(), m.GetFailedRequests()))

		if t := m.GetLastInitialized(); !t.IsZero() {
			result.WriteString(fmt.Sprintf("  Initialized: %s\n", t.Format(time.RFC3339)))
		}

		if lastErr := m.GetLastError(); lastErr != "" {
			result.WriteString(fmt.Sprintf("  Last error: %s (%s)\n", lastErr, m.GetLastErrorTime().Format(time.RFC3339)))
		}
	}

	return strings.TrimSuffix(result.String(), "\n")
}
