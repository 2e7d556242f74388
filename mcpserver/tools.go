package mcpserver

import (
	"rockerboo/mockito-tools/interfaces"
	"rockerboo/mockito-tools/mcpserver/tools"
)

// RegisterAllTools registers every MCP tool the server exposes
func RegisterAllTools(mcpServer tools.ToolServer, bridge interfaces.BridgeInterface) {
	// Caret-driven generators
	tools.RegisterStubTools(mcpServer, bridge)
	tools.RegisterResolveMethodTool(mcpServer, bridge)

	// Signature-driven generators, no language server needed
	tools.RegisterMockStatementTools(mcpServer)

	// Language server lifecycle
	tools.RegisterInferLanguageTool(mcpServer, bridge)
	tools.RegisterLSPConnectTool(mcpServer, bridge)
	tools.RegisterLSPDisconnectTool(mcpServer, bridge)
	tools.RegisterLSPStatusTool(mcpServer, bridge)
}
