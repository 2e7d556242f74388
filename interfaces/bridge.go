package interfaces

import (
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/types"
)

// BridgeInterface defines the interface that the bridge must implement
type BridgeInterface interface {
	// Language server lifecycle
	GetClientForLanguage(language string) (types.LanguageClientInterface, error)
	CloseClient(language string) (bool, error)
	CloseAllClients()
	ConnectedClients() map[types.LanguageServer]types.ClientMetricsProvider
	InferLanguage(filePath string) (*types.Language, error)
	GetConfig() types.LSPServerConfigProvider
	AllowedDirectories() []string

	// Statement generation
	ResolveSite(uri string, line, character uint32) (types.Site, error)
	GenerateAt(kind mockgen.StatementKind, uri string, line, character uint32, deliver bool) (*types.StubResult, error)
}
