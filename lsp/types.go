package lsp

import (
	"context"
	"os/exec"
	"sync"
	"time"

	"rockerboo/mockito-tools/types"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// LanguageClient wraps a Language Server Protocol client connection
type LanguageClient struct {
	mu                 sync.RWMutex
	conn               types.LSPConnectionInterface
	ctx                context.Context
	cancel             context.CancelFunc
	cmd                *exec.Cmd
	serverCapabilities protocol.ServerCapabilities

	// Connection management
	command         string
	args            []string
	processID       int32
	projectRoots    []string
	lastInitialized time.Time
	status          ClientStatus
	lastError       error

	// Metrics
	totalRequests      int64
	successfulRequests int64
	failedRequests     int64
	lastErrorTime      time.Time

	requestTimeout time.Duration
}

// LanguageServerConfig defines the configuration for a specific language server
type LanguageServerConfig struct {
	Command               string         `json:"command"`
	Args                  []string       `json:"args"`
	Languages             []string       `json:"languages"`
	Filetypes             []string       `json:"filetypes"`
	InitializationOptions map[string]any `json:"initialization_options"`
}

func (c *LanguageServerConfig) GetCommand() string {
	return c.Command
}

func (c *LanguageServerConfig) GetArgs() []string {
	return c.Args
}

func (c *LanguageServerConfig) GetInitializationOptions() map[string]any {
	return c.InitializationOptions
}

// LSPServerConfig represents the complete configuration for language servers
type LSPServerConfig struct {
	LanguageServers      map[types.LanguageServer]LanguageServerConfig `json:"language_servers"`
	LanguageServerMap    map[types.LanguageServer][]types.Language     `json:"language_server_map"`
	ExtensionLanguageMap map[string]types.Language                     `json:"extension_language_map"`
	Global               types.GlobalConfig                            `json:"global"`
	Mockito              types.MockitoConfig                           `json:"mockito"`
}
