package types

import (
	"context"
	"time"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"github.com/sourcegraph/jsonrpc2"
)

// DocumentSymbol is a node of a textDocument/documentSymbol response.
// Flat SymbolInformation responses are converted into this shape.
type DocumentSymbol struct {
	Name           string              `json:"name"`
	Detail         string              `json:"detail,omitempty"`
	Kind           protocol.SymbolKind `json:"kind"`
	Range          protocol.Range      `json:"range"`
	SelectionRange protocol.Range      `json:"selectionRange"`
	Children       []DocumentSymbol    `json:"children,omitempty"`
	ContainerName  string              `json:"containerName,omitempty"`
}

type LanguageServerConfigProvider interface {
	GetCommand() string
	GetArgs() []string
	GetInitializationOptions() map[string]any
}

// LanguageClientInterface defines the methods required for a language client.
// This interface abstracts the concrete LanguageClient type for better testability.
type LanguageClientInterface interface {
	// Core client methods
	Connect() (LanguageClientInterface, error)
	SendRequest(method string, params any, result any, timeout time.Duration) error
	SendNotification(method string, params any) error
	Close() error
	Context() context.Context
	GetMetrics() ClientMetricsProvider
	IsConnected() bool
	Status() int
	ProjectRoots() []string
	SetProjectRoots(paths []string)

	// Lifecycle methods
	Initialize(params protocol.InitializeParams) (*protocol.InitializeResult, error)
	Initialized() error
	Shutdown() error
	Exit() error

	// Capabilities
	ServerCapabilities() protocol.ServerCapabilities
	SetServerCapabilities(capabilities protocol.ServerCapabilities)

	// Text document synchronization
	DidOpen(uri string, languageId protocol.LanguageKind, text string, version int32) error
	DidClose(uri string) error

	// Language features
	DocumentSymbols(uri string) ([]DocumentSymbol, error)
	Hover(uri string, line, character uint32) (string, error)
}

type LSPConnectionInterface interface {
	Call(ctx context.Context, method string, params, result any, opts ...jsonrpc2.CallOption) error
	Notify(ctx context.Context, method string, params any, opts ...jsonrpc2.CallOption) error
	Reply(ctx context.Context, id jsonrpc2.ID, result any) error
	Close() error
	DisconnectNotify() <-chan struct{}
}

type Language string
type LanguageServer string

type GlobalConfig struct {
	LogPath            string `json:"log_file_path"`
	LogLevel           string `json:"log_level"`
	MaxLogFiles        int    `json:"max_log_files"`
	MaxRestartAttempts int    `json:"max_restart_attempts"`
	RestartDelayMs     int    `json:"restart_delay_ms"`
}

type LSPServerConfigProvider interface {
	FindServerConfig(language string) (LanguageServerConfigProvider, error)
	GetGlobalConfig() GlobalConfig
	GetMockitoConfig() MockitoConfig
	GetServerNameFromLanguage(language Language) LanguageServer
	FindExtLanguage(ext string) (*Language, error)
}

type ClientMetricsProvider interface {
	GetCommand() string
	GetStatus() int
	GetTotalRequests() int64
	GetSuccessfulRequests() int64
	GetFailedRequests() int64
	GetLastInitialized() time.Time
	GetLastErrorTime() time.Time
	GetLastError() string
	IsConnected() bool
	GetProcessID() int32
}
