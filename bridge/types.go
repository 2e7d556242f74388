package bridge

import (
	"errors"
	"sync"
	"time"

	"rockerboo/mockito-tools/clipboard"
	"rockerboo/mockito-tools/types"
)

// ErrNotSupported is returned when the caret is not on a method declaration or call
var ErrNotSupported = errors.New("this feature is not supported")

// ClientFactory builds an unconnected language client for a server command
type ClientFactory func(command string, args []string) (types.LanguageClientInterface, error)

// WorkspaceResolver locates the per-project data directory for servers that need one
type WorkspaceResolver interface {
	GetWorkspaceDirectory(projectName string) (string, error)
}

// MockitoBridge resolves caret positions through language servers and
// turns them into Mockito statements
type MockitoBridge struct {
	mu                 sync.Mutex
	clients            map[types.LanguageServer]types.LanguageClientInterface
	config             types.LSPServerConfigProvider
	allowedDirectories []string
	clipboard          clipboard.Writer
	newClient          ClientFactory
	workspaces         WorkspaceResolver
	connection         ConnectionAttemptConfig

	// uri -> content last sent with didOpen
	openDocuments map[string]openDocument
}

type openDocument struct {
	content string
	version int32
}

// ConnectionAttemptConfig defines retry parameters for language server connections
type ConnectionAttemptConfig struct {
	MaxRetries   int
	RetryDelay   time.Duration
	TotalTimeout time.Duration
}
