package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"rockerboo/mockito-tools/clipboard"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/lsp"
	"rockerboo/mockito-tools/security"
	"rockerboo/mockito-tools/types"
	"rockerboo/mockito-tools/utils"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// Option configures a MockitoBridge
type Option func(*MockitoBridge)

// WithClipboard replaces the clipboard writer
func WithClipboard(w clipboard.Writer) Option {
	return func(b *MockitoBridge) {
		b.clipboard = w
	}
}

// WithClientFactory replaces how language clients are built
func WithClientFactory(f ClientFactory) Option {
	return func(b *MockitoBridge) {
		b.newClient = f
	}
}

// WithWorkspaceResolver supplies -data directories for jdtls
func WithWorkspaceResolver(r WorkspaceResolver) Option {
	return func(b *MockitoBridge) {
		b.workspaces = r
	}
}

// WithConnectionConfig overrides the retry policy
func WithConnectionConfig(c ConnectionAttemptConfig) Option {
	return func(b *MockitoBridge) {
		b.connection = c
	}
}

// NewMockitoBridge creates a bridge for the given configuration. The first
// allowed directory is used as the workspace root.
func NewMockitoBridge(config types.LSPServerConfigProvider, allowedDirectories []string, opts ...Option) *MockitoBridge {
	b := &MockitoBridge{
		clients:            make(map[types.LanguageServer]types.LanguageClientInterface),
		config:             config,
		allowedDirectories: allowedDirectories,
		clipboard:          clipboard.Default(),
		connection:         connectionConfigFrom(config.GetGlobalConfig()),
		openDocuments:      make(map[string]openDocument),
	}

	timeout := config.GetMockitoConfig().RequestTimeout()
	b.newClient = func(command string, args []string) (types.LanguageClientInterface, error) {
		client, err := lsp.NewLanguageClient(command, args...)
		if err != nil {
			return nil, err
		}
		client.SetRequestTimeout(timeout)
		return client, nil
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// DefaultConnectionConfig provides a default configuration for connection attempts
func DefaultConnectionConfig() ConnectionAttemptConfig {
	return ConnectionAttemptConfig{
		MaxRetries:   3,
		RetryDelay:   2 * time.Second,
		TotalTimeout: 30 * time.Second,
	}
}

func connectionConfigFrom(global types.GlobalConfig) ConnectionAttemptConfig {
	c := DefaultConnectionConfig()
	if global.MaxRestartAttempts > 0 {
		c.MaxRetries = global.MaxRestartAttempts
	}
	if global.RestartDelayMs > 0 {
		c.RetryDelay = time.Duration(global.RestartDelayMs) * time.Millisecond
	}
	return c
}

func (b *MockitoBridge) AllowedDirectories() []string {
	return b.allowedDirectories
}

// GetConfig returns the bridge's configuration
func (b *MockitoBridge) GetConfig() types.LSPServerConfigProvider {
	return b.config
}

func (b *MockitoBridge) workspaceRoot() (string, error) {
	if len(b.allowedDirectories) > 0 {
		return security.GetCleanAbsPath(b.allowedDirectories[0])
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return dir, nil
}

// serverArgs appends a -data workspace for jdtls when none is configured
func (b *MockitoBridge) serverArgs(serverConfig types.LanguageServerConfigProvider, root string) []string {
	args := slices.Clone(serverConfig.GetArgs())

	command := filepath.Base(serverConfig.GetCommand())
	if b.workspaces == nil || (command != "jdtls" && command != "jdtls.py") || slices.Contains(args, "-data") {
		return args
	}

	dir, err := b.workspaces.GetWorkspaceDirectory(workspaceName(root))
	if err != nil {
		logger.Warn(fmt.Sprintf("No jdtls workspace directory: %v", err))
		return args
	}

	return append(args, "-data", dir)
}

// workspaceName keys a jdtls data directory on the project root. The hash
// keeps projects that share a basename apart.
func workspaceName(root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Base(root) + "-" + hex.EncodeToString(sum[:4])
}

// validateAndConnectClient starts a server and runs the initialize handshake, retrying on failure
func (b *MockitoBridge) validateAndConnectClient(language string, serverConfig types.LanguageServerConfigProvider, config ConnectionAttemptConfig) (types.LanguageClientInterface, error) {
	root, err := b.workspaceRoot()
	if err != nil {
		return nil, err
	}

	pid := os.Getpid()
	if pid < 0 || pid > math.MaxInt32 {
		return nil, fmt.Errorf("process ID out of range: %d", pid)
	}
	processID := int32(pid)

	rootURI := utils.FilePathToURI(root)
	workspaceFolders := []protocol.WorkspaceFolder{
		{
			Uri:  protocol.URI(rootURI),
			Name: filepath.Base(root),
		},
	}

	params := protocol.InitializeParams{
		ProcessId: &processID,
		ClientInfo: &protocol.ClientInfo{
			Name:    "mockito-tools",
			Version: "1.0.0",
		},
		WorkspaceFolders: &workspaceFolders,
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				DocumentSymbol: &protocol.DocumentSymbolClientCapabilities{
					HierarchicalDocumentSymbolSupport: true,
				},
			},
		},
	}

	args := b.serverArgs(serverConfig, root)
	startTime := time.Now()

	var lastErr error

	for attempt := 0; attempt < config.MaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(config.RetryDelay)
		}

		if time.Since(startTime) > config.TotalTimeout {
			break
		}

		client, err := b.newClient(serverConfig.GetCommand(), args)
		if err != nil {
			// A bad command will not get better
			return nil, fmt.Errorf("failed to create language client: %w", err)
		}

		if _, err := client.Connect(); err != nil {
			lastErr = fmt.Errorf("failed to connect to the LSP on attempt %d: %w", attempt+1, err)
			logger.Warn(lastErr)
			continue
		}

		client.SetProjectRoots([]string{root})

		logger.Debug(fmt.Sprintf("Initializing %s with root %s", language, rootURI))

		result, err := client.Initialize(params)
		if err != nil {
			lastErr = fmt.Errorf("initialize request failed on attempt %d: %w", attempt+1, err)
			logger.Error(lastErr)

			if closeErr := client.Close(); closeErr != nil {
				logger.Warn(fmt.Sprintf("Failed to close client after initialize error: %v", closeErr))
			}
			continue
		}

		client.SetServerCapabilities(result.Capabilities)
		if result.ServerInfo != nil {
			logger.Info(fmt.Sprintf("Initialized language server: %+v", *result.ServerInfo))
		}

		if err := client.Initialized(); err != nil {
			lastErr = fmt.Errorf("failed to send initialized notification on attempt %d: %w", attempt+1, err)

			if closeErr := client.Close(); closeErr != nil {
				logger.Warn(fmt.Sprintf("Failed to close client after initialized error: %v", closeErr))
			}
			continue
		}

		return client, nil
	}

	if lastErr == nil {
		lastErr = errors.New("connection timed out")
	}

	return nil, fmt.Errorf("failed to establish language server connection for %s after %d attempts: %w",
		language, config.MaxRetries, lastErr)
}

// GetClientForLanguage retrieves or creates a language server client for a specific language
func (b *MockitoBridge) GetClientForLanguage(language string) (types.LanguageClientInterface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	server := b.config.GetServerNameFromLanguage(types.Language(language))
	if server == "" {
		return nil, fmt.Errorf("no server found for language %s", language)
	}

	if existingClient, exists := b.clients[server]; exists {
		if existingClient.Context().Err() == nil && existingClient.IsConnected() {
			return existingClient, nil
		}

		logger.Warn("Removing disconnected client for language " + language)

		if err := existingClient.Close(); err != nil {
			logger.Warn(fmt.Sprintf("Failed to close stale client for %s: %v", server, err))
		}

		delete(b.clients, server)
		b.forgetDocuments()
	}

	serverConfig, err := b.config.FindServerConfig(language)
	if err != nil {
		return nil, fmt.Errorf("no server configuration found for language %s: %w", language, err)
	}

	client, err := b.validateAndConnectClient(language, serverConfig, b.connection)
	if err != nil {
		return nil, err
	}

	b.clients[server] = client

	return client, nil
}

// CloseAllClients shuts down every language server client
func (b *MockitoBridge) CloseAllClients() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for serverName, client := range b.clients {
		if client.IsConnected() {
			if err := client.Shutdown(); err != nil {
				logger.Warn(fmt.Sprintf("Shutdown request to %s failed: %v", serverName, err))
			} else if err := client.Exit(); err != nil {
				logger.Warn(fmt.Sprintf("Exit notification to %s failed: %v", serverName, err))
			}
		}

		if err := client.Close(); err != nil {
			logger.Error(fmt.Errorf("failed to close client for %s: %w", serverName, err))
		}
	}

	b.clients = make(map[types.LanguageServer]types.LanguageClientInterface)
	b.forgetDocuments()
}

// CloseClient shuts down the client serving a language, if any
func (b *MockitoBridge) CloseClient(language string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	server := b.config.GetServerNameFromLanguage(types.Language(language))
	client, exists := b.clients[server]
	if server == "" || !exists {
		return false, nil
	}

	delete(b.clients, server)
	b.forgetDocuments()

	if err := client.Close(); err != nil {
		return true, fmt.Errorf("failed to close client for %s: %w", server, err)
	}
	return true, nil
}

// ConnectedClients reports the metrics of every live client keyed by server name
func (b *MockitoBridge) ConnectedClients() map[types.LanguageServer]types.ClientMetricsProvider {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[types.LanguageServer]types.ClientMetricsProvider, len(b.clients))
	for server, client := range b.clients {
		out[server] = client.GetMetrics()
	}
	return out
}

// InferLanguage infers the programming language from a file path
func (b *MockitoBridge) InferLanguage(filePath string) (*types.Language, error) {
	return b.config.FindExtLanguage(filepath.Ext(utils.URIToFilePath(filePath)))
}

// ensureDocumentOpen sends didOpen for uri, or reopens it when the file changed on disk
func (b *MockitoBridge) ensureDocumentOpen(client types.LanguageClientInterface, uri, language string) error {
	path, err := security.ValidateSourcePath(utils.URIToFilePath(uri), client.ProjectRoots())
	if err != nil {
		return fmt.Errorf("access denied: %w", err)
	}

	content, err := os.ReadFile(path) // #nosec G304 - Path validated by security.ValidateSourcePath
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	doc, opened := b.openDocuments[uri]
	if opened && doc.content == string(content) {
		return nil
	}

	version := int32(1)
	if opened {
		version = doc.version + 1
		if err := client.DidClose(uri); err != nil {
			logger.Warn(fmt.Sprintf("didClose for %s failed: %v", uri, err))
		}
	}

	if err := client.DidOpen(uri, protocol.LanguageKind(language), string(content), version); err != nil {
		return fmt.Errorf("failed to send didOpen notification: %w", err)
	}

	b.openDocuments[uri] = openDocument{content: string(content), version: version}
	logger.Debug(fmt.Sprintf("Document opened in LSP server: %s (language: %s, version %d)", uri, language, version))

	return nil
}

// documentContent returns the text last sent with didOpen for uri
func (b *MockitoBridge) documentContent(uri string) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.openDocuments[uri].content
}

// forgetDocuments drops open-document state; callers hold b.mu
func (b *MockitoBridge) forgetDocuments() {
	b.openDocuments = make(map[string]openDocument)
}
