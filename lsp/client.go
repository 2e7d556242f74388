package lsp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync/atomic"
	"time"

	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/types"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"github.com/sourcegraph/jsonrpc2"
)

// NewLanguageClient prepares a client for the given server command.
// The process is started by Connect.
func NewLanguageClient(command string, args ...string) (*LanguageClient, error) {
	if command == "" {
		return nil, errors.New("language server command cannot be empty")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &LanguageClient{
		ctx:            ctx,
		cancel:         cancel,
		command:        command,
		args:           args,
		status:         StatusUninitialized,
		requestTimeout: types.DefaultRequestTimeout,
	}, nil
}

// Connect starts the language server process and attaches a JSON-RPC
// connection to its stdio.
func (lc *LanguageClient) Connect() (types.LanguageClientInterface, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	logger.Info(fmt.Sprintf("Connecting to LSP server: %s %v", lc.command, lc.args))
	lc.status = StatusConnecting

	cmd := exec.CommandContext(lc.ctx, lc.command, lc.args...)
	setProcAttributes(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		lc.status = StatusError
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		lc.status = StatusError
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		stdout.Close()
		lc.status = StatusError
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		stdout.Close()
		stderr.Close()
		lc.status = StatusError
		return nil, fmt.Errorf("failed to start command: %w", err)
	}

	lc.cmd = cmd
	lc.processID = int32(cmd.Process.Pid) // #nosec G115 - pids fit in int32

	readWriteCloser := &stdioReadWriteCloser{
		stdin:  stdin,
		stdout: stdout,
	}

	// VSCodeObjectCodec writes the Content-Length headers LSP expects
	stream := jsonrpc2.NewBufferedStream(readWriteCloser, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(lc.ctx, stream, &ClientHandler{client: lc})

	lc.conn = conn
	lc.status = StatusConnected
	lc.lastInitialized = time.Now()

	logger.Info(fmt.Sprintf("Successfully connected to LSP server: %s %v (pid %d)", lc.command, lc.args, lc.processID))

	go lc.drainStderr(stderr)
	go lc.watchDisconnect(conn.DisconnectNotify())

	return lc, nil
}

func (lc *LanguageClient) drainStderr(stderr io.Reader) {
	buf := make([]byte, 1024)
	for {
		n, err := stderr.Read(buf)
		if n > 0 {
			logger.Debug(fmt.Sprintf("[%s SERVER STDERR]: %s", lc.command, buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

func (lc *LanguageClient) watchDisconnect(done <-chan struct{}) {
	<-done

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.status == StatusConnected || lc.status == StatusError {
		logger.Warn(fmt.Sprintf("LSP server %s disconnected", lc.command))
		lc.status = StatusDisconnected
	}
}

func (lc *LanguageClient) IsConnected() bool {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return lc.status == StatusConnected
}

func (lc *LanguageClient) Status() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return lc.status.Status()
}

// Close closes the language client and cleans up resources
func (lc *LanguageClient) Close() error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if lc.conn != nil {
		if err := lc.conn.Close(); err != nil {
			logger.Debug(fmt.Sprintf("Closing JSON-RPC connection: %v", err))
		}
	}

	if lc.cancel != nil {
		lc.cancel()
	}

	if lc.cmd != nil && lc.cmd.Process != nil {
		done := make(chan error, 1)
		go func() {
			done <- lc.cmd.Wait()
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			_ = lc.cmd.Process.Kill()
			<-done
		}
	}

	lc.status = StatusDisconnected
	lc.lastError = nil

	return nil
}

// ServerCapabilities returns the server's capabilities
func (lc *LanguageClient) ServerCapabilities() protocol.ServerCapabilities {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return lc.serverCapabilities
}

// SetServerCapabilities sets the server's capabilities
func (lc *LanguageClient) SetServerCapabilities(capabilities protocol.ServerCapabilities) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.serverCapabilities = capabilities
}

func (lc *LanguageClient) ProjectRoots() []string {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	return lc.projectRoots
}

func (lc *LanguageClient) SetProjectRoots(paths []string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.projectRoots = paths
}

// SetRequestTimeout changes the timeout used by feature requests
func (lc *LanguageClient) SetRequestTimeout(timeout time.Duration) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if timeout > 0 {
		lc.requestTimeout = timeout
	}
}

// SendRequest sends a request with timeout
func (lc *LanguageClient) SendRequest(method string, params any, result any, timeout time.Duration) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	atomic.AddInt64(&lc.totalRequests, 1)

	if lc.conn == nil || lc.ctx == nil || lc.ctx.Err() != nil {
		atomic.AddInt64(&lc.failedRequests, 1)
		return errors.New("language server connection is closed")
	}

	if lc.status == StatusError {
		lc.status = StatusConnected
		logger.Info("LSP client status reset from error to connected")
	}

	reqCtx, cancel := context.WithTimeout(lc.ctx, timeout)
	defer cancel()

	err := lc.conn.Call(reqCtx, method, params, result)
	if err != nil {
		atomic.AddInt64(&lc.failedRequests, 1)
		lc.lastErrorTime = time.Now()
		lc.lastError = err
		lc.status = StatusError

		logger.Error(fmt.Sprintf("LSP Request Error: method=%s, error=%v", method, err))

		return fmt.Errorf("%s request failed: %w", method, err)
	}

	atomic.AddInt64(&lc.successfulRequests, 1)

	return nil
}

// SendNotification sends a notification
func (lc *LanguageClient) SendNotification(method string, params any) error {
	if method == "" {
		return errors.New("empty notification method")
	}

	lc.mu.RLock()
	conn, ctx := lc.conn, lc.ctx
	lc.mu.RUnlock()

	if conn == nil || ctx == nil {
		return errors.New("language server connection is closed")
	}

	return conn.Notify(ctx, method, params)
}

// Context returns the client's context
func (lc *LanguageClient) Context() context.Context {
	return lc.ctx
}

// GetMetrics returns the current metrics for the language client
func (lc *LanguageClient) GetMetrics() types.ClientMetricsProvider {
	lc.mu.RLock()
	defer lc.mu.RUnlock()

	metrics := &ClientMetrics{
		Command:            lc.command,
		Status:             lc.status.Status(),
		TotalRequests:      atomic.LoadInt64(&lc.totalRequests),
		SuccessfulRequests: atomic.LoadInt64(&lc.successfulRequests),
		FailedRequests:     atomic.LoadInt64(&lc.failedRequests),
		LastInitialized:    lc.lastInitialized,
		LastErrorTime:      lc.lastErrorTime,
		Connected:          lc.status == StatusConnected,
		ProcessID:          lc.processID,
	}

	if lc.lastError != nil {
		metrics.LastError = lc.lastError.Error()
	}

	return metrics
}
