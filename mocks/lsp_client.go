package mocks

import (
	"context"
	"time"

	"rockerboo/mockito-tools/types"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"github.com/stretchr/testify/mock"
)

// MockLanguageClient implements LanguageClientInterface for testing
type MockLanguageClient struct {
	mock.Mock
}

func (m *MockLanguageClient) Connect() (types.LanguageClientInterface, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.LanguageClientInterface), args.Error(1)
}

func (m *MockLanguageClient) SendRequest(method string, params any, result any, timeout time.Duration) error {
	args := m.Called(method, params, result, timeout)
	return args.Error(0)
}

func (m *MockLanguageClient) SendNotification(method string, params any) error {
	args := m.Called(method, params)
	return args.Error(0)
}

func (m *MockLanguageClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockLanguageClient) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

func (m *MockLanguageClient) GetMetrics() types.ClientMetricsProvider {
	args := m.Called()
	return args.Get(0).(types.ClientMetricsProvider)
}

func (m *MockLanguageClient) IsConnected() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockLanguageClient) Status() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockLanguageClient) ProjectRoots() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockLanguageClient) SetProjectRoots(paths []string) {
	m.Called(paths)
}

func (m *MockLanguageClient) Initialize(params protocol.InitializeParams) (*protocol.InitializeResult, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.InitializeResult), args.Error(1)
}

func (m *MockLanguageClient) Initialized() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockLanguageClient) Shutdown() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockLanguageClient) Exit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockLanguageClient) ServerCapabilities() protocol.ServerCapabilities {
	args := m.Called()
	return args.Get(0).(protocol.ServerCapabilities)
}

func (m *MockLanguageClient) SetServerCapabilities(capabilities protocol.ServerCapabilities) {
	m.Called(capabilities)
}

func (m *MockLanguageClient) DidOpen(uri string, languageId protocol.LanguageKind, text string, version int32) error {
	args := m.Called(uri, languageId, text, version)
	return args.Error(0)
}

func (m *MockLanguageClient) DidClose(uri string) error {
	args := m.Called(uri)
	return args.Error(0)
}

func (m *MockLanguageClient) DocumentSymbols(uri string) ([]types.DocumentSymbol, error) {
	args := m.Called(uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DocumentSymbol), args.Error(1)
}

func (m *MockLanguageClient) Hover(uri string, line, character uint32) (string, error) {
	args := m.Called(uri, line, character)
	return args.String(0), args.Error(1)
}
