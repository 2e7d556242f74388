package mocks

import (
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/types"

	"github.com/stretchr/testify/mock"
)

type MockBridge struct {
	mock.Mock
}

func (m *MockBridge) GetClientForLanguage(language string) (types.LanguageClientInterface, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	if client, ok := args.Get(0).(types.LanguageClientInterface); ok {
		return client, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockBridge) CloseClient(language string) (bool, error) {
	args := m.Called(language)
	return args.Bool(0), args.Error(1)
}

func (m *MockBridge) CloseAllClients() {
	m.Called()
}

func (m *MockBridge) ConnectedClients() map[types.LanguageServer]types.ClientMetricsProvider {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[types.LanguageServer]types.ClientMetricsProvider)
}

func (m *MockBridge) InferLanguage(filePath string) (*types.Language, error) {
	args := m.Called(filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Language), args.Error(1)
}

func (m *MockBridge) GetConfig() types.LSPServerConfigProvider {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(types.LSPServerConfigProvider)
}

func (m *MockBridge) AllowedDirectories() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockBridge) ResolveSite(uri string, line, character uint32) (types.Site, error) {
	args := m.Called(uri, line, character)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.Site), args.Error(1)
}

func (m *MockBridge) GenerateAt(kind mockgen.StatementKind, uri string, line, character uint32, deliver bool) (*types.StubResult, error) {
	args := m.Called(kind, uri, line, character, deliver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.StubResult), args.Error(1)
}
