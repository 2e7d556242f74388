package mocks

import (
	"rockerboo/mockito-tools/types"

	"github.com/stretchr/testify/mock"
)

type MockLSPServerConfig struct {
	mock.Mock
}

func (m *MockLSPServerConfig) FindServerConfig(language string) (types.LanguageServerConfigProvider, error) {
	args := m.Called(language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(types.LanguageServerConfigProvider), args.Error(1)
}

func (m *MockLSPServerConfig) GetGlobalConfig() types.GlobalConfig {
	args := m.Called()
	return args.Get(0).(types.GlobalConfig)
}

func (m *MockLSPServerConfig) GetMockitoConfig() types.MockitoConfig {
	args := m.Called()
	return args.Get(0).(types.MockitoConfig)
}

func (m *MockLSPServerConfig) GetServerNameFromLanguage(language types.Language) types.LanguageServer {
	args := m.Called(language)
	return args.Get(0).(types.LanguageServer)
}

func (m *MockLSPServerConfig) FindExtLanguage(ext string) (*types.Language, error) {
	args := m.Called(ext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Language), args.Error(1)
}
