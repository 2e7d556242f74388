package lsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"rockerboo/mockito-tools/security"
	"rockerboo/mockito-tools/types"
)

const (
	JavaLanguage types.Language       = "java"
	JavaServer   types.LanguageServer = "jdtls"
)

// LoadLSPConfig loads the LSP configuration from a JSON file with security validation
func LoadLSPConfig(path string, allowedDirectories []string) (config *LSPServerConfig, err error) {
	cleanPath, err := security.ValidateConfigPath(path, allowedDirectories)
	if err != nil {
		return nil, fmt.Errorf("config path validation failed: %w", err)
	}

	file, err := os.Open(cleanPath) // #nosec G304 - Path validated by security.ValidateConfigPath
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.ExtensionLanguageMap == nil {
		return nil, errors.New("extension_language_map is required in configuration")
	}

	if config.LanguageServerMap == nil {
		return nil, errors.New("language_server_map is required in configuration")
	}

	return config, nil
}

// DefaultLSPConfig targets Eclipse JDT LS on the PATH for .java files
func DefaultLSPConfig() *LSPServerConfig {
	return &LSPServerConfig{
		LanguageServers: map[types.LanguageServer]LanguageServerConfig{
			JavaServer: {
				Command:   "jdtls",
				Languages: []string{string(JavaLanguage)},
				Filetypes: []string{".java"},
			},
		},
		LanguageServerMap: map[types.LanguageServer][]types.Language{
			JavaServer: {JavaLanguage},
		},
		ExtensionLanguageMap: map[string]types.Language{
			".java": JavaLanguage,
		},
		Global: types.GlobalConfig{
			LogLevel:           "info",
			MaxLogFiles:        5,
			MaxRestartAttempts: 3,
			RestartDelayMs:     2000,
		},
	}
}

func (c *LSPServerConfig) FindExtLanguage(ext string) (*types.Language, error) {
	language, exists := c.ExtensionLanguageMap[ext]
	if !exists {
		return nil, fmt.Errorf("no language found for %s", ext)
	}

	return &language, nil
}

func (c *LSPServerConfig) FindServerConfig(language string) (types.LanguageServerConfigProvider, error) {
	serverName := c.GetServerNameFromLanguage(types.Language(language))
	if serverName == "" {
		return nil, fmt.Errorf("no server found for language '%s'", language)
	}

	serverConfig, exists := c.LanguageServers[serverName]
	if !exists {
		return nil, fmt.Errorf("server config not found for server '%s'", string(serverName))
	}

	return &serverConfig, nil
}

// GetServerNameFromLanguage returns the server name for a given language
func (c *LSPServerConfig) GetServerNameFromLanguage(language types.Language) types.LanguageServer {
	for serverName, supportedLanguages := range c.LanguageServerMap {
		if slices.Contains(supportedLanguages, language) {
			return serverName
		}
	}
	return ""
}

func (c *LSPServerConfig) GetGlobalConfig() types.GlobalConfig {
	return c.Global
}

func (c *LSPServerConfig) GetMockitoConfig() types.MockitoConfig {
	return c.Mockito
}
