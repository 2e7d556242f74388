// Package cmd implements the mockito-tools command line.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"rockerboo/mockito-tools/bridge"
	"rockerboo/mockito-tools/clipboard"
	"rockerboo/mockito-tools/directories"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/lsp"
	"rockerboo/mockito-tools/security"

	"github.com/spf13/cobra"
)

const (
	appName = "mockito-tools"
	version = "1.0.0"

	configFileName = "lsp_config.json"
)

// dirResolver is the part of directories.DirectoryResolver the CLI needs
type dirResolver interface {
	GetConfigDirectory() (string, error)
	GetLogDirectory() (string, error)
	GetWorkspaceDirectory(projectName string) (string, error)
}

// app holds flag values and the dependencies commands share
type app struct {
	configPath string
	logPath    string
	logLevel   string
	projectDir string

	dirs          dirResolver
	clipboard     clipboard.Writer
	bridgeOptions []bridge.Option

	config *lsp.LSPServerConfig
}

func newApp() *app {
	return &app{
		dirs:      directories.NewDirectoryResolver(appName, directories.DefaultUserProvider{}, directories.DefaultEnvProvider{}, true),
		clipboard: clipboard.Default(),
	}
}

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate Mockito stubbing statements for Java methods",
		Long: `mockito-tools turns the Java method under a caret into a Mockito stubbing
statement (doNothing, doReturn, thenReturn, thenThrow). Carets are resolved
through the jdtls language server. Run without a subcommand to serve the
tools over MCP on stdio.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to LSP configuration file")
	cmd.PersistentFlags().StringVarP(&a.logPath, "log-path", "l", "", "Path to log file (overrides config and default)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVarP(&a.projectDir, "project", "p", "", "Project root handed to the language server (default: current directory)")

	// Registered before Find runs so "--version --log-path x" is not
	// split into a subcommand named x
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newGenerateCmd(a))
	cmd.AddCommand(newStubCmd(a))

	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and starts the file logger
func (a *app) setup() error {
	configDir, err := a.dirs.GetConfigDirectory()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if a.logLevel != "" {
		if _, ok := logger.ParseLevel(a.logLevel); !ok {
			return fmt.Errorf("unknown log level %q (expected debug, info, warn or error)", a.logLevel)
		}
	}

	config, err := a.loadConfig(configDir)
	if err != nil {
		return err
	}
	a.config = config

	if err := logger.InitLogger(a.loggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// loadConfig reads an explicit --config or the first config found in the
// usual locations, falling back to the built-in jdtls setup.
func (a *app) loadConfig(configDir string) (*lsp.LSPServerConfig, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	allowed := security.GetConfigAllowedDirectories(configDir, workingDir)

	if a.configPath != "" {
		config, err := lsp.LoadLSPConfig(a.configPath, allowed)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", a.configPath, err)
		}
		return config, nil
	}

	candidates := []string{
		filepath.Join(configDir, configFileName),
		configFileName,
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}

		config, err := lsp.LoadLSPConfig(path, allowed)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", path, err)
		}
		return config, nil
	}

	return lsp.DefaultLSPConfig(), nil
}

func (a *app) loggerConfig() logger.LoggerConfig {
	cfg := logger.DefaultConfig()

	if logDir, err := a.dirs.GetLogDirectory(); err == nil {
		cfg.LogPath = filepath.Join(logDir, appName+".log")
	}

	global := a.config.GetGlobalConfig()
	if global.LogPath != "" {
		cfg.LogPath = global.LogPath
	}
	if global.LogLevel != "" {
		cfg.LogLevel = global.LogLevel
	}
	if global.MaxLogFiles > 0 {
		cfg.MaxLogFiles = global.MaxLogFiles
	}

	if a.logPath != "" {
		cfg.LogPath = a.logPath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	return cfg
}

// newBridge builds a bridge rooted at the project directory
func (a *app) newBridge() (*bridge.MockitoBridge, error) {
	root := a.projectDir
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		root = wd
	}

	root, err := security.GetCleanAbsPath(root)
	if err != nil {
		return nil, fmt.Errorf("invalid project directory: %w", err)
	}

	opts := append([]bridge.Option{
		bridge.WithClipboard(a.clipboard),
		bridge.WithWorkspaceResolver(a.dirs),
	}, a.bridgeOptions...)

	return bridge.NewMockitoBridge(a.config, []string{root}, opts...), nil
}
