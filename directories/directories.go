// Package directories resolves per-user locations for logs, configuration
// and language server workspaces.
package directories

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
)

// EnvProvider provides access to environment variables.
type EnvProvider interface {
	Getenv(key string) string
}

// DefaultEnvProvider reads the process environment.
type DefaultEnvProvider struct{}

func NewDefaultEnvProvider() DefaultEnvProvider {
	return DefaultEnvProvider{}
}

func (d DefaultEnvProvider) Getenv(key string) string {
	return os.Getenv(key)
}

// UserProvider provides access to the current user's information.
type UserProvider interface {
	Current() (*user.User, error)
}

// DefaultUserProvider uses user.Current.
type DefaultUserProvider struct{}

func (d DefaultUserProvider) Current() (*user.User, error) {
	return user.Current()
}

// location describes where one kind of directory lives on each platform
type location struct {
	rootDir    string   // absolute base for uid 0
	unixEnv    string   // XDG variable
	unixHome   []string // fallback below $HOME
	windowsEnv string
	winHome    []string
	suffix     []string // appended after the app name for regular users
}

var (
	logLocation = location{
		rootDir:    "/var/log",
		unixEnv:    "XDG_DATA_HOME",
		unixHome:   []string{".local", "share"},
		windowsEnv: "LOCALAPPDATA",
		winHome:    []string{"AppData", "Local"},
		suffix:     []string{"logs"},
	}
	configLocation = location{
		rootDir:    "/etc",
		unixEnv:    "XDG_CONFIG_HOME",
		unixHome:   []string{".config"},
		windowsEnv: "APPDATA",
		winHome:    []string{"AppData", "Roaming"},
	}
	dataLocation = location{
		rootDir:    "/var/lib",
		unixEnv:    "XDG_DATA_HOME",
		unixHome:   []string{".local", "share"},
		windowsEnv: "LOCALAPPDATA",
		winHome:    []string{"AppData", "Local"},
	}
)

// DirectoryResolver handles directory resolution logic for applications
type DirectoryResolver struct {
	appName         string
	userProvider    UserProvider
	envProvider     EnvProvider
	shouldEnsureDir bool
	goos            string
}

// NewDirectoryResolver creates a resolver. With shouldEnsureDir set, every
// returned directory is created first.
func NewDirectoryResolver(appName string, userProvider UserProvider, envProvider EnvProvider, shouldEnsureDir bool) *DirectoryResolver {
	return &DirectoryResolver{
		appName:         appName,
		userProvider:    userProvider,
		envProvider:     envProvider,
		shouldEnsureDir: shouldEnsureDir,
		goos:            runtime.GOOS,
	}
}

func (dr *DirectoryResolver) maybeEnsureDir(dir string) (string, error) {
	if !dr.shouldEnsureDir {
		return dir, nil
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

func (dr *DirectoryResolver) resolve(loc location) (string, error) {
	u, err := dr.userProvider.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}

	if u.Uid == "0" && dr.goos != "windows" {
		return dr.maybeEnsureDir(filepath.Join(loc.rootDir, dr.appName))
	}

	var base string
	if dr.goos == "windows" {
		base = dr.envProvider.Getenv(loc.windowsEnv)
		if base == "" {
			base = filepath.Join(append([]string{u.HomeDir}, loc.winHome...)...)
		}
	} else {
		base = dr.envProvider.Getenv(loc.unixEnv)
		if base == "" {
			base = filepath.Join(append([]string{u.HomeDir}, loc.unixHome...)...)
		}
	}

	parts := append([]string{base, dr.appName}, loc.suffix...)
	return dr.maybeEnsureDir(filepath.Join(parts...))
}

// GetLogDirectory returns /var/log/{app} for root, otherwise
// $XDG_DATA_HOME/{app}/logs or %LOCALAPPDATA%\{app}\logs.
func (dr *DirectoryResolver) GetLogDirectory() (string, error) {
	return dr.resolve(logLocation)
}

// GetConfigDirectory returns /etc/{app} for root, otherwise
// $XDG_CONFIG_HOME/{app} or %APPDATA%\{app}.
func (dr *DirectoryResolver) GetConfigDirectory() (string, error) {
	return dr.resolve(configLocation)
}

// GetDataDirectory returns /var/lib/{app} for root, otherwise
// $XDG_DATA_HOME/{app} or %LOCALAPPDATA%\{app}. Language server
// workspaces live below it.
func (dr *DirectoryResolver) GetDataDirectory() (string, error) {
	return dr.resolve(dataLocation)
}

// GetWorkspaceDirectory returns the per-project data directory handed to
// servers such as jdtls through their -data argument.
func (dr *DirectoryResolver) GetWorkspaceDirectory(projectName string) (string, error) {
	data, err := dr.GetDataDirectory()
	if err != nil {
		return "", err
	}

	if projectName == "" {
		projectName = "default"
	}

	return dr.maybeEnsureDir(filepath.Join(data, "workspaces", filepath.Base(projectName)))
}
