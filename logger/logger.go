package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Logs go to a file only. Stdout carries the MCP stdio transport.

type LoggerConfig struct {
	LogPath     string
	LogLevel    string // "debug", "info", "warn", "error"
	MaxLogFiles int    // Maximum number of log files to keep
}

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

var levels = map[string]int{
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

var (
	config      LoggerConfig
	threshold   = levelInfo
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	logFile     *os.File
	logMutex    sync.Mutex
)

// DefaultConfig provides a default logging configuration
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		LogPath:     filepath.Join(os.TempDir(), "mockito-tools.log"),
		LogLevel:    "info",
		MaxLogFiles: 5,
	}
}

// ParseLevel maps a level name to its threshold. Unknown names fall back to info.
func ParseLevel(name string) (int, bool) {
	level, ok := levels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return levelInfo, false
	}
	return level, true
}

// InitLogger sets up file-based logging with configuration
func InitLogger(cfg LoggerConfig) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if cfg.LogPath == "" {
		defaults := DefaultConfig()
		cfg.LogPath = defaults.LogPath
		if cfg.MaxLogFiles == 0 {
			cfg.MaxLogFiles = defaults.MaxLogFiles
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	rotateLogFiles(cfg)

	file, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	config = cfg
	threshold, _ = ParseLevel(cfg.LogLevel)

	flags := log.Ldate | log.Ltime | log.Lshortfile
	infoLogger = log.New(file, "INFO: ", flags)
	warnLogger = log.New(file, "WARN: ", flags)
	errorLogger = log.New(file, "ERROR: ", flags)
	debugLogger = log.New(file, "DEBUG: ", flags)

	return nil
}

// rotateLogFiles removes the oldest rotated logs once MaxLogFiles is reached
func rotateLogFiles(cfg LoggerConfig) {
	if cfg.MaxLogFiles <= 0 {
		return
	}

	baseDir := filepath.Dir(cfg.LogPath)
	baseFileName := filepath.Base(cfg.LogPath)
	files, _ := filepath.Glob(filepath.Join(baseDir, baseFileName+".*"))

	if len(files) < cfg.MaxLogFiles {
		return
	}

	sort.Slice(files, func(i, j int) bool {
		fiA, errA := os.Stat(files[i])
		fiB, errB := os.Stat(files[j])
		if errA != nil || errB != nil {
			return files[i] < files[j]
		}
		return fiA.ModTime().Before(fiB.ModTime())
	})

	for _, oldFile := range files[:len(files)-cfg.MaxLogFiles+1] {
		_ = os.Remove(oldFile)
	}
}

func output(l *log.Logger, level int, v ...any) {
	if l == nil || level < threshold {
		return
	}
	_ = l.Output(3, fmt.Sprintln(v...))
}

// Info logs an informational message with caller context
func Info(v ...any) {
	output(infoLogger, levelInfo, v...)
}

// Warn logs a warning message with caller context
func Warn(v ...any) {
	output(warnLogger, levelWarn, v...)
}

// Error logs an error message with caller context
func Error(v ...any) {
	output(errorLogger, levelError, v...)
}

// Debug logs a debug message with caller context
func Debug(v ...any) {
	output(debugLogger, levelDebug, v...)
}

// Close closes the log file
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		logFile = nil
	}

	infoLogger, warnLogger, errorLogger, debugLogger = nil, nil, nil, nil
}
