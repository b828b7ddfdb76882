// Package logging builds the pacebell logger.
//
// Logs go to the console and to a rotating file under ~/.pacebell/logs.
// Console output adapts to the terminal: a human-readable writer on a TTY,
// JSON to stderr otherwise.
//
// Import rules:
//   - CAN import: internal/constants, std lib
//   - MUST NOT import: internal/cli, internal/tui
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pacebell/pacebell/internal/constants"
)

// logFileWriter holds the file writer for cleanup during shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// globalMu protects concurrent writes to the zerolog global logger.
var globalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// InitLogger creates the pacebell logger based on verbosity flags.
//
// Log levels:
//   - verbose=true: Debug level
//   - quiet=true: Warn level
//   - default: Info level
//
// When the log file cannot be created, logging continues console-only.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	console := selectOutput()

	var writer io.Writer = console
	if fileWriter, err := createLogFileWriter(); err == nil {
		logFileWriter = fileWriter
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	logger := zerolog.New(writer).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates a logger against a custom writer. This is
// primarily intended for testing.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).Level(selectLevel(verbose, quiet)).With().Timestamp().Logger()
	setGlobalLogger(logger)
	return logger
}

// setGlobalLogger points the zerolog global logger at the same sink, so
// stray log.Info() calls format identically.
func setGlobalLogger(logger zerolog.Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	log.Logger = logger
}

// CloseLogFile closes the log file writer if one was opened. Call during
// shutdown.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel maps verbosity flags to a zerolog level.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks the console writer: pretty output on a TTY without
// NO_COLOR, JSON to stderr otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter creates the rotating file writer for the CLI log.
func createLogFileWriter() (io.WriteCloser, error) {
	home, err := Home()
	if err != nil {
		return nil, err
	}

	logDir := filepath.Join(home, constants.LogsDir)
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.CLILogFileName),
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}, nil
}

// Home returns the pacebell home directory: $PACEBELL_HOME when set,
// ~/.pacebell otherwise.
func Home() (string, error) {
	if home := os.Getenv(constants.HomeEnvVar); home != "" {
		return home, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, constants.PacebellHome), nil
}

// LogFilePath returns the path of the CLI log file, for display to users.
func LogFilePath() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir, constants.CLILogFileName), nil
}
