package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// LogFileFormat is the daily log file name pattern inside the log directory
const LogFileFormat = "whatsapp-bot-%s.log"

// Global variable to track the rotating writer for proper cleanup
var activeRotatingWriter *DailyRotatingWriter

// SetupLogging configures the application logging.
// Every line goes to the console and to the daily log file, timestamped and leveled.
func SetupLogging(logDir, level string) (zerolog.Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileWriter, err := NewDailyRotatingWriter(logDir, LogFileFormat)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("failed to create log writer: %w", err)
	}

	// Store the writer for later cleanup
	activeRotatingWriter = fileWriter

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	file := zerolog.ConsoleWriter{Out: fileWriter, TimeFormat: time.RFC3339, NoColor: true}

	log := New(zerolog.MultiLevelWriter(console, file), level)

	logFilePath := filepath.Join(logDir, fmt.Sprintf(LogFileFormat, fileWriter.CurrentDate))
	log.Info().Str("path", logFilePath).Msg("Logging initialized")

	return log, nil
}

// New builds a timestamped logger on top of w. Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// SetupFallbackLogger creates a simple console logger when file logging fails
func SetupFallbackLogger(level string) zerolog.Logger {
	fmt.Printf("Failed to set up file logging, using console logging only\n")
	return New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}, level)
}

// GetWriter returns an io.Writer that forwards each write to log at the given level.
// Used to route gin's own output through the application logger.
func GetWriter(log zerolog.Logger, level zerolog.Level) io.Writer {
	return levelWriter{log: log, level: level}
}

type levelWriter struct {
	log   zerolog.Logger
	level zerolog.Level
}

func (w levelWriter) Write(p []byte) (int, error) {
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.log.WithLevel(w.level).Msg(msg)
	return len(p), nil
}

// CloseLogger properly closes the log file
func CloseLogger() error {
	if activeRotatingWriter != nil {
		return activeRotatingWriter.Close()
	}
	return nil
}
