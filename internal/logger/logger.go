// Package logger provides structured logging for the date picker. Output goes
// to the console, a dated log file, or both.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nowwaveradio/datepicker/internal/constants"
	"github.com/nowwaveradio/datepicker/internal/errorutil"
)

// Config represents logging configuration
type Config struct {
	Enabled       bool   `toml:"enabled"`
	Directory     string `toml:"directory"`
	Filename      string `toml:"filename"`
	Level         string `toml:"level"`
	ConsoleOutput bool   `toml:"console_output"`
	Format        string `toml:"format"` // "text" or "json"
}

// DefaultConfig logs info and above to the console only.
func DefaultConfig() Config {
	return Config{
		Enabled:       false,
		Directory:     "logs",
		Filename:      constants.DefaultLogFilename,
		Level:         constants.DefaultLogLevel,
		ConsoleOutput: true,
		Format:        "text",
	}
}

// Logger wraps slog.Logger with the log file it writes to
type Logger struct {
	*slog.Logger
	config   Config
	file     *os.File
	fileName string
	mu       sync.Mutex
}

// NewLogger creates a logger writing to console (when enabled in config)
// and to a file under config.Directory (when config.Enabled).
func NewLogger(config Config, console io.Writer) (*Logger, error) {
	l := &Logger{config: config}

	writers := []io.Writer{}
	if config.ConsoleOutput && console != nil {
		writers = append(writers, console)
	}

	if config.Enabled {
		if err := ValidateFilenamePattern(config.Filename); err != nil {
			return nil, err
		}
		dir := config.Directory
		if dir == "" {
			dir = "logs"
		}
		if err := errorutil.ValidateDirectory(dir, "create log directory", true); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, generateLogFilename(config.Filename, time.Now()))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		l.fileName = path
		writers = append(writers, file)
	}

	if len(writers) == 0 {
		d := Discard()
		d.config = config
		return d, nil
	}

	l.Logger = slog.New(newHandler(io.MultiWriter(writers...), config))
	l.Debug("Logger initialized",
		slog.String("log_file", l.fileName),
		slog.String("level", config.Level),
		slog.Bool("console", config.ConsoleOutput))

	return l, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

func newHandler(w io.Writer, config Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(config.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format("2006-01-02T15:04:05.000-07:00"))
			}
			return a
		},
	}
	if strings.EqualFold(config.Format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// FileName returns the path of the open log file, "" when file logging is off.
func (l *Logger) FileName() string {
	return l.fileName
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// generateLogFilename expands %Y, %m and %d in pattern
func generateLogFilename(pattern string, now time.Time) string {
	if pattern == "" {
		pattern = constants.DefaultLogFilename
	}

	r := strings.NewReplacer(
		"%Y", fmt.Sprintf("%04d", now.Year()),
		"%m", fmt.Sprintf("%02d", now.Month()),
		"%d", fmt.Sprintf("%02d", now.Day()),
	)
	return r.Replace(pattern)
}

// parseLogLevel converts string level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevels lists the accepted level names.
func ValidLevels() []string {
	return []string{"debug", "info", "warn", "warning", "error"}
}
