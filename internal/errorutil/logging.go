package errorutil

import (
	"fmt"
	"log/slog"
)

// LogAndWrap logs an error with structured context and returns it wrapped
// with the operation name
func LogAndWrap(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) error {
	if logger == nil || err == nil {
		return err
	}

	logger.Error(operation+" failed", errorArgs(err, attrs)...)
	return fmt.Errorf("%s: %w", operation, err)
}

// LogWarning logs a non-fatal error as warning without wrapping
func LogWarning(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) {
	if logger == nil || err == nil {
		return
	}

	logger.Warn("Non-fatal error in "+operation, errorArgs(err, attrs)...)
}

// LogRecovered logs at debug level an error that was handled locally and
// never reaches the caller, such as a trigger value in the wrong format
func LogRecovered(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) {
	if logger == nil || err == nil {
		return
	}

	logger.Debug("Recovered from "+operation+" error", errorArgs(err, attrs)...)
}

func errorArgs(err error, attrs []slog.Attr) []any {
	args := make([]any, 0, len(attrs)+1)
	args = append(args, slog.String("error", err.Error()))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// TriggerContext returns the log attributes identifying a trigger
func TriggerContext(trigger string) []slog.Attr {
	if trigger == "" {
		return nil
	}
	return []slog.Attr{slog.String("trigger", trigger)}
}

// ConfigContext returns the log attributes identifying a config file
func ConfigContext(configFile string) []slog.Attr {
	if configFile == "" {
		return nil
	}
	return []slog.Attr{slog.String("config_file", configFile)}
}
