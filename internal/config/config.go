// Package config provides configuration management for the date picker.
// It handles loading TOML configuration files, merging them with defaults,
// environment overrides and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/nowwaveradio/datepicker/internal/constants"
	"github.com/nowwaveradio/datepicker/internal/dateformat"
	"github.com/nowwaveradio/datepicker/internal/errorutil"
	"github.com/nowwaveradio/datepicker/internal/locale"
	"github.com/nowwaveradio/datepicker/internal/logger"
	"github.com/nowwaveradio/datepicker/internal/template"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvLanguage       = "DATEPICKER_LANGUAGE"
	EnvDateFormat     = "DATEPICKER_DATE_FORMAT"
	EnvRollover       = "DATEPICKER_ROLLOVER"
	EnvHeaderTemplate = "DATEPICKER_HEADER_TEMPLATE"
	EnvLogLevel       = "DATEPICKER_LOG_LEVEL"
)

// Config represents the main configuration structure
type Config struct {
	Picker  PickerConfig  `toml:"picker"`
	Logging logger.Config `toml:"logging"`
}

// PickerConfig holds the picker construction options
type PickerConfig struct {
	Language       string   `toml:"language"`        // BCP 47 tag, "en" or "zh"
	DateFormat     string   `toml:"date_format"`     // "YYYY-MM-DD" or "DD/MM/YYYY"
	Rollover       string   `toml:"rollover"`        // "permissive" or "strict"
	HeaderTemplate string   `toml:"header_template"` // text/template for the popup title
	Triggers       []string `toml:"triggers"`
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return "config." + e.Field + ": " + e.Message
	}
	return e.Message
}

var (
	ErrFileNotFound  = errors.New("configuration file not found")
	ErrInvalidFormat = errors.New("invalid configuration file format")
)

// LoadConfig reads and parses a TOML configuration file, merges it with the
// defaults and applies environment overrides. The result is not validated.
func LoadConfig(path string) (*Config, error) {
	if err := errorutil.ValidateFileReadable(path, "load config"); err != nil {
		if errors.Is(err, errorutil.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var loaded Config
	meta, err := toml.Decode(string(data), &loaded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - %v", ErrInvalidFormat, path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: %s - unknown keys: %s", ErrInvalidFormat, path, strings.Join(keys, ", "))
	}

	config := mergeWithDefaults(&loaded, meta, DefaultConfig())
	config.ApplyEnvironmentOverrides()

	return config, nil
}

// LoadEnvFile loads KEY=value pairs from a dotenv file into the process
// environment. Variables already set are left alone; a missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			Language:       constants.DefaultLanguage,
			DateFormat:     constants.DefaultDateFormat,
			Rollover:       constants.DefaultRollover,
			HeaderTemplate: constants.DefaultHeaderTemplate,
			Triggers:       []string{},
		},
		Logging: logger.DefaultConfig(),
	}
}

// mergeWithDefaults takes a loaded config and merges it with default values.
// Strings and slices override when non-empty; booleans override when the key
// was present in the file.
func mergeWithDefaults(loaded *Config, meta toml.MetaData, defaults *Config) *Config {
	result := *defaults

	if loaded.Picker.Language != "" {
		result.Picker.Language = loaded.Picker.Language
	}
	if loaded.Picker.DateFormat != "" {
		result.Picker.DateFormat = loaded.Picker.DateFormat
	}
	if loaded.Picker.Rollover != "" {
		result.Picker.Rollover = loaded.Picker.Rollover
	}
	if loaded.Picker.HeaderTemplate != "" {
		result.Picker.HeaderTemplate = loaded.Picker.HeaderTemplate
	}
	if len(loaded.Picker.Triggers) > 0 {
		result.Picker.Triggers = loaded.Picker.Triggers
	}

	if meta.IsDefined("logging", "enabled") {
		result.Logging.Enabled = loaded.Logging.Enabled
	}
	if meta.IsDefined("logging", "console_output") {
		result.Logging.ConsoleOutput = loaded.Logging.ConsoleOutput
	}
	if loaded.Logging.Directory != "" {
		result.Logging.Directory = loaded.Logging.Directory
	}
	if loaded.Logging.Filename != "" {
		result.Logging.Filename = loaded.Logging.Filename
	}
	if loaded.Logging.Level != "" {
		result.Logging.Level = loaded.Logging.Level
	}
	if loaded.Logging.Format != "" {
		result.Logging.Format = loaded.Logging.Format
	}

	return &result
}

// ApplyEnvironmentOverrides checks for environment variables and overrides config values
func (c *Config) ApplyEnvironmentOverrides() {
	if envVal := os.Getenv(EnvLanguage); envVal != "" {
		c.Picker.Language = envVal
	}
	if envVal := os.Getenv(EnvDateFormat); envVal != "" {
		c.Picker.DateFormat = envVal
	}
	if envVal := os.Getenv(EnvRollover); envVal != "" {
		c.Picker.Rollover = envVal
	}
	if envVal := os.Getenv(EnvHeaderTemplate); envVal != "" {
		c.Picker.HeaderTemplate = envVal
	}
	if envVal := os.Getenv(EnvLogLevel); envVal != "" {
		c.Logging.Level = envVal
	}
}

// Validate checks that every option names something the picker supports.
// The controller falls back to defaults for bad values; Validate lets the
// CLI reject them up front instead.
func (c *Config) Validate() error {
	vb := errorutil.NewValidationBuilder("configuration").
		OneOf("picker.date_format", c.Picker.DateFormat, []string{dateformat.PatternISO, dateformat.PatternEuro}).
		OneOf("picker.rollover", c.Picker.Rollover, []string{
			dateformat.RolloverPermissive.String(),
			dateformat.RolloverStrict.String(),
		}).
		Custom("picker.language", c.Picker.Language, func(v interface{}) bool {
			s := v.(string)
			return s == "" || locale.IsSupported(s)
		}, "must be an English or Chinese language tag").
		Custom("picker.header_template", c.Picker.HeaderTemplate, func(v interface{}) bool {
			_, err := template.NewHeaderFormatter(v.(string))
			return err == nil
		}, "is not a valid header template").
		Custom("picker.triggers", c.Picker.Triggers, func(v interface{}) bool {
			for _, id := range v.([]string) {
				if errorutil.IsEmptyString(id) {
					return false
				}
			}
			return true
		}, "must not contain blank trigger ids").
		OneOf("logging.level", c.Logging.Level, logger.ValidLevels()).
		OneOf("logging.format", c.Logging.Format, []string{"text", "json"}).
		Custom("logging.filename", c.Logging.Filename, func(v interface{}) bool {
			return logger.ValidateFilenamePattern(v.(string)) == nil
		}, "must be a file name without directory separators")

	if c.Logging.Enabled {
		vb.RequiredString("logging.directory", c.Logging.Directory)
	}

	return vb.Build()
}

// SaveConfig writes a Config struct to a TOML file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return ConfigError{Message: "config cannot be nil"}
	}

	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(config); err != nil {
		return fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	return errorutil.SafeWriteFile(path, []byte(b.String()), "save config", true)
}
