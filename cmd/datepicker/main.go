package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/nowwaveradio/datepicker/internal/config"
	"github.com/nowwaveradio/datepicker/internal/errorutil"
	"github.com/nowwaveradio/datepicker/internal/logger"
	"github.com/nowwaveradio/datepicker/internal/picker"
	"github.com/nowwaveradio/datepicker/internal/render"
)

const version = "1.0.0"

var (
	configFile  = flag.String("config", "", "Path to the TOML configuration file")
	envFile     = flag.String("env", ".env", "Path to a dotenv file with DATEPICKER_* overrides")
	initConfig  = flag.Bool("init", false, "Write a default configuration to -config and exit")
	lang        = flag.String("lang", "", "Label language: en or zh (overrides config)")
	dateFormat  = flag.String("format", "", "Date format: YYYY-MM-DD or DD/MM/YYYY (overrides config)")
	rollover    = flag.String("rollover", "", "Day overflow policy: permissive or strict (overrides config)")
	scriptFile  = flag.String("script", "", "Event script to replay (default: read stdin)")
	showVersion = flag.Bool("version", false, "Show version information")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "datepicker v%s\n\n", version)
		fmt.Fprintf(os.Stderr, "Drives a calendar date picker from a script of trigger, focus and click events.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScript commands:\n")
		fmt.Fprintf(os.Stderr, "  trigger <id> [value]   register a trigger, optionally setting its text\n")
		fmt.Fprintf(os.Stderr, "  focus <id>             focus a trigger (opens the popup)\n")
		fmt.Fprintf(os.Stderr, "  prev | next            show the previous or next month\n")
		fmt.Fprintf(os.Stderr, "  month <delta>          move the displayed month by delta\n")
		fmt.Fprintf(os.Stderr, "  pick <index>           pick grid cell 0-41\n")
		fmt.Fprintf(os.Stderr, "  date <text>            pick the date written in the configured format\n")
		fmt.Fprintf(os.Stderr, "  click <id|outside|popup>\n")
		fmt.Fprintf(os.Stderr, "  close | show\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -format DD/MM/YYYY -script demo.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -config datepicker.toml -init\n", os.Args[0])
	}
}

// loadConfiguration loads the config file when given, then applies flag
// overrides and validates the result
func loadConfiguration() (*config.Config, error) {
	if err := config.LoadEnvFile(*envFile); err != nil {
		return nil, err
	}

	var cfg *config.Config
	if *configFile == "" {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	} else {
		loaded, err := config.LoadConfig(filepath.Clean(*configFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", *configFile, err)
		}
		cfg = loaded
	}

	if *lang != "" {
		cfg.Picker.Language = *lang
	}
	if *dateFormat != "" {
		cfg.Picker.DateFormat = *dateFormat
	}
	if *rollover != "" {
		cfg.Picker.Rollover = *rollover
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func writeDefaultConfig(path string) error {
	if path == "" {
		return config.ConfigError{Field: "path", Message: "-init requires -config"}
	}
	if _, err := os.Stat(path); err == nil {
		return config.ConfigError{Message: fmt.Sprintf("refusing to overwrite existing %s", path)}
	}
	return config.SaveConfig(config.DefaultConfig(), path)
}

// openInput returns the script reader and whether it is an interactive terminal
func openInput() (io.ReadCloser, bool, error) {
	if *scriptFile == "" {
		return io.NopCloser(os.Stdin), term.IsTerminal(int(os.Stdin.Fd())), nil
	}
	if err := errorutil.ValidateFileReadable(*scriptFile, "open script"); err != nil {
		return nil, false, err
	}
	f, err := os.Open(*scriptFile)
	if err != nil {
		return nil, false, err
	}
	return f, false, nil
}

func newController(cfg *config.Config, out io.Writer, log *slog.Logger) (*picker.Controller, *picker.Bus, *render.Terminal) {
	triggers := make([]picker.TriggerID, 0, len(cfg.Picker.Triggers))
	for _, id := range cfg.Picker.Triggers {
		triggers = append(triggers, picker.TriggerID(id))
	}

	termRenderer := render.NewTerminal(out, log)
	bus := picker.NewBus()
	ctrl := picker.New(termRenderer, bus, picker.Options{
		Language:       cfg.Picker.Language,
		DateFormat:     cfg.Picker.DateFormat,
		Rollover:       cfg.Picker.Rollover,
		HeaderTemplate: cfg.Picker.HeaderTemplate,
		Triggers:       triggers,
		Logger:         log,
	})
	return ctrl, bus, termRenderer
}

// run executes one invocation and returns the process exit code. Deferred
// teardown runs before main exits.
func run(stdout, stderr io.Writer) int {
	if *showVersion {
		fmt.Fprintf(stdout, "datepicker v%s\n", version)
		return 0
	}

	if *initConfig {
		if err := writeDefaultConfig(*configFile); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Default configuration created at: %s\n", *configFile)
		return 0
	}

	cfg, err := loadConfiguration()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	// stdout carries the popups, so console logging goes to stderr
	log, err := logger.NewLogger(cfg.Logging, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing logger: %v\n", err)
		return 1
	}
	defer log.Close()
	log.LogAttrs(context.Background(), slog.LevelDebug, "Configuration loaded", errorutil.ConfigContext(*configFile)...)

	input, interactive, err := openInput()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer input.Close()

	ctrl, bus, termRenderer := newController(cfg, stdout, log.Logger)
	defer ctrl.Dispose()

	var prompt func()
	if interactive {
		fmt.Fprintf(stdout, "datepicker v%s - type commands, Ctrl-D to quit\n", version)
		prompt = func() { fmt.Fprint(stdout, "> ") }
	}

	s := newSession(ctrl, bus, termRenderer, stdout, log.Logger)
	if err := s.run(input, prompt, interactive); err != nil {
		errorutil.LogAndWrap(log.Logger, "script replay", err, errorutil.ConfigContext(*configFile)...)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	flag.Parse()
	os.Exit(run(os.Stdout, os.Stderr))
}
