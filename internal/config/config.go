package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-jump/internal/app"
	"github.com/atomicstack/tmux-jump/internal/layout"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrUnknownMode   = errors.New("unknown display mode")
)

const (
	envSocketPath = "TMUX_JUMP_SOCKET"
	envWidth      = "TMUX_JUMP_WIDTH"
	envHeight     = "TMUX_JUMP_HEIGHT"
	envShowFooter = "TMUX_JUMP_FOOTER"
	envVerbose    = "TMUX_JUMP_VERBOSE"
	envTrace      = "TMUX_JUMP_TRACE"
	envLogFile    = "TMUX_JUMP_LOG_FILE"
	envAction     = "TMUX_JUMP_ACTION"
	envDisplay    = "TMUX_JUMP_DISPLAY"
	envConfig     = "TMUX_JUMP_CONFIG"
	envFilter     = "TMUX_JUMP_PANE_FILTER"
	envPoll       = "TMUX_JUMP_POLL_MS"
	envPreview    = "TMUX_JUMP_PREVIEW"
)

const defaultPollInterval = 1500 * time.Millisecond

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. The config
// file named by -config (or the default path) is read as part of loading.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-jump", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "show a status line after actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	action := fs.String("action", envOrDefault(env, envAction, app.ActionOpen), "what confirming a pane does: open, close or print")
	display := fs.String("display", envOrDefault(env, envDisplay, ""), "display mode: normal or list (overrides the config file)")
	configPath := fs.String("config", envOrDefault(env, envConfig, DefaultPath(env)), "path to the TOML config file")
	filter := fs.String("filter", envOrDefault(env, envFilter, ""), "tmux format filter applied to list-panes")
	pollMS := fs.Int("poll", envOrInt(env, envPoll, int(defaultPollInterval/time.Millisecond)), "pane refresh interval in milliseconds")
	preview := fs.Bool("preview", envOrBool(env, envPreview, true), "show a capture of the highlighted pane while filtering")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *pollMS <= 0 {
		return Config{}, fmt.Errorf("poll must be > 0 (got %d)", *pollMS)
	}

	file, err := LoadFile(*configPath)
	if err != nil {
		return Config{}, err
	}
	opts, err := file.Options()
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", *configPath, err)
	}
	if strings.TrimSpace(*display) != "" {
		mode, err := layout.ParseMode(*display)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, *display)
		}
		opts.Layout.Mode = mode
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			Action:       strings.ToLower(strings.TrimSpace(*action)),
			Options:      opts,
			PaneFilter:   *filter,
			PollInterval: time.Duration(*pollMS) * time.Millisecond,
			Preview:      *preview,
			PreviewLines: file.PreviewLines(),
			ConfigPath:   *configPath,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"socket":  *socket,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"verbose": strconv.FormatBool(*verbose),
			"logFile": *logFile,
			"action":  *action,
			"display": opts.Layout.Mode.String(),
			"config":  *configPath,
			"filter":  *filter,
			"poll":    strconv.Itoa(*pollMS),
			"preview": strconv.FormatBool(*preview),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings that would only fail once the popup is open.
func Validate(cfg Config) error {
	switch cfg.App.Action {
	case app.ActionOpen, app.ActionClose, app.ActionPrint:
	default:
		return fmt.Errorf("%w %q (want open, close or print)", ErrUnknownAction, cfg.App.Action)
	}
	if cfg.App.Options.Cutoff < 0 {
		return fmt.Errorf("fuzzy cutoff must be >= 0 (got %d)", cfg.App.Options.Cutoff)
	}
	if len(cfg.App.Options.Layout.Elements()) == 0 {
		return fmt.Errorf("display mode %s has no elements", cfg.App.Options.Layout.Mode)
	}
	return nil
}
