package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-jump/internal/app"
	"github.com/atomicstack/tmux-jump/internal/layout"
	"github.com/atomicstack/tmux-jump/internal/selection"
)

func missingConfig(t *testing.T) string {
	t.Helper()
	return "-config=" + filepath.Join(t.TempDir(), "absent.toml")
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{missingConfig(t)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Action != app.ActionOpen {
		t.Fatalf("expected action open, got %q", cfg.App.Action)
	}
	if cfg.App.Options.Layout.Mode != layout.ModeNormal {
		t.Fatalf("expected normal mode, got %s", cfg.App.Options.Layout.Mode)
	}
	if cfg.App.PollInterval != defaultPollInterval {
		t.Fatalf("expected poll %s, got %s", defaultPollInterval, cfg.App.PollInterval)
	}
	if !cfg.App.Preview {
		t.Fatalf("expected preview enabled by default")
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsEnvironmentAndFlags(t *testing.T) {
	env := []string{
		"TMUX_JUMP_SOCKET=/tmp/env.sock",
		"TMUX_JUMP_WIDTH=60",
		"TMUX_JUMP_ACTION=close",
		"TMUX_JUMP_TRACE=true",
		"TMUX_JUMP_POLL_MS=500",
	}
	cfg, err := LoadArgs([]string{missingConfig(t), "-socket", "/tmp/flag.sock", "-display", "list"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.SocketPath != "/tmp/flag.sock" {
		t.Fatalf("expected flag to override env socket, got %q", cfg.App.SocketPath)
	}
	if cfg.App.Width != 60 {
		t.Fatalf("expected width 60, got %d", cfg.App.Width)
	}
	if cfg.App.Action != app.ActionClose {
		t.Fatalf("expected action close, got %q", cfg.App.Action)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled from env")
	}
	if cfg.App.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected 500ms poll, got %s", cfg.App.PollInterval)
	}
	if cfg.App.Options.Layout.Mode != layout.ModeList {
		t.Fatalf("expected list mode, got %s", cfg.App.Options.Layout.Mode)
	}
	if cfg.Flags["display"] != "list" {
		t.Fatalf("expected display flag recorded as list, got %q", cfg.Flags["display"])
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	cases := [][]string{
		{"-width", "-1"},
		{"-height", "-2"},
		{"-poll", "0"},
		{"-display", "grid"},
	}
	for _, args := range cases {
		if _, err := LoadArgs(append([]string{missingConfig(t)}, args...), nil); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLoadArgsUnknownDisplayIsSentinel(t *testing.T) {
	_, err := LoadArgs([]string{missingConfig(t), "-display", "grid"}, nil)
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestValidateRejectsUnknownAction(t *testing.T) {
	cfg, err := LoadArgs([]string{missingConfig(t), "-action", "rename"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(cfg); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestValidateRejectsEmptyElements(t *testing.T) {
	cfg, err := LoadArgs([]string{missingConfig(t)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.App.Options.Layout.Normal = nil
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for empty element list")
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	got := DefaultPath(map[string]string{"XDG_CONFIG_HOME": "/cfg"})
	want := filepath.Join("/cfg", "tmux-jump", "config.toml")
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDecodeFileLayersOverDefaults(t *testing.T) {
	f, err := DecodeFile([]byte(`
[display]
mode = "list"
space = false
prompt = "jump: "
list = ["filename", "label"]

[display.sticks.list]
current = "*"

[fuzzy]
cutoff = 50

[keys]
up = ["k"]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := f.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Layout.Mode != layout.ModeList {
		t.Fatalf("expected list mode, got %s", opts.Layout.Mode)
	}
	if opts.Layout.Space {
		t.Fatalf("expected space disabled")
	}
	if opts.PromptTitle != "jump: " {
		t.Fatalf("expected prompt override, got %q", opts.PromptTitle)
	}
	if got := opts.Layout.List; len(got) != 2 || got[0] != layout.ElementFilename || got[1] != layout.ElementLabel {
		t.Fatalf("unexpected list elements %v", got)
	}
	if opts.Layout.ListStick.Current != "*" {
		t.Fatalf("expected current stick override, got %q", opts.Layout.ListStick.Current)
	}
	if opts.Layout.ListStick.Alternate != "[alt]" {
		t.Fatalf("expected alternate stick default kept, got %q", opts.Layout.ListStick.Alternate)
	}
	if opts.Cutoff != 50 {
		t.Fatalf("expected cutoff 50, got %d", opts.Cutoff)
	}
	if len(opts.Keys.Up) != 1 || opts.Keys.Up[0] != "k" {
		t.Fatalf("expected up bound to k, got %v", opts.Keys.Up)
	}
	if len(opts.Keys.Down) == 0 || opts.Keys.Down[0] != "down" {
		t.Fatalf("expected default down keys, got %v", opts.Keys.Down)
	}
}

func TestDecodeFileRejectsUnknownKeys(t *testing.T) {
	if _, err := DecodeFile([]byte("[display]\ncolour = \"red\"\n")); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}
}

func TestFileOptionsRejectsBadValues(t *testing.T) {
	bad := []string{
		"[display]\nmode = \"grid\"\n",
		"[display]\nnormal = [\"stick\", \"icon\"]\n",
		"[fuzzy]\ncutoff = -1\n",
	}
	for _, src := range bad {
		f, err := DecodeFile([]byte(src))
		if err != nil {
			t.Fatalf("unexpected decode error for %q: %v", src, err)
		}
		if _, err := f.Options(); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}

func TestLoadArgsReadsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[display]\nmode = \"list\"\n[preview]\nlines = 12\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs([]string{"-config", path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Options.Layout.Mode != layout.ModeList {
		t.Fatalf("expected list mode from file, got %s", cfg.App.Options.Layout.Mode)
	}
	if cfg.App.PreviewLines != 12 {
		t.Fatalf("expected 12 preview lines, got %d", cfg.App.PreviewLines)
	}
	if cfg.App.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.App.ConfigPath)
	}
}

func TestWatchFileReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[display]\nmode = \"normal\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan selection.Options, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchFile(ctx, path, func(opts selection.Options, err error) {
			if err == nil {
				reloads <- opts
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		// Rewrite until the watcher has registered and picked up the change.
		if err := os.WriteFile(path, []byte("[display]\nmode = \"list\"\n"), 0o644); err != nil {
			t.Fatalf("rewrite config: %v", err)
		}
		select {
		case opts := <-reloads:
			if opts.Layout.Mode != layout.ModeList {
				continue
			}
			cancel()
			if err := <-done; err != nil {
				t.Fatalf("watch returned error: %v", err)
			}
			return
		case <-tick.C:
		case <-deadline:
			t.Fatalf("timed out waiting for reload")
		}
	}
}
