package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/atomicstack/tmux-jump/internal/layout"
	"github.com/atomicstack/tmux-jump/internal/selection"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

const (
	appDirName     = "tmux-jump"
	configFileName = "config.toml"
)

// File is the on-disk TOML configuration. Every field is optional; missing
// values fall back to the stock options.
type File struct {
	Display DisplayFile    `toml:"display"`
	Fuzzy   FuzzyFile      `toml:"fuzzy"`
	Preview PreviewFile    `toml:"preview"`
	Keys    selection.Keys `toml:"keys"`
}

type DisplayFile struct {
	Mode   string     `toml:"mode"`
	Space  *bool      `toml:"space"`
	Prompt *string    `toml:"prompt"`
	Normal []string   `toml:"normal"`
	List   []string   `toml:"list"`
	Sticks SticksFile `toml:"sticks"`
}

type SticksFile struct {
	Normal StickFile `toml:"normal"`
	List   StickFile `toml:"list"`
}

type StickFile struct {
	Current   *string `toml:"current"`
	Alternate *string `toml:"alternate"`
	Modified  *string `toml:"modified"`
	Inactive  *string `toml:"inactive"`
}

type FuzzyFile struct {
	Cutoff int `toml:"cutoff"`
}

type PreviewFile struct {
	Lines int `toml:"lines"`
}

// DefaultPath returns $XDG_CONFIG_HOME/tmux-jump/config.toml, falling back
// to the platform config directory and finally the working directory.
func DefaultPath(env map[string]string) string {
	if dir := env["XDG_CONFIG_HOME"]; dir != "" {
		return filepath.Join(dir, appDirName, configFileName)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, appDirName, configFileName)
}

// LoadFile reads and decodes path. A missing file is not an error.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return DecodeFile(data)
}

// DecodeFile parses TOML, rejecting keys it does not know.
func DecodeFile(data []byte) (File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode config: %w", err)
	}
	return f, nil
}

// Options layers the file over selection.DefaultOptions.
func (f File) Options() (selection.Options, error) {
	opts := selection.DefaultOptions()
	d := f.Display

	if d.Mode != "" {
		mode, err := layout.ParseMode(d.Mode)
		if err != nil {
			return opts, fmt.Errorf("%w: %q", ErrUnknownMode, d.Mode)
		}
		opts.Layout.Mode = mode
	}
	if d.Normal != nil {
		elems, err := layout.ParseElements(d.Normal)
		if err != nil {
			return opts, fmt.Errorf("display.normal: %w", err)
		}
		opts.Layout.Normal = elems
	}
	if d.List != nil {
		elems, err := layout.ParseElements(d.List)
		if err != nil {
			return opts, fmt.Errorf("display.list: %w", err)
		}
		opts.Layout.List = elems
	}
	if d.Space != nil {
		opts.Layout.Space = *d.Space
	}
	if d.Prompt != nil {
		opts.PromptTitle = *d.Prompt
	}
	opts.Layout.NormalStick = d.Sticks.Normal.apply(opts.Layout.NormalStick)
	opts.Layout.ListStick = d.Sticks.List.apply(opts.Layout.ListStick)

	if f.Fuzzy.Cutoff < 0 {
		return opts, fmt.Errorf("fuzzy.cutoff must be >= 0 (got %d)", f.Fuzzy.Cutoff)
	}
	if f.Fuzzy.Cutoff > 0 {
		opts.Cutoff = f.Fuzzy.Cutoff
	}
	opts.Keys = f.Keys.Merge(selection.DefaultKeys())
	return opts, nil
}

// PreviewLines returns the configured capture height.
func (f File) PreviewLines() int {
	if f.Preview.Lines > 0 {
		return f.Preview.Lines
	}
	return tmux.DefaultPreviewLines
}

func (s StickFile) apply(base layout.Sticks) layout.Sticks {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.Current, s.Current)
	set(&base.Alternate, s.Alternate)
	set(&base.Modified, s.Modified)
	set(&base.Inactive, s.Inactive)
	return base
}
