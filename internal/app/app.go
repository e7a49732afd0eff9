package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-jump/internal/backend"
	"github.com/atomicstack/tmux-jump/internal/buffer"
	"github.com/atomicstack/tmux-jump/internal/data/dispatcher"
	"github.com/atomicstack/tmux-jump/internal/host"
	"github.com/atomicstack/tmux-jump/internal/logging"
	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/selection"
	"github.com/atomicstack/tmux-jump/internal/state"
	"github.com/atomicstack/tmux-jump/internal/tmux"
	"github.com/atomicstack/tmux-jump/internal/ui"
)

// Confirm actions selectable with -action.
const (
	ActionOpen  = "open"
	ActionClose = "close"
	ActionPrint = "print"
)

// Config describes user-provided application options.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Action       string
	Options      selection.Options
	PaneFilter   string
	PollInterval time.Duration
	Preview      bool
	PreviewLines int
	ConfigPath   string

	// Reloads delivers options from a watched config file.
	Reloads <-chan ui.OptionsMsg `json:"-"`
}

var (
	fetchPanesFn      = tmux.FetchPanes
	currentClientIDFn = tmux.CurrentClientID
	output            io.Writer = os.Stdout
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("resolve socket path: %w", err)
	}
	defer func() {
		if err := tmux.Shutdown(); err != nil {
			logging.Error(fmt.Errorf("close tmux client: %w", err))
		}
	}()

	store := state.NewBufferStore()
	disp := dispatcher.New(store)
	snapshot, err := fetchPanesFn(socketPath, cfg.PaneFilter)
	if err != nil {
		return fmt.Errorf("list panes: %w", err)
	}
	disp.Handle(backend.Event{Snapshot: snapshot})

	h := host.NewTmux(socketPath, currentClientIDFn(socketPath), store)
	var printed string
	action, err := buildAction(cfg.Action, &printed)
	if err != nil {
		return err
	}
	ctrl := selection.New(h, cfg.Options)
	h.OnSessionEnd(func(restore bool) {
		selected := ""
		if !restore {
			if id, ok := ctrl.LastSelected(); ok {
				selected = string(id)
			}
		}
		events.App.Exit(restore, selected)
	})

	watcher := backend.NewWatcher(socketPath, cfg.PaneFilter, cfg.PollInterval)
	defer watcher.Stop()

	model := ui.NewModel(ctrl, action, ui.Config{
		SocketPath:   socketPath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		ShowFooter:   cfg.ShowFooter,
		Verbose:      cfg.Verbose,
		Preview:      cfg.Preview,
		PreviewLines: cfg.PreviewLines,
		Watcher:      watcher,
		Dispatcher:   disp,
		Reloads:      cfg.Reloads,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		return err
	}
	if printed != "" {
		fmt.Fprintln(output, printed)
	}
	return nil
}

// buildAction maps an -action value to a controller action. print records
// the chosen pane's path in dst and ends the session.
func buildAction(name string, dst *string) (selection.Action, error) {
	switch name {
	case "", ActionOpen:
		return selection.Open(), nil
	case ActionClose:
		return selection.Close(), nil
	case ActionPrint:
		return selection.Custom(func(item buffer.Item, leave selection.LeaveFunc) {
			events.Pane.Print(string(item.ID), item.Name)
			*dst = item.Name
			leave()
		}), nil
	default:
		return selection.Action{}, fmt.Errorf("unknown action %q", name)
	}
}
