package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-jump/internal/backend"
	"github.com/atomicstack/tmux-jump/internal/data/dispatcher"
	"github.com/atomicstack/tmux-jump/internal/selection"
	"github.com/atomicstack/tmux-jump/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config carries the program-level settings of a Model.
type Config struct {
	SocketPath   string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	Preview      bool
	PreviewLines int

	Watcher    *backend.Watcher
	Dispatcher *dispatcher.Dispatcher
	Reloads    <-chan OptionsMsg
}

// Model implements the Bubble Tea model for one selection session.
type Model struct {
	ctrl   *selection.Controller
	action selection.Action

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool
	socketPath  string

	backend        *backend.Watcher
	dispatcher     *dispatcher.Dispatcher
	backendLastErr string
	reloads        <-chan OptionsMsg

	previewEnabled bool
	previewLines   int
	preview        *previewData
	previewSeq     int

	infoMsg    string
	infoExpire time.Time

	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool
	lastInput         string

	quitting bool
	handlers map[reflect.Type]msgHandler
}

// NewModel starts a session on ctrl with action and wraps it in a model.
func NewModel(ctrl *selection.Controller, action selection.Action, cfg Config) *Model {
	m := &Model{
		ctrl:           ctrl,
		action:         action,
		showFooter:     cfg.ShowFooter,
		verbose:        cfg.Verbose,
		socketPath:     cfg.SocketPath,
		backend:        cfg.Watcher,
		dispatcher:     cfg.Dispatcher,
		reloads:        cfg.Reloads,
		previewEnabled: cfg.Preview,
		previewLines:   cfg.PreviewLines,
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = *styles.Cursor
	}
	if styles.Filter != nil {
		c.TextStyle = *styles.Filter
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	ctrl.Enter(action)
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if !m.ctrl.Active() {
		return tea.Quit
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.reloads != nil {
		cmds = append(cmds, waitForReload(m.reloads))
	}
	m.cursorFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if cmd := m.ensurePreview(false); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Controller exposes the selection controller driven by the model.
func (m *Model) Controller() *selection.Controller {
	return m.ctrl
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(OptionsMsg{}):        m.handleOptionsMsg,
		reflect.TypeOf(reloadDoneMsg{}):     m.handleReloadDoneMsg,
		reflect.TypeOf(previewLoadedMsg{}):  m.handlePreviewLoadedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty && m.cursorFocused {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// quit drops the preview and stops the program once the session is over.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.preview = nil
	return tea.Quit
}
