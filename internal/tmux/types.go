package tmux

import (
	"os/exec"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Pane is one row of list-panes output.
type Pane struct {
	ID           string
	Target       string
	Session      string
	WindowIndex  int
	WindowName   string
	Index        int
	Path         string
	Command      string
	Title        string
	Active       bool
	WindowActive bool
	Current      bool
	Last         bool
	Activity     bool
}

// PaneSnapshot is every pane on the server plus the client's position.
type PaneSnapshot struct {
	Panes          []Pane
	CurrentID      string
	LastID         string
	CurrentSession string
}

type tmuxClient interface {
	ListPanesFormat(target, filter, format string) ([]string, error)
	ListClients() ([]*gotmux.Client, error)
	DisplayMessage(target, format string) (string, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	SelectWindow(target string) error
	SelectPane(target string) error
	Command(parts ...string) (string, error)
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}

	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

// sharedClient returns the control-mode connection for socketPath, opening
// it on first use.
func sharedClient(socketPath string) (tmuxClient, error) {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket == socketPath {
		return cachedClient, nil
	}
	if cachedClient != nil {
		_ = cachedClient.Close()
		cachedClient = nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	cachedClient = client
	cachedSocket = socketPath
	return client, nil
}

// Shutdown closes the shared control-mode connection.
func Shutdown() error {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient == nil {
		return nil
	}
	err := cachedClient.Close()
	cachedClient = nil
	cachedSocket = ""
	return err
}
