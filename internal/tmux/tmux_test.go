package tmux

import (
	"errors"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	prevClient := cachedClient
	prevSocket := cachedSocket
	cachedClient = nil
	cachedSocket = ""
	newTmux = fn
	t.Cleanup(func() {
		newTmux = prev
		cachedClient = prevClient
		cachedSocket = prevSocket
	})
}

type stubCommander struct {
	output []byte
	err    error
}

func (s *stubCommander) Run() error { return s.err }

func (s *stubCommander) Output() ([]byte, error) { return s.output, s.err }

func withStubCommander(t *testing.T, fn func(string, ...string) commander) {
	t.Helper()
	prev := runExecCommand
	runExecCommand = fn
	t.Cleanup(func() { runExecCommand = prev })
}

type fakeClient struct {
	clients    []*gotmux.Client
	clientsErr error

	switchErr      error
	lastSwitchOpts *gotmux.SwitchClientOptions

	selectWindowCalls []string
	selectWindowErr   error
	selectPaneCalls   []string
	selectPaneErr     error

	displayMessageFn     func(target, format string) (string, error)
	listPanesFormatLines []string
	listPanesFormatErr   error
	lastPaneFilter       string

	commandCalls [][]string
	commandErr   error

	closeCalls int
}

func (f *fakeClient) ListPanesFormat(target, filter, format string) ([]string, error) {
	f.lastPaneFilter = filter
	if f.listPanesFormatErr != nil {
		return nil, f.listPanesFormatErr
	}
	return f.listPanesFormatLines, nil
}

func (f *fakeClient) ListClients() ([]*gotmux.Client, error) {
	return f.clients, f.clientsErr
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if f.displayMessageFn != nil {
		return f.displayMessageFn(target, format)
	}
	return "", nil
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.lastSwitchOpts = opts
	return f.switchErr
}

func (f *fakeClient) SelectWindow(target string) error {
	f.selectWindowCalls = append(f.selectWindowCalls, target)
	return f.selectWindowErr
}

func (f *fakeClient) SelectPane(target string) error {
	f.selectPaneCalls = append(f.selectPaneCalls, target)
	return f.selectPaneErr
}

func (f *fakeClient) Command(parts ...string) (string, error) {
	cp := make([]string, len(parts))
	copy(cp, parts)
	f.commandCalls = append(f.commandCalls, cp)
	return "", f.commandErr
}

func (f *fakeClient) Close() error {
	f.closeCalls++
	return nil
}

func containsArg(args []string, needle string) bool {
	for _, arg := range args {
		if arg == needle {
			return true
		}
	}
	return false
}

func paneLine(fields ...string) string {
	return strings.Join(fields, "\t")
}

func TestBaseArgs(t *testing.T) {
	if got := baseArgs(""); len(got) != 0 {
		t.Fatalf("expected no args, got %v", got)
	}
	got := baseArgs("/tmp/sock")
	if len(got) != 2 || got[0] != "-S" || got[1] != "/tmp/sock" {
		t.Fatalf("unexpected args %v", got)
	}
}

func TestResolveSocketPath(t *testing.T) {
	if got, _ := ResolveSocketPath("/flag"); got != "/flag" {
		t.Fatalf("expected flag value, got %q", got)
	}

	t.Setenv(SocketEnv, "/env/sock")
	if got, _ := ResolveSocketPath(""); got != "/env/sock" {
		t.Fatalf("expected env socket, got %q", got)
	}

	t.Setenv(SocketEnv, "")
	t.Setenv("TMUX", "/tmux/sock,123,0")
	if got, _ := ResolveSocketPath(""); got != "/tmux/sock" {
		t.Fatalf("expected $TMUX socket, got %q", got)
	}

	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/var/tmp")
	u, err := user.Current()
	if err != nil {
		t.Skipf("no current user: %v", err)
	}
	want := filepath.Join("/var/tmp", "tmux-"+u.Uid, "default")
	if got, _ := ResolveSocketPath(""); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestParsePaneLine(t *testing.T) {
	line := paneLine("%4", "dev:1.2", "dev", "1", "editor", "2", "/home/me/src", "nvim", "title", "1", "0", "01")
	pane, ok := parsePaneLine(line)
	if !ok {
		t.Fatal("expected line to parse")
	}
	if pane.ID != "%4" || pane.Target != "dev:1.2" || pane.Session != "dev" {
		t.Fatalf("unexpected identity %#v", pane)
	}
	if pane.WindowIndex != 1 || pane.Index != 2 || pane.WindowName != "editor" {
		t.Fatalf("unexpected position %#v", pane)
	}
	if pane.Path != "/home/me/src" || pane.Command != "nvim" {
		t.Fatalf("unexpected path/command %#v", pane)
	}
	if !pane.Active || pane.WindowActive || pane.Last || !pane.Activity {
		t.Fatalf("unexpected flags %#v", pane)
	}

	if _, ok := parsePaneLine("%1\tdev:0.0"); ok {
		t.Fatal("expected short line to be rejected")
	}
	if _, ok := parsePaneLine("   "); ok {
		t.Fatal("expected blank line to be rejected")
	}
}

func TestFetchPanesMarksCurrentAndLast(t *testing.T) {
	fake := &fakeClient{
		clients: []*gotmux.Client{
			{Name: "ctl", Session: "other", ControlMode: true},
			{Name: "/dev/pts/1", Session: "dev"},
		},
		listPanesFormatLines: []string{
			paneLine("%0", "other:0.0", "other", "0", "sh", "0", "/srv", "sh", "", "1", "1", "00"),
			paneLine("%1", "dev:0.0", "dev", "0", "main", "0", "/home/me/a", "zsh", "", "0", "1", "10"),
			paneLine("%2", "dev:0.1", "dev", "0", "main", "1", "/home/me/b", "vim", "", "1", "1", "00"),
			paneLine("%3", "dev:1.0", "dev", "1", "logs", "0", "/var/log", "tail", "", "1", "0", "11"),
			"",
		},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	t.Setenv("TMUX_PANE", "")

	snap, err := FetchPanes("", " #{pane_dead} ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastPaneFilter != "#{pane_dead}" {
		t.Fatalf("expected trimmed filter, got %q", fake.lastPaneFilter)
	}
	if len(snap.Panes) != 4 {
		t.Fatalf("expected 4 panes, got %d", len(snap.Panes))
	}
	if snap.CurrentSession != "dev" {
		t.Fatalf("expected current session dev, got %q", snap.CurrentSession)
	}
	if snap.CurrentID != "%2" || !snap.Panes[2].Current {
		t.Fatalf("expected %%2 current, got %q", snap.CurrentID)
	}
	if snap.LastID != "%1" || !snap.Panes[1].Last {
		t.Fatalf("expected %%1 last, got %q", snap.LastID)
	}
	if snap.Panes[3].Last {
		t.Fatal("last flag outside the current window must be cleared")
	}
	if !snap.Panes[3].Activity {
		t.Fatal("expected activity flag on %3")
	}
}

func TestFetchPanesUsesTmuxPaneSession(t *testing.T) {
	fake := &fakeClient{
		displayMessageFn: func(target, format string) (string, error) {
			if target == "%9" && format == "#{session_name}" {
				return "work\n", nil
			}
			return "", errors.New("unexpected")
		},
		listPanesFormatLines: []string{
			paneLine("%0", "dev:0.0", "dev", "0", "main", "0", "/a", "sh", "", "1", "1", "00"),
			paneLine("%9", "work:0.0", "work", "0", "main", "0", "/b", "sh", "", "1", "1", "00"),
		},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	t.Setenv("TMUX_PANE", "%9")

	snap, err := FetchPanes("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.CurrentID != "%9" {
		t.Fatalf("expected %%9 current, got %q", snap.CurrentID)
	}
}

func TestFetchPanesPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeClient{listPanesFormatErr: boom}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if _, err := FetchPanes("", ""); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	withStubTmux(t, func(string) (tmuxClient, error) { return nil, boom })
	if _, err := FetchPanes("", ""); !errors.Is(err, boom) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestSharedClientIsReusedPerSocket(t *testing.T) {
	var opened []string
	clients := map[string]*fakeClient{}
	withStubTmux(t, func(socket string) (tmuxClient, error) {
		opened = append(opened, socket)
		c := &fakeClient{}
		clients[socket] = c
		return c, nil
	})
	for i := 0; i < 3; i++ {
		if _, err := sharedClient("a"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := sharedClient("b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opened) != 2 {
		t.Fatalf("expected 2 connections, got %v", opened)
	}
	if clients["a"].closeCalls != 1 {
		t.Fatalf("expected previous client to be closed, got %d", clients["a"].closeCalls)
	}
	if err := Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clients["b"].closeCalls != 1 {
		t.Fatalf("expected shutdown to close client, got %d", clients["b"].closeCalls)
	}
}

func TestSwitchPaneValidatesTarget(t *testing.T) {
	for _, target := range []string{"dev", "dev:0", ":0.1", "dev:.1"} {
		if err := SwitchPane("", "", target); err == nil || !strings.Contains(err.Error(), "invalid pane target") {
			t.Fatalf("expected validation error for %q, got %v", target, err)
		}
	}
}

func TestSwitchPaneRunsCommands(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if err := SwitchPane("sock", "/dev/ttys009", "dev:0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastSwitchOpts == nil ||
		fake.lastSwitchOpts.TargetSession != "dev" ||
		fake.lastSwitchOpts.TargetClient != "/dev/ttys009" {
		t.Fatalf("unexpected switch opts %#v", fake.lastSwitchOpts)
	}
	if len(fake.selectWindowCalls) != 1 || fake.selectWindowCalls[0] != "dev:0" {
		t.Fatalf("unexpected select window calls %#v", fake.selectWindowCalls)
	}
	if len(fake.selectPaneCalls) != 1 || fake.selectPaneCalls[0] != "dev:0.1" {
		t.Fatalf("unexpected select pane calls %#v", fake.selectPaneCalls)
	}
}

func TestSwitchPaneSkipsInvalidClientID(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if err := SwitchPane("sock", "[shells] O:zsh, pane 0", "dev:0.1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastSwitchOpts == nil || fake.lastSwitchOpts.TargetClient != "" {
		t.Fatalf("expected empty TargetClient, got %#v", fake.lastSwitchOpts)
	}
}

func TestSwitchPaneStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeClient{selectWindowErr: boom}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if err := SwitchPane("", "", "dev:0.1"); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(fake.selectPaneCalls) != 0 {
		t.Fatalf("expected no select-pane after failure, got %v", fake.selectPaneCalls)
	}
}

func TestKillPane(t *testing.T) {
	if err := KillPane("", " "); err == nil {
		t.Fatal("expected error for blank id")
	}
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if err := KillPane("", "%7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.commandCalls) != 1 || strings.Join(fake.commandCalls[0], " ") != "kill-pane -t %7" {
		t.Fatalf("unexpected command calls %#v", fake.commandCalls)
	}

	fake.commandErr = errors.New("can't find pane")
	if err := KillPane("", "%7"); err == nil || !strings.Contains(err.Error(), "kill-pane %7") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestCurrentClientID(t *testing.T) {
	fake := &fakeClient{
		displayMessageFn: func(target, format string) (string, error) {
			return "/dev/pts/3\n", nil
		},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if got := CurrentClientID(""); got != "/dev/pts/3" {
		t.Fatalf("expected /dev/pts/3, got %q", got)
	}

	fake.displayMessageFn = func(target, format string) (string, error) {
		return "[shells] O:zsh, pane 0", nil
	}
	if got := CurrentClientID(""); got != "" {
		t.Fatalf("expected status-line text to be rejected, got %q", got)
	}
}
