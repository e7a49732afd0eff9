// Package testutil runs throwaway tmux servers for integration tests.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// SessionName is the session every test server starts with.
const SessionName = "tmux-jump-test"

// Server is a tmux server bound to a private socket. It is killed when the
// test finishes, after its verbose logs are checked for a crash.
type Server struct {
	Socket string
	Dir    string
	t      *testing.T
}

// RequireTmux skips the calling test when tmux is not present on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// StartServer boots a server with one detached session.
func StartServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	dir, err := os.MkdirTemp("/tmp", "tmux-jump-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	s := &Server{Socket: filepath.Join(dir, "tmux-test.sock"), Dir: dir, t: t}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	if _, err := s.run("-f", "/dev/null", "-vv", "new-session", "-d", "-s", SessionName, "sleep", "600"); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(s.stop)
	return s
}

// SplitPane adds a detached pane running in dir and returns its pane id.
func (s *Server) SplitPane(dir string) string {
	s.t.Helper()
	out, err := s.run("split-window", "-d", "-P", "-F", "#{pane_id}", "-t", SessionName+":0", "-c", dir)
	if err != nil {
		s.t.Skipf("skipping: unable to split window (%v)", err)
	}
	return strings.TrimSpace(out)
}

// PaneIDs lists every pane on the server.
func (s *Server) PaneIDs() []string {
	s.t.Helper()
	out, err := s.run("list-panes", "-a", "-F", "#{pane_id}")
	if err != nil {
		s.t.Fatalf("list-panes failed: %v", err)
	}
	return strings.Fields(out)
}

func (s *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := killServer(ctx, s.Socket); err != nil {
		s.t.Logf("control-mode kill failed for socket %s: %v; falling back to tmux kill-server", s.Socket, err)
		_, _ = s.run("kill-server")
	}
	s.assertNoCrash()
}

// assertNoCrash scans the -vv server logs, which tmux writes to its
// working directory.
func (s *Server) assertNoCrash() {
	files, err := filepath.Glob(filepath.Join(s.Dir, "tmux-server-*.log"))
	if err != nil || len(files) == 0 {
		return
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			s.t.Errorf("failed to read tmux server log %s: %v", path, err)
			continue
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			s.t.Errorf("tmux server reported unexpected exit; see %s", path)
		}
	}
}

func (s *Server) run(args ...string) (string, error) {
	cmd := exec.Command("tmux", append([]string{"-S", s.Socket}, args...)...)
	cmd.Dir = s.Dir
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") {
			continue
		}
		env = append(env, entry)
	}
	cmd.Env = append(env, "TMUX=", "TMUX_TMPDIR="+s.Dir)
	out, err := cmd.Output()
	return string(out), err
}

func killServer(ctx context.Context, socket string) error {
	if strings.TrimSpace(socket) == "" {
		return errors.New("empty tmux socket path")
	}
	client, err := gotmux.NewTmuxWithOptions(socket, gotmux.WithContext(ctx))
	if err != nil {
		return err
	}
	defer client.Close()
	return client.KillServer()
}
