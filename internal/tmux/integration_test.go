package tmux

import (
	"slices"
	"testing"
	"time"

	"github.com/atomicstack/tmux-jump/internal/testutil"
)

func TestFetchPanesIntegration(t *testing.T) {
	server := testutil.StartServer(t)
	socket := server.Socket
	t.Cleanup(func() { _ = Shutdown() })
	t.Setenv("TMUX_TMPDIR", server.Dir)
	t.Setenv("TMUX_PANE", "")

	split := server.SplitPane("/tmp")

	var snap PaneSnapshot
	deadline := time.Now().Add(3 * time.Second)
	for {
		var err error
		snap, err = FetchPanes(socket, "")
		if err != nil {
			t.Fatalf("FetchPanes failed: %v", err)
		}
		if len(snap.Panes) >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if len(snap.Panes) < 2 {
		t.Fatalf("expected at least 2 panes, got %#v", snap.Panes)
	}
	found := false
	for _, p := range snap.Panes {
		t.Logf("pane: id=%q target=%q path=%q current=%v last=%v", p.ID, p.Target, p.Path, p.Current, p.Last)
		if p.ID == "" || p.Target == "" {
			t.Fatalf("expected id and target, got %#v", p)
		}
		found = found || p.ID == split
	}
	if !found {
		t.Fatalf("expected split pane %s in snapshot", split)
	}

	victim := snap.Panes[len(snap.Panes)-1].ID
	if err := KillPane(socket, victim); err != nil {
		t.Fatalf("KillPane failed: %v", err)
	}
	after, err := FetchPanes(socket, "")
	if err != nil {
		t.Fatalf("FetchPanes after kill failed: %v", err)
	}
	for _, p := range after.Panes {
		if p.ID == victim {
			t.Fatalf("expected pane %s to be gone", victim)
		}
	}
	if slices.Contains(server.PaneIDs(), victim) {
		t.Fatalf("tmux still lists pane %s", victim)
	}
}
