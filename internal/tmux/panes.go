package tmux

import (
	"fmt"
	"strconv"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

const paneFieldCount = 12

var paneListFormat = strings.Join([]string{
	"#{pane_id}",
	"#{session_name}:#{window_index}.#{pane_index}",
	"#{session_name}",
	"#{window_index}",
	"#{window_name}",
	"#{pane_index}",
	"#{pane_current_path}",
	"#{pane_current_command}",
	"#{pane_title}",
	"#{?pane_active,1,0}",
	"#{?window_active,1,0}",
	"#{?pane_last,1,0}#{?window_activity_flag,1,#{?window_bell_flag,1,0}}",
}, "\t")

// FetchPanes lists every pane on the server, marking the active pane of the
// attached client's window as current and that window's last pane as last.
// filter is a tmux format filter as accepted by list-panes -f.
func FetchPanes(socketPath, filter string) (PaneSnapshot, error) {
	client, err := sharedClient(socketPath)
	if err != nil {
		return PaneSnapshot{}, err
	}
	lines, err := client.ListPanesFormat("", strings.TrimSpace(filter), paneListFormat)
	if err != nil {
		return PaneSnapshot{}, fmt.Errorf("list-panes: %w", err)
	}
	snapshot := PaneSnapshot{CurrentSession: currentSessionName(client)}
	for _, line := range lines {
		pane, ok := parsePaneLine(line)
		if !ok {
			continue
		}
		snapshot.Panes = append(snapshot.Panes, pane)
	}
	markCurrent(&snapshot)
	return snapshot, nil
}

func parsePaneLine(line string) (Pane, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Pane{}, false
	}
	parts := strings.SplitN(line, "\t", paneFieldCount)
	if len(parts) < paneFieldCount {
		return Pane{}, false
	}
	windowIndex, _ := strconv.Atoi(strings.TrimSpace(parts[3]))
	paneIndex, _ := strconv.Atoi(strings.TrimSpace(parts[5]))
	flags := strings.TrimSpace(parts[11])
	return Pane{
		ID:           strings.TrimSpace(parts[0]),
		Target:       strings.TrimSpace(parts[1]),
		Session:      strings.TrimSpace(parts[2]),
		WindowIndex:  windowIndex,
		WindowName:   strings.TrimSpace(parts[4]),
		Index:        paneIndex,
		Path:         strings.TrimSpace(parts[6]),
		Command:      strings.TrimSpace(parts[7]),
		Title:        strings.TrimSpace(parts[8]),
		Active:       strings.TrimSpace(parts[9]) == "1",
		WindowActive: strings.TrimSpace(parts[10]) == "1",
		Last:         len(flags) > 0 && flags[0] == '1',
		Activity:     len(flags) > 1 && flags[1] == '1',
	}, true
}

// markCurrent flags the active pane of the current session's active window.
// Without a known session the first fully active pane wins.
func markCurrent(snapshot *PaneSnapshot) {
	currentIdx := -1
	for i, p := range snapshot.Panes {
		if !p.Active || !p.WindowActive {
			continue
		}
		if snapshot.CurrentSession == "" || p.Session == snapshot.CurrentSession {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		for i := range snapshot.Panes {
			snapshot.Panes[i].Last = false
		}
		return
	}
	current := snapshot.Panes[currentIdx]
	snapshot.Panes[currentIdx].Current = true
	snapshot.CurrentID = current.ID
	if snapshot.CurrentSession == "" {
		snapshot.CurrentSession = current.Session
	}
	for i, p := range snapshot.Panes {
		sameWindow := p.Session == current.Session && p.WindowIndex == current.WindowIndex
		if !sameWindow {
			snapshot.Panes[i].Last = false
			continue
		}
		if p.Last && snapshot.LastID == "" {
			snapshot.LastID = p.ID
		}
	}
}

// SwitchPane moves clientID to the session and window holding target, a
// session:window.pane string, and selects the pane.
func SwitchPane(socketPath, clientID, target string) error {
	session, rest, ok := strings.Cut(target, ":")
	if !ok || session == "" {
		return fmt.Errorf("invalid pane target %q", target)
	}
	windowIdx, _, ok := strings.Cut(rest, ".")
	if !ok || windowIdx == "" {
		return fmt.Errorf("invalid pane target %q", target)
	}
	client, err := sharedClient(socketPath)
	if err != nil {
		return err
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: session}
	if validClientID(strings.TrimSpace(clientID)) {
		opts.TargetClient = strings.TrimSpace(clientID)
	}
	if err := client.SwitchClient(opts); err != nil {
		return fmt.Errorf("switch-client %s: %w", session, err)
	}
	if err := client.SelectWindow(session + ":" + windowIdx); err != nil {
		return fmt.Errorf("select-window %s:%s: %w", session, windowIdx, err)
	}
	if err := client.SelectPane(target); err != nil {
		return fmt.Errorf("select-pane %s: %w", target, err)
	}
	return nil
}

// KillPane kills the pane with the given id.
func KillPane(socketPath, paneID string) error {
	id := strings.TrimSpace(paneID)
	if id == "" {
		return fmt.Errorf("pane id required")
	}
	client, err := sharedClient(socketPath)
	if err != nil {
		return err
	}
	if _, err := client.Command("kill-pane", "-t", id); err != nil {
		return fmt.Errorf("kill-pane %s: %w", id, err)
	}
	return nil
}
