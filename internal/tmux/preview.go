package tmux

import (
	"fmt"
	"strings"
)

// DefaultPreviewLines is the scrollback captured for a pane preview.
const DefaultPreviewLines = 40

// PanePreview captures the last lines of a pane, escape sequences included.
// lines <= 0 means DefaultPreviewLines.
func PanePreview(socketPath, pane string, lines int) ([]string, error) {
	target := strings.TrimSpace(pane)
	if target == "" {
		return nil, fmt.Errorf("pane target required")
	}
	if lines <= 0 {
		lines = DefaultPreviewLines
	}
	args := append(baseArgs(socketPath), "capture-pane", "-ep", "-S", fmt.Sprintf("-%d", lines), "-t", target)
	output, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return nil, fmt.Errorf("capture-pane %s: %w", target, err)
	}
	captured := splitPreviewLines(string(output))
	if len(captured) == 0 {
		return []string{"(pane is empty)"}, nil
	}
	if len(captured) > lines {
		captured = captured[len(captured)-lines:]
	}
	return captured, nil
}

// splitPreviewLines normalises line endings and drops trailing blank lines
// while keeping blank lines inside the capture.
func splitPreviewLines(text string) []string {
	normalised := strings.ReplaceAll(text, "\r\n", "\n")
	normalised = strings.ReplaceAll(normalised, "\r", "\n")
	normalised = strings.TrimRight(normalised, "\n \t")
	if normalised == "" {
		return nil
	}
	raw := strings.Split(normalised, "\n")
	out := make([]string, len(raw))
	for i, line := range raw {
		out[i] = strings.TrimRight(line, " \t")
	}
	return out
}
