package tmux

import (
	"os"
	"strings"
)

// CurrentClientID returns the name of the client that opened the popup so
// switch-client targets the visible client rather than the control-mode
// connection.
func CurrentClientID(socketPath string) string {
	client, err := sharedClient(socketPath)
	if err != nil {
		return ""
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	name = strings.TrimSpace(name)
	if !validClientID(name) {
		return ""
	}
	return name
}

// validClientID rejects status-line text that display-message returns when
// no client is attached.
func validClientID(id string) bool {
	return id != "" && !strings.ContainsAny(id, " \t[]")
}

func currentSessionName(client tmuxClient) string {
	if pane := strings.TrimSpace(os.Getenv("TMUX_PANE")); pane != "" {
		if name, err := client.DisplayMessage(pane, "#{session_name}"); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && c.Session != "" && !c.ControlMode {
				return c.Session
			}
		}
	}
	return ""
}
