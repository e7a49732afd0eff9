package events

import "github.com/atomicstack/tmux-jump/internal/logging"

type PaneTracer struct{}

var Pane = PaneTracer{}

func (PaneTracer) Switch(target string) {
	logging.Trace("pane.switch", map[string]interface{}{"target": target})
}

func (PaneTracer) Kill(target string) {
	logging.Trace("pane.kill", map[string]interface{}{"target": target})
}

func (PaneTracer) Print(target, path string) {
	logging.Trace("pane.print", map[string]interface{}{"target": target, "path": path})
}
