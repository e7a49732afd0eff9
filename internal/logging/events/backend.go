package events

import "github.com/atomicstack/tmux-jump/internal/logging"

type BackendTracer struct{}

type ConfigTracer struct{}

var (
	Backend = BackendTracer{}
	Config  = ConfigTracer{}
)

func (BackendTracer) Snapshot(panes int, err error) {
	payload := map[string]interface{}{"panes": panes}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("backend.snapshot", payload)
}

func (BackendTracer) Membership(added, removed []string) {
	logging.Trace("backend.membership", map[string]interface{}{"added": added, "removed": removed})
}

func (ConfigTracer) Reload(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("config.reload", payload)
}
