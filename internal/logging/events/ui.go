package events

import "github.com/atomicstack/tmux-jump/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

var (
	UI     = UITracer{}
	Action = ActionTracer{}
)

func (UITracer) Key(key, mode string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "mode": mode})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Preview(target string, lines int, err error) {
	payload := map[string]interface{}{"target": target, "lines": lines}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("ui.preview", payload)
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}
