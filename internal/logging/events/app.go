package events

import "github.com/atomicstack/tmux-jump/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(restore bool, selected string) {
	logging.Trace("app.exit", map[string]interface{}{"restore": restore, "selected": selected})
}
