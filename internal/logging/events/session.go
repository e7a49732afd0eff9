package events

import "github.com/atomicstack/tmux-jump/internal/logging"

type SessionTracer struct{}

type SessionReason string

const (
	SessionReasonEscape    SessionReason = "escape"
	SessionReasonNoMatch   SessionReason = "no-match"
	SessionReasonStrayKey  SessionReason = "stray-key"
	SessionReasonConfirmed SessionReason = "confirmed"
	SessionReasonLeave     SessionReason = "leave"
)

var Session = SessionTracer{}

func (SessionTracer) Enter(action string, items int, current string) {
	logging.Trace("session.enter", map[string]interface{}{"action": action, "items": items, "current": current})
}

func (SessionTracer) Exit(restore bool, reason SessionReason) {
	logging.Trace("session.exit", map[string]interface{}{"restore": restore, "reason": string(reason)})
}

func (SessionTracer) Typeahead(input string, matches int) {
	logging.Trace("session.typeahead", map[string]interface{}{"input": input, "matches": matches})
}

func (SessionTracer) Fuzzy(input string, matches int) {
	logging.Trace("session.fuzzy", map[string]interface{}{"input": input, "matches": matches})
}

func (SessionTracer) Move(mode string, selected int) {
	logging.Trace("session.move", map[string]interface{}{"mode": mode, "selected": selected})
}

func (SessionTracer) Confirm(action, target string) {
	logging.Trace("session.confirm", map[string]interface{}{"action": action, "target": target})
}

func (SessionTracer) Cancel(mode string) {
	logging.Trace("session.cancel", map[string]interface{}{"mode": mode})
}

func (SessionTracer) HostError(action, target string, err error) {
	if err == nil {
		return
	}
	logging.Trace("session.host-error", map[string]interface{}{"action": action, "target": target, "error": err.Error()})
}
