package selection

import "github.com/atomicstack/tmux-jump/internal/buffer"

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionOpen ActionKind = iota
	ActionClose
	ActionCustom
)

func (k ActionKind) String() string {
	switch k {
	case ActionClose:
		return "close"
	case ActionCustom:
		return "custom"
	default:
		return "open"
	}
}

// LeaveFunc ends the session that handed it out. Only the first call has an
// effect.
type LeaveFunc func()

// CustomFunc receives the confirmed item. The session stays open until leave
// is called.
type CustomFunc func(item buffer.Item, leave LeaveFunc)

// Action is what a confirm does with the chosen item.
type Action struct {
	Kind   ActionKind
	custom CustomFunc
}

// Open activates the confirmed item through the host.
func Open() Action { return Action{Kind: ActionOpen} }

// Close deletes the confirmed item through the host.
func Close() Action { return Action{Kind: ActionClose} }

// Custom hands the confirmed item to fn.
func Custom(fn CustomFunc) Action { return Action{Kind: ActionCustom, custom: fn} }

func (a Action) String() string { return a.Kind.String() }
