package selection

import "github.com/atomicstack/tmux-jump/internal/buffer"

// Host supplies the items a session selects from and carries out the
// built-in actions. Snapshot and the id lookups must not have side effects.
type Host interface {
	Snapshot() []buffer.Item
	CurrentID() (buffer.ID, bool)
	AlternateID() (buffer.ID, bool)
	Activate(id buffer.ID) error
	Delete(id buffer.ID) error
}

// SessionListener is implemented by hosts that hold resources for the
// duration of a session, such as a preview. restore is true when the session
// was cancelled and nothing was acted on.
type SessionListener interface {
	SessionEnded(restore bool)
}
