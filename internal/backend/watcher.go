package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-jump/internal/logging/events"
	"github.com/atomicstack/tmux-jump/internal/tmux"
)

// Event carries a pane snapshot or the error from a poll.
type Event struct {
	Snapshot tmux.PaneSnapshot
	Err      error
}

type fetchFunc func(ctx context.Context) (tmux.PaneSnapshot, error)

// Watcher polls tmux for panes at a fixed interval and publishes events.
type Watcher struct {
	interval time.Duration
	fetch    fetchFunc

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts polling the server at socketPath every interval. filter
// is passed through to list-panes.
func NewWatcher(socketPath, filter string, interval time.Duration) *Watcher {
	throttle := newThrottle(250 * time.Millisecond)
	return newWatcher(interval, func(ctx context.Context) (tmux.PaneSnapshot, error) {
		if !throttle.wait(ctx) {
			return tmux.PaneSnapshot{}, ctx.Err()
		}
		return tmux.FetchPanes(socketPath, filter)
	})
}

func newWatcher(interval time.Duration, fetch fetchFunc) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		fetch:    fetch,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once the watcher
// has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	emit := func() bool {
		snap, err := w.fetch(w.ctx)
		events.Backend.Snapshot(len(snap.Panes), err)
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Snapshot: snap, Err: err}:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
