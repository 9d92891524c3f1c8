// Package backend watches tracked surfaces for closes that were never
// reported over the bridge, such as a pane killed before its pop-out
// process connected.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/state"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSurfaceGone Kind = iota
)

// Event reports a tracked surface that no longer resolves.
type Event struct {
	Kind    Kind
	Role    state.WindowRole
	Surface string
}

// Watcher polls the store's tracked surfaces at a fixed interval and
// publishes an event the first time one of them is gone.
type Watcher struct {
	store    *state.Store
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	// reported is owned by the poller goroutine.
	reported map[string]bool
}

// NewWatcher creates a watcher that checks the store every interval.
func NewWatcher(store *state.Store, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		store:    store,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		reported: make(map[string]bool),
	}

	w.startSurfacePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current check; use
// Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startSurfacePoller() {
	// Upgrading a tmux handle shells out, so bound the query rate.
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) []Event {
		throttle.wait()
		return w.goneSurfaces()
	})
}

func (w *Watcher) goneSurfaces() []Event {
	snap := w.store.Snapshot()
	var gone []Event
	for role, h := range snap.UI.Windows {
		if _, ok := h.Upgrade(); ok || w.reported[h.ID()] {
			continue
		}
		w.reported[h.ID()] = true
		gone = append(gone, Event{Kind: KindSurfaceGone, Role: role, Surface: h.ID()})
	}
	return gone
}

func (w *Watcher) poll(fetch func(context.Context) []Event) {
	defer w.wg.Done()

	emit := func() bool {
		for _, evt := range fetch(w.ctx) {
			select {
			case <-w.ctx.Done():
				return false
			case w.events <- evt:
			}
		}
		return true
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
