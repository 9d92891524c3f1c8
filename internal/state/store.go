package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
)

// ErrStoreClosed is returned when dispatching to a torn-down store. It always
// indicates a lifecycle bug in the caller.
var ErrStoreClosed = errors.New("dispatch on closed store")

// Store owns the shared State. Dispatches are applied one at a time.
//
// Dispatch notifies subscribers after a change; DispatchSilent applies the
// change without notifying anyone. The silent form exists for hand-offs where
// a forced re-render of every subscriber would restart a live media element
// before the receiving surface has taken over. The dispatching component
// still observes its own write through Snapshot.
type Store struct {
	mu     sync.Mutex
	state  State
	closed bool
	subs   map[int]*Subscription
	nextID int
}

// Subscription delivers change ticks. Ticks coalesce: a subscriber that has
// not drained its channel receives one tick for any number of changes and
// reads the latest Snapshot.
type Subscription struct {
	id    int
	store *Store
	ch    chan struct{}
}

// New creates a store holding initial.
func New(initial State) *Store {
	return &Store{state: initial.clone(), subs: make(map[int]*Subscription)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Dispatch applies a and notifies subscribers if state changed.
func (s *Store) Dispatch(a Action) error {
	return s.apply(a, true)
}

// DispatchSilent applies a without notifying subscribers.
func (s *Store) DispatchSilent(a Action) error {
	return s.apply(a, false)
}

func (s *Store) apply(a Action, notify bool) error {
	if a == nil {
		return fmt.Errorf("dispatch: nil action")
	}
	// Resolving a handle may query tmux, so it happens before locking.
	var stale bool
	if act, ok := a.(SetWindow); ok {
		_, live := act.Handle.Upgrade()
		stale = !live
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		err := fmt.Errorf("%w: %s", ErrStoreClosed, a)
		logging.Error(err)
		return err
	}
	if stale {
		events.Store.StaleHandle(a.String(), a.(SetWindow).Handle.ID())
		events.Store.Dispatch(a.String(), !notify, false)
		return nil
	}
	next, changed := Reduce(s.state, a)
	s.state = next
	events.Store.Dispatch(a.String(), !notify, changed)
	if changed && notify {
		for _, sub := range s.subs {
			select {
			case sub.ch <- struct{}{}:
			default:
			}
		}
	}
	return nil
}

// Subscribe registers a new subscriber. On a closed store the returned
// subscription's channel is already closed.
func (s *Store) Subscribe() *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub := &Subscription{id: s.nextID, store: s, ch: make(chan struct{}, 1)}
	s.nextID++
	if s.closed {
		close(sub.ch)
		return sub
	}
	s.subs[sub.id] = sub
	events.Store.Subscribe(len(s.subs))
	return sub
}

// Close tears the store down and closes every subscription channel.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, sub := range s.subs {
		close(sub.ch)
		delete(s.subs, id)
	}
}

// Closed reports whether Close has been called.
func (s *Store) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// C returns the tick channel. It is closed when the store closes or the
// subscription is cancelled.
func (sub *Subscription) C() <-chan struct{} {
	return sub.ch
}

// Unsubscribe stops delivery. Calling it more than once is harmless.
func (sub *Subscription) Unsubscribe() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subs[sub.id]; !ok {
		return
	}
	delete(s.subs, sub.id)
	close(sub.ch)
}
