package backend

import (
	"context"
	"testing"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
)

func trackPopout(t *testing.T, store *state.Store, windows *window.HeadlessManager) window.Handle {
	t.Helper()
	s, err := windows.Create(context.Background(), window.Root{Name: "popout"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := windows.Downgrade(s)
	if err := store.Dispatch(state.SetPopout(h)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	return h
}

func TestWatcherReportsGoneSurfaceOnce(t *testing.T) {
	store := state.New(state.State{})
	windows := window.NewHeadlessManager()
	h := trackPopout(t, store, windows)

	w := NewWatcher(store, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	windows.CloseExternally(h.ID())

	select {
	case evt := <-w.Events():
		if evt.Kind != KindSurfaceGone || evt.Surface != h.ID() || evt.Role != state.RolePopoutPlayer {
			t.Fatalf("unexpected event %#v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for gone surface")
	}

	select {
	case evt := <-w.Events():
		t.Fatalf("expected a single report, got %#v", evt)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcherIgnoresLiveSurfaces(t *testing.T) {
	store := state.New(state.State{})
	windows := window.NewHeadlessManager()
	trackPopout(t, store, windows)

	w := NewWatcher(store, 10*time.Millisecond)
	select {
	case evt := <-w.Events():
		t.Fatalf("unexpected event %#v", evt)
	case <-time.After(300 * time.Millisecond):
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after stop")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(30 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Fatalf("expected second wait to be delayed, took %s", elapsed)
	}
	var nilThrottle *throttle
	nilThrottle.wait()
}
