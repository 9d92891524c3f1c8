package dispatcher

import (
	"context"
	"testing"

	"github.com/atomicstack/tmux-chat-ui/internal/backend"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
)

func TestHandleClearsGoneSurface(t *testing.T) {
	store := state.New(state.State{})
	windows := window.NewHeadlessManager()
	s, err := windows.Create(context.Background(), window.Root{Name: "popout"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := windows.Downgrade(s)
	if err := store.Dispatch(state.SetPopout(h)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	d := New(store)

	res, err := d.Handle(backend.Event{Kind: backend.KindSurfaceGone, Role: state.RolePopoutPlayer, Surface: "other"})
	if err != nil || res.WindowsUpdated {
		t.Fatalf("expected stale event ignored, got %#v %v", res, err)
	}
	if _, ok := store.Snapshot().UI.PopoutPlayer(); !ok {
		t.Fatalf("expected pop-out still tracked")
	}

	res, err = d.Handle(backend.Event{Kind: backend.KindSurfaceGone, Role: state.RolePopoutPlayer, Surface: h.ID()})
	if err != nil || !res.WindowsUpdated {
		t.Fatalf("expected pop-out cleared, got %#v %v", res, err)
	}
	if _, ok := store.Snapshot().UI.PopoutPlayer(); ok {
		t.Fatalf("expected pop-out untracked")
	}
}

func TestHandleClosedStore(t *testing.T) {
	store := state.New(state.State{})
	store.Close()
	d := New(store)
	if _, err := d.Handle(backend.Event{Kind: backend.KindSurfaceGone, Role: state.RolePopoutPlayer}); err != nil {
		t.Fatalf("expected untracked surface to be a no-op, got %v", err)
	}
}
