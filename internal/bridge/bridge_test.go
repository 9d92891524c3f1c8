package bridge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unix socket paths are length limited, so avoid t.TempDir's long names.
func socketPath(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "br")
	if err != nil {
		t.Fatalf("temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return filepath.Join(dir, "b.sock")
}

func next(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatalf("event channel closed")
		}
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return Event{}
}

func startPair(t *testing.T, surface string) (*Server, *Client) {
	t.Helper()
	srv, err := Listen(socketPath(t))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = srv.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cl, err := Dial(ctx, srv.SocketPath(), surface)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = cl.Close() })
	if ev := next(t, srv.Events()); ev.Kind != KindReady || ev.Surface != surface {
		t.Fatalf("expected ready from %s, got %#v", surface, ev)
	}
	return srv, cl
}

func TestClientEventsCarryTheirSurface(t *testing.T) {
	srv, cl := startPair(t, "s-1")
	if err := cl.Send(Event{Kind: KindClose, Surface: "spoofed"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	ev := next(t, srv.Events())
	if ev.Kind != KindClose || ev.Surface != "s-1" {
		t.Fatalf("expected close from s-1, got %#v", ev)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	srv, cl := startPair(t, "s-2")
	if err := srv.Broadcast(Event{Kind: KindSilenced, Silenced: true}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	ev := next(t, cl.Events())
	if ev.Kind != KindSilenced || !ev.Silenced {
		t.Fatalf("expected silenced=true, got %#v", ev)
	}
}

func TestClientCloseYieldsDisconnect(t *testing.T) {
	srv, cl := startPair(t, "s-3")
	if err := cl.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	ev := next(t, srv.Events())
	if ev.Kind != KindDisconnect || ev.Surface != "s-3" {
		t.Fatalf("expected disconnect from s-3, got %#v", ev)
	}
	if err := cl.Send(Event{Kind: KindClose}); err != ErrClosed {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
}

func TestServerCloseEndsClientAndRemovesSocket(t *testing.T) {
	srv, cl := startPair(t, "s-4")
	if err := srv.Close(); err != nil {
		t.Fatalf("server close: %v", err)
	}
	select {
	case _, ok := <-cl.Events():
		if ok {
			t.Fatalf("expected client events to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("client did not notice server shutdown")
	}
	if _, err := os.Stat(srv.SocketPath()); !os.IsNotExist(err) {
		t.Fatalf("expected socket removed, stat err=%v", err)
	}
	if err := srv.Broadcast(Event{Kind: KindSilenced}); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestListenReplacesStaleSocket(t *testing.T) {
	path := socketPath(t)
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write stale socket: %v", err)
	}
	srv, err := Listen(path)
	if err != nil {
		t.Fatalf("listen over stale file: %v", err)
	}
	_ = srv.Close()
}

func TestDialRequiresSurface(t *testing.T) {
	if _, err := Dial(context.Background(), "/tmp/none.sock", ""); err == nil {
		t.Fatalf("expected error without surface id")
	}
}
