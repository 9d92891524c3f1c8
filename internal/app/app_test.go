package app

import (
	"context"
	"errors"
	"testing"

	"github.com/atomicstack/tmux-chat-ui/internal/window"
)

func TestInitialStateStartsCall(t *testing.T) {
	st := initialState(Config{MediaSource: "http://example.test/a.mp4", SidebarHidden: true})
	if st.Call.Current == nil || st.Call.Current.ID == "" {
		t.Fatalf("expected a call with an id, got %#v", st.Call.Current)
	}
	if st.Call.Current.Source != "http://example.test/a.mp4" {
		t.Fatalf("unexpected source %q", st.Call.Current.Source)
	}
	if !st.UI.SidebarHidden {
		t.Fatalf("expected sidebar preference carried over")
	}
	if _, ok := st.UI.PopoutPlayer(); ok {
		t.Fatalf("expected no pop-out at startup")
	}
}

func TestNewWindowManagerHeadless(t *testing.T) {
	m, socket, err := newWindowManager(Config{Headless: true, SocketPath: "/tmp/ignored"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*window.HeadlessManager); !ok || socket != "" {
		t.Fatalf("expected headless manager without socket, got %T %q", m, socket)
	}
	if _, err := m.Create(context.Background(), window.Root{Name: "popout-player"}); !errors.Is(err, window.ErrUnsupported) {
		t.Fatalf("expected surfaces to be unsupported without tmux, got %v", err)
	}
}

func TestNewWindowManagerTmux(t *testing.T) {
	m, socket, err := newWindowManager(Config{SocketPath: "/tmp/tmux-test.sock"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := m.(*window.TmuxManager); !ok || socket != "/tmp/tmux-test.sock" {
		t.Fatalf("expected tmux manager on the given socket, got %T %q", m, socket)
	}
}

func TestPopoutCommandCarriesSocket(t *testing.T) {
	cmd, err := popoutCommand("/tmp/tmux.sock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmd) != 4 || cmd[1] != "popout" || cmd[2] != "--socket" || cmd[3] != "/tmp/tmux.sock" {
		t.Fatalf("unexpected command %v", cmd)
	}
	cmd, _ = popoutCommand("")
	if len(cmd) != 2 {
		t.Fatalf("expected no socket flag, got %v", cmd)
	}
}

func TestRunPopoutValidatesConfig(t *testing.T) {
	if err := RunPopout(PopoutConfig{BridgeSocket: "/tmp/x.sock"}); err == nil {
		t.Fatalf("expected missing surface error")
	}
	if err := RunPopout(PopoutConfig{SurfaceID: "s1"}); err == nil {
		t.Fatalf("expected missing bridge error")
	}
}
