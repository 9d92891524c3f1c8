// Package bridge carries window-level events between the main program and the
// pop-out surface process. The main program listens on a unix socket; each
// pop-out connects with its surface id and speaks JSON over a websocket.
package bridge

import "errors"

// Kind identifies a bridge event.
type Kind string

const (
	// KindReady is sent by a pop-out once its player is running.
	KindReady Kind = "ready"
	// KindClose asks the host to stop tracking the sending surface.
	KindClose Kind = "close"
	// KindFullscreen reports a fullscreen toggle in the pop-out.
	KindFullscreen Kind = "fullscreen"
	// KindSilenced mirrors the call's mute flag into the pop-out.
	KindSilenced Kind = "silenced"
	// KindDisconnect is synthesised by the server when a surface connection drops.
	KindDisconnect Kind = "disconnect"
)

// ErrClosed is returned when sending on a closed bridge endpoint.
var ErrClosed = errors.New("bridge closed")

// Event is the single message type exchanged over the bridge.
type Event struct {
	Kind     Kind   `json:"kind"`
	Surface  string `json:"surface,omitempty"`
	Silenced bool   `json:"silenced,omitempty"`
}

const surfacePath = "/surface"

// Environment variables injected into every pop-out surface.
const (
	EnvSocket  = "TMUX_CHAT_UI_BRIDGE"
	EnvSurface = "TMUX_CHAT_UI_SURFACE"
)
