// Package state holds the process-wide application state shared by every
// rendering surface. State changes only through Actions applied by Reduce;
// a Store serialises dispatches and tells subscribers when to re-render.
package state

import "github.com/atomicstack/tmux-chat-ui/internal/window"

// WindowRole names the feature a tracked surface belongs to.
type WindowRole string

const RolePopoutPlayer WindowRole = "popout-player"

// CallInfo describes the active call.
type CallInfo struct {
	ID       string
	Source   string
	Silenced bool
}

type CallState struct {
	Current *CallInfo
}

// UiState tracks UI flags and the surfaces opened for features. At most one
// surface is tracked per role.
type UiState struct {
	Windows       map[WindowRole]window.Handle
	SidebarHidden bool
}

// PopoutPlayer returns the tracked pop-out player surface, if any.
func (u UiState) PopoutPlayer() (window.Handle, bool) {
	h, ok := u.Windows[RolePopoutPlayer]
	return h, ok
}

// State is an immutable snapshot.
type State struct {
	UI   UiState
	Call CallState
}

// Silenced reports whether the current call is muted; false without a call.
func (s State) Silenced() bool {
	if s.Call.Current == nil {
		return false
	}
	return s.Call.Current.Silenced
}

func (s State) clone() State {
	out := s
	if s.UI.Windows != nil {
		out.UI.Windows = make(map[WindowRole]window.Handle, len(s.UI.Windows))
		for k, v := range s.UI.Windows {
			out.UI.Windows[k] = v
		}
	}
	if s.Call.Current != nil {
		call := *s.Call.Current
		out.Call.Current = &call
	}
	return out
}
