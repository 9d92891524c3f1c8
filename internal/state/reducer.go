package state

import (
	"github.com/atomicstack/tmux-chat-ui/internal/window"
)

// Reduce applies a to s and reports whether anything changed. s is not
// modified. The handle of a SetWindow must already be known live.
func Reduce(s State, a Action) (State, bool) {
	switch act := a.(type) {
	case SetWindow:
		if cur, ok := s.UI.Windows[act.Role]; ok && cur.Equal(act.Handle) {
			return s, false
		}
		next := s.clone()
		if next.UI.Windows == nil {
			next.UI.Windows = make(map[WindowRole]window.Handle, 1)
		}
		next.UI.Windows[act.Role] = act.Handle
		return next, true
	case ClearWindow:
		cur, ok := s.UI.Windows[act.Role]
		if !ok {
			return s, false
		}
		if act.SurfaceID != "" && cur.ID() != act.SurfaceID {
			return s, false
		}
		next := s.clone()
		delete(next.UI.Windows, act.Role)
		return next, true
	case DisableMedia:
		if s.Call.Current == nil {
			return s, false
		}
		next := s.clone()
		next.Call.Current = nil
		return next, true
	case StartCall:
		next := s.clone()
		call := act.Call
		next.Call.Current = &call
		return next, true
	case SetSilenced:
		if s.Call.Current == nil || s.Call.Current.Silenced == act.Silenced {
			return s, false
		}
		next := s.clone()
		next.Call.Current.Silenced = act.Silenced
		return next, true
	case SetSidebarHidden:
		if s.UI.SidebarHidden == act.Hidden {
			return s, false
		}
		next := s.clone()
		next.UI.SidebarHidden = act.Hidden
		return next, true
	default:
		return s, false
	}
}
