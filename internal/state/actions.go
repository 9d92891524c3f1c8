package state

import (
	"fmt"

	"github.com/atomicstack/tmux-chat-ui/internal/window"
)

// Action is the closed set of state mutations.
type Action interface {
	action()
	fmt.Stringer
}

// SetWindow tracks a surface for a role. The handle must upgrade at dispatch
// time; a surface that is already gone leaves state unchanged.
type SetWindow struct {
	Role   WindowRole
	Handle window.Handle
}

// ClearWindow stops tracking the surface of a role. A non-empty SurfaceID
// restricts the clear to that surface.
type ClearWindow struct {
	Role      WindowRole
	SurfaceID string
}

// DisableMedia ends the current call.
type DisableMedia struct{}

// StartCall makes call the current call.
type StartCall struct {
	Call CallInfo
}

// SetSilenced mutes or unmutes the current call.
type SetSilenced struct {
	Silenced bool
}

// SetSidebarHidden shows or hides the settings sidebar.
type SetSidebarHidden struct {
	Hidden bool
}

func (SetWindow) action()        {}
func (ClearWindow) action()      {}
func (DisableMedia) action()     {}
func (StartCall) action()        {}
func (SetSilenced) action()      {}
func (SetSidebarHidden) action() {}

func (a SetWindow) String() string {
	return fmt.Sprintf("SetWindow(%s,%s)", a.Role, a.Handle.ID())
}

func (a ClearWindow) String() string {
	if a.SurfaceID == "" {
		return fmt.Sprintf("ClearWindow(%s)", a.Role)
	}
	return fmt.Sprintf("ClearWindow(%s,%s)", a.Role, a.SurfaceID)
}

func (DisableMedia) String() string       { return "DisableMedia" }
func (a StartCall) String() string        { return fmt.Sprintf("StartCall(%s)", a.Call.ID) }
func (a SetSilenced) String() string      { return fmt.Sprintf("SetSilenced(%t)", a.Silenced) }
func (a SetSidebarHidden) String() string { return fmt.Sprintf("SetSidebarHidden(%t)", a.Hidden) }

// SetPopout tracks h as the pop-out player surface.
func SetPopout(h window.Handle) Action {
	return SetWindow{Role: RolePopoutPlayer, Handle: h}
}

// ClearPopout stops tracking the pop-out player unconditionally.
func ClearPopout() Action {
	return ClearWindow{Role: RolePopoutPlayer}
}

// ClearPopoutSurface stops tracking the pop-out player only if it is still
// the surface with the given id.
func ClearPopoutSurface(id string) Action {
	return ClearWindow{Role: RolePopoutPlayer, SurfaceID: id}
}
