// Package dispatcher turns backend watcher events into store actions.
package dispatcher

import (
	"github.com/atomicstack/tmux-chat-ui/internal/backend"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
)

type Result struct {
	WindowsUpdated bool
}

type Dispatcher struct {
	store *state.Store
}

func New(store *state.Store) *Dispatcher {
	return &Dispatcher{store: store}
}

// Handle applies evt. A gone surface is cleared only if it is still the one
// tracked for its role.
func (d *Dispatcher) Handle(evt backend.Event) (Result, error) {
	var res Result
	switch evt.Kind {
	case backend.KindSurfaceGone:
		tracked, ok := d.store.Snapshot().UI.Windows[evt.Role]
		if !ok || tracked.ID() != evt.Surface {
			return res, nil
		}
		if evt.Role == state.RolePopoutPlayer {
			events.Popout.Close(evt.Surface, "gone")
		}
		if err := d.store.Dispatch(state.ClearWindow{Role: evt.Role, SurfaceID: evt.Surface}); err != nil {
			return res, err
		}
		_, still := d.store.Snapshot().UI.Windows[evt.Role]
		res.WindowsUpdated = !still
	}
	return res, nil
}
