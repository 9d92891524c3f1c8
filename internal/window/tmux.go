package window

import (
	"context"
	"errors"
	"sync"

	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/tmux"
	"github.com/google/uuid"
)

const defaultSurfaceSize = "45%"

type tmuxSurface struct {
	id   string
	pane string
}

func (s tmuxSurface) ID() string     { return s.id }
func (s tmuxSurface) Target() string { return s.pane }

// TmuxManager hosts surfaces in tmux panes split off the caller's pane.
type TmuxManager struct {
	socketPath string
	origin     string

	mu    sync.Mutex
	panes map[string]string

	split      func(socketPath string, opts tmux.SplitOptions) (string, error)
	kill       func(socketPath, target string) error
	exists     func(socketPath, paneID string) (bool, error)
	zoom       func(socketPath, target string) error
	openWindow func(socketPath, dir, name string) error
}

// NewTmuxManager creates a manager that splits surfaces off origin, usually
// the pane the application runs in.
func NewTmuxManager(socketPath, origin string) *TmuxManager {
	return &TmuxManager{
		socketPath: socketPath,
		origin:     origin,
		panes:      make(map[string]string),
		split:      tmux.SplitPane,
		kill:       tmux.KillPane,
		exists:     tmux.PaneExists,
		zoom:       tmux.ToggleZoom,
		openWindow: tmux.NewWindowAt,
	}
}

func (m *TmuxManager) Create(ctx context.Context, root Root) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	size := root.Size
	if size == "" {
		size = defaultSurfaceSize
	}
	id := uuid.NewString()
	pane, err := m.split(m.socketPath, tmux.SplitOptions{
		Target:     m.origin,
		Horizontal: true,
		Size:       size,
		Env:        root.envWithID(id),
		Command:    root.Command,
	})
	if err != nil {
		return nil, err
	}
	s := tmuxSurface{id: id, pane: pane}
	m.mu.Lock()
	m.panes[s.id] = pane
	m.mu.Unlock()
	events.Window.Create(s.id, pane)
	return s, nil
}

func (m *TmuxManager) Downgrade(s Surface) Handle {
	if s == nil {
		return Handle{}
	}
	return NewHandle(s.ID(), m)
}

// Resolve upgrades a surface id. A pane that vanished, or a tmux server that
// cannot be queried, resolves to "gone".
func (m *TmuxManager) Resolve(id string) (Surface, bool) {
	m.mu.Lock()
	pane, ok := m.panes[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	alive, err := m.exists(m.socketPath, pane)
	if err != nil {
		logging.Error(err)
		return nil, false
	}
	if !alive {
		m.forget(id)
		events.Window.Gone(id)
		return nil, false
	}
	return tmuxSurface{id: id, pane: pane}, true
}

func (m *TmuxManager) Close(ctx context.Context, h Handle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	pane, ok := m.panes[h.ID()]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	if err := m.kill(m.socketPath, pane); err != nil {
		if alive, qerr := m.exists(m.socketPath, pane); qerr == nil && !alive {
			m.forget(h.ID())
			return nil
		}
		return err
	}
	m.forget(h.ID())
	events.Window.Close(h.ID(), pane)
	return nil
}

func (m *TmuxManager) ToggleFullscreen(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if target == "" {
		target = m.origin
	}
	return m.zoom(m.socketPath, target)
}

func (m *TmuxManager) OpenShell(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir == "" {
		return errors.New("directory required")
	}
	return m.openWindow(m.socketPath, dir, "extensions")
}

func (m *TmuxManager) forget(id string) {
	m.mu.Lock()
	delete(m.panes, id)
	m.mu.Unlock()
}
