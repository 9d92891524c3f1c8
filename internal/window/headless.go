package window

import (
	"context"
	"fmt"
	"sync"

	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/google/uuid"
)

type headlessSurface struct {
	id   string
	root Root
}

func (s *headlessSurface) ID() string     { return s.id }
func (s *headlessSurface) Target() string { return "headless:" + s.id }

// HeadlessManager tracks surfaces in process without displaying them.
type HeadlessManager struct {
	mu       sync.Mutex
	surfaces map[string]*headlessSurface
	order    []string
	created  int
	failNext error
	detached bool
}

// NewHeadlessManager returns an empty manager whose surfaces exist only as
// records.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{surfaces: make(map[string]*headlessSurface)}
}

// NewDetachedManager returns the manager used when tmux is unavailable.
// Nothing can be displayed, so Create fails with ErrUnsupported.
func NewDetachedManager() *HeadlessManager {
	m := NewHeadlessManager()
	m.detached = true
	return m
}

// FailNextCreate makes the next Create call return err.
func (m *HeadlessManager) FailNextCreate(err error) {
	m.mu.Lock()
	m.failNext = err
	m.mu.Unlock()
}

func (m *HeadlessManager) Create(_ context.Context, root Root) (Surface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failNext; err != nil {
		m.failNext = nil
		return nil, fmt.Errorf("create %s surface: %w", root.Name, err)
	}
	if m.detached {
		return nil, fmt.Errorf("create %s surface: %w", root.Name, ErrUnsupported)
	}
	id := uuid.NewString()
	root.Env = root.envWithID(id)
	s := &headlessSurface{id: id, root: root}
	m.surfaces[s.id] = s
	m.order = append(m.order, s.id)
	m.created++
	events.Window.Create(s.id, s.Target())
	return s, nil
}

func (m *HeadlessManager) Downgrade(s Surface) Handle {
	if s == nil {
		return Handle{}
	}
	return NewHandle(s.ID(), m)
}

func (m *HeadlessManager) Resolve(id string) (Surface, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surfaces[id]
	if !ok {
		return nil, false
	}
	return s, true
}

func (m *HeadlessManager) Close(_ context.Context, h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surfaces[h.ID()]
	if !ok {
		return nil
	}
	delete(m.surfaces, h.ID())
	events.Window.Close(s.id, s.Target())
	return nil
}

// CloseExternally removes a surface as if the user closed it outside the app.
func (m *HeadlessManager) CloseExternally(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.surfaces[id]; ok {
		delete(m.surfaces, id)
		events.Window.Gone(id)
	}
}

// Live returns the number of open surfaces.
func (m *HeadlessManager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.surfaces)
}

// Created returns how many surfaces were ever created.
func (m *HeadlessManager) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// RootOf returns the root a live surface was created with.
func (m *HeadlessManager) RootOf(id string) (Root, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.surfaces[id]
	if !ok {
		return Root{}, false
	}
	return s.root, true
}

func (m *HeadlessManager) ToggleFullscreen(context.Context, string) error {
	return ErrUnsupported
}

func (m *HeadlessManager) OpenShell(context.Context, string) error {
	return ErrUnsupported
}
