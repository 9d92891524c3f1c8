package ui

import (
	"github.com/atomicstack/tmux-chat-ui/internal/backend"
	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) waitForStore() tea.Cmd {
	if m.detached {
		return nil
	}
	return waitForStoreChange(m.sub)
}

func (m *Model) waitForBridge() tea.Cmd {
	if m.detached || m.bridge == nil {
		return nil
	}
	return waitForBridgeEvent(m.bridge)
}

func (m *Model) waitForBackend() tea.Cmd {
	if m.detached || m.watcher == nil {
		return nil
	}
	return waitForBackendEvent(m.watcher)
}

func waitForBackendEvent(w SurfaceWatcher) tea.Cmd {
	ch := w.Events()
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

func waitForStoreChange(sub *state.Subscription) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-sub.C(); !ok {
			return storeClosedMsg{}
		}
		return storeChangedMsg{}
	}
}

func waitForBridgeEvent(b Bridge) tea.Cmd {
	ch := b.Events()
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return bridgeDoneMsg{}
		}
		return bridgeEventMsg{event: evt}
	}
}

type storeChangedMsg struct{}

type storeClosedMsg struct{}

type bridgeEventMsg struct {
	event bridge.Event
}

type bridgeDoneMsg struct{}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	if _, err := m.dispatcher.Handle(eventMsg.event); err != nil {
		logging.Error(err)
		m.errMsg = err.Error()
	}
	return m.waitForBackend()
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.watcher = nil
	return nil
}

func (m *Model) handleStoreChangedMsg(msg tea.Msg) tea.Cmd {
	snap := m.store.Snapshot()
	callID := ""
	if snap.Call.Current != nil {
		callID = snap.Call.Current.ID
	}
	if callID != m.lastCallID {
		m.lastCallID = callID
		if callID != "" {
			m.player = m.player.RestartClock()
		}
	}
	if snap.UI.SidebarHidden != m.settings.Sidebar().Hidden() {
		m.settings = m.settings.SetHidden(snap.UI.SidebarHidden)
		m.applyWidth()
	}
	if silenced := snap.Silenced(); silenced != m.lastSilenced {
		m.lastSilenced = silenced
		m.broadcastSilenced()
	}
	return m.waitForStore()
}

func (m *Model) handleStoreClosedMsg(msg tea.Msg) tea.Cmd {
	return tea.Quit
}

func (m *Model) handleBridgeEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(bridgeEventMsg)
	if !ok {
		return nil
	}
	m.applyBridgeEvent(eventMsg.event)
	return m.waitForBridge()
}

func (m *Model) handleBridgeDoneMsg(msg tea.Msg) tea.Cmd {
	m.bridge = nil
	return nil
}

func (m *Model) applyBridgeEvent(evt bridge.Event) {
	switch evt.Kind {
	case bridge.KindReady:
		m.broadcastSilenced()
	case bridge.KindClose, bridge.KindDisconnect:
		if err := m.player.SurfaceClosed(evt.Surface); err != nil {
			logging.Error(err)
			m.errMsg = err.Error()
		}
	}
}

func (m *Model) broadcastSilenced() {
	if m.bridge == nil {
		return
	}
	evt := bridge.Event{Kind: bridge.KindSilenced, Silenced: m.store.Snapshot().Silenced()}
	if err := m.bridge.Broadcast(evt); err != nil {
		logging.Error(err)
	}
}
