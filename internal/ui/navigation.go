package ui

import (
	"github.com/atomicstack/tmux-chat-ui/internal/files"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/settings"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	key := keyMsg.String()
	events.UI.Key(m.viewName(), key)
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.capturesInput() {
		return m.forwardToFocused(msg)
	}

	switch key {
	case "q":
		return tea.Quit
	case "ctrl+o":
		if m.screen == ScreenSettings {
			m.Navigate(CallRoute)
		} else {
			m.Navigate(m.settings.Active().Path())
		}
		return nil
	case "ctrl+b":
		hidden := !m.store.Snapshot().UI.SidebarHidden
		if err := m.store.Dispatch(state.SetSidebarHidden{Hidden: hidden}); err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.settings = m.settings.SetHidden(hidden)
		m.applyWidth()
		return nil
	}

	switch m.screen {
	case ScreenSettings:
		if key == "esc" && !m.settings.BodyFocused() {
			m.Navigate(CallRoute)
			return nil
		}
	case ScreenCall:
		if key == "tab" && m.attachments.Len() > 0 {
			if m.focus == focusPlayer {
				m.focus = focusAttachments
			} else {
				m.focus = focusPlayer
			}
			return nil
		}
	}
	return m.forwardToFocused(msg)
}

// capturesInput reports whether a text field owns raw key input.
func (m *Model) capturesInput() bool {
	switch m.screen {
	case ScreenSettings:
		return m.settings.CapturesInput()
	default:
		return m.focus == focusAttachments && m.attachments.Renaming()
	}
}

func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.screen == ScreenSettings:
		return m.bus.Execute(command.Request{ID: "settings", Label: m.route, Cmd: m.forwardToSettings(msg)})
	case m.focus == focusAttachments:
		m.attachments, cmd = m.attachments.Update(msg)
		return m.bus.Execute(command.Request{ID: "attachments", Label: m.route, Cmd: cmd})
	default:
		before := m.player.Status()
		m.player, cmd = m.player.Update(msg)
		if status := m.player.Status(); status != "" && status != before {
			events.Action.Success(status)
		}
		return m.bus.Execute(command.Request{ID: "player", Label: m.route, Cmd: cmd})
	}
}

func (m *Model) forwardToSettings(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.syncing = true
	m.settings, cmd = m.settings.Update(msg)
	m.syncing = false
	return cmd
}

func (m *Model) handlePageSelectedMsg(msg tea.Msg) tea.Cmd {
	selected, ok := msg.(settings.PageSelectedMsg)
	if !ok {
		return nil
	}
	if m.verbose {
		m.setInfo(m.lookup("settings." + selected.Page.String()))
	}
	return nil
}

// handleFilePressedMsg starts a call from a video attachment when none is
// running.
func (m *Model) handleFilePressedMsg(msg tea.Msg) tea.Cmd {
	pressed, ok := msg.(files.PressedMsg)
	if !ok {
		return nil
	}
	if pressed.Video && m.store.Snapshot().Call.Current == nil {
		call := state.CallInfo{ID: uuid.NewString(), Source: pressed.Name}
		if err := m.store.Dispatch(state.StartCall{Call: call}); err != nil {
			logging.Error(err)
			m.errMsg = err.Error()
			return nil
		}
		m.focus = focusPlayer
	}
	m.setInfo(pressed.Name)
	return nil
}

func (m *Model) handleFileRenamedMsg(msg tea.Msg) tea.Cmd {
	renamed, ok := msg.(files.RenamedMsg)
	if !ok {
		return nil
	}
	events.Action.Success(renamed.Old + " -> " + renamed.New)
	if m.verbose {
		m.setInfo(renamed.New)
	}
	return nil
}

func (m *Model) viewName() string {
	if m.screen == ScreenSettings {
		return "settings"
	}
	if m.focus == focusAttachments {
		return "attachments"
	}
	return "player"
}

func (m *Model) lookup(key string) string {
	if m.loc == nil {
		return key
	}
	return m.loc.Lookup(key)
}
