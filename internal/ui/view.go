package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const infoTimeout = 5 * time.Second

var callHints = []string{"tab focus", "p pop-out", "m mute", "e end", "ctrl+o settings", "q quit"}

var settingsHints = []string{"↑/↓ move", "/ search", "→ open", "esc back", "ctrl+b sidebar", "q quit"}

// View implements tea.Model.
func (m *Model) View() string {
	sections := []string{styles.Header.Render(m.header())}
	switch m.screen {
	case ScreenSettings:
		sections = append(sections, m.settings.View())
	default:
		sections = append(sections, m.player.View())
		if m.attachments.Len() > 0 {
			sections = append(sections, "", m.attachments.View(m.focus == focusAttachments))
		}
	}
	if info := m.currentInfo(); info != "" {
		sections = append(sections, "", styles.Info.Render(info))
	}
	if m.errMsg != "" {
		sections = append(sections, styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg)))
	}
	sections = append(sections, "", styles.Footer.Render(m.footer()))
	return fitLines(lipgloss.JoinVertical(lipgloss.Left, sections...), m.width, m.height)
}

func (m *Model) header() string {
	if m.screen == ScreenSettings {
		return m.lookup("media.settings") + " › " + m.lookup("settings."+m.settings.Active().String())
	}
	snap := m.store.Snapshot()
	if snap.Call.Current == nil {
		return m.lookup("media.no-call")
	}
	return "● " + snap.Call.Current.ID
}

func (m *Model) footer() string {
	if m.screen == ScreenSettings {
		return strings.Join(settingsHints, "  ")
	}
	return strings.Join(callHints, "  ")
}

// fitLines clips rendered output to the viewport. Rows are truncated with
// an ANSI-aware cut so styled text keeps its escapes balanced.
func fitLines(view string, width, height int) string {
	rows := strings.Split(view, "\n")
	if height > 0 && len(rows) > height {
		rows = rows[:height]
	}
	if width > 0 {
		for i, row := range rows {
			if lipgloss.Width(row) > width {
				rows[i] = truncate.StringWithTail(row, uint(max(width-1, 0)), "…")
			}
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTimeout)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
