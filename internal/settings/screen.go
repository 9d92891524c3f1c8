package settings

import (
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen composes the sidebar with the body of the active page.
type Screen struct {
	sidebar    Sidebar
	extensions ExtensionsPanel
	bodyFocus  bool
	width      int

	styles *theme.Styles
	loc    i18n.Localizer
}

// NewScreen builds the settings screen.
func NewScreen(sidebar Sidebar, extensions ExtensionsPanel, loc i18n.Localizer) Screen {
	return Screen{sidebar: sidebar, extensions: extensions, styles: theme.Default(), loc: loc}
}

// Sidebar returns the navigation model.
func (s Screen) Sidebar() Sidebar {
	return s.sidebar
}

// Extensions returns the extensions page model.
func (s Screen) Extensions() ExtensionsPanel {
	return s.extensions
}

// Active returns the page being shown.
func (s Screen) Active() Page {
	return s.sidebar.Active()
}

// BodyFocused reports whether keys go to the page body.
func (s Screen) BodyFocused() bool {
	return s.bodyFocus || s.sidebar.Hidden()
}

// CapturesInput reports whether a text field is consuming raw keys.
func (s Screen) CapturesInput() bool {
	return !s.BodyFocused() && s.sidebar.Searching()
}

// SetHidden collapses or shows the sidebar.
func (s Screen) SetHidden(hidden bool) Screen {
	s.sidebar = s.sidebar.SetHidden(hidden)
	return s
}

// SetWidth distributes the available width between sidebar and body.
func (s Screen) SetWidth(w int) Screen {
	s.width = w
	body := w
	if !s.sidebar.Hidden() {
		body -= defaultSidebarWidth + 2
	}
	s.extensions = s.extensions.SetWidth(body)
	return s
}

// Open shows the page named by route.
func (s Screen) Open(route string) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.sidebar, cmd = s.sidebar.Navigate(route)
	s.bodyFocus = false
	return s, cmd
}

// Update routes input between the sidebar and the page body.
func (s Screen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch m := msg.(type) {
	case FolderOpenedMsg, ExtensionToggledMsg:
		s.extensions, cmd = s.extensions.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		if s.BodyFocused() {
			switch m.String() {
			case "left", "h":
				if !s.sidebar.Hidden() {
					s.bodyFocus = false
					return s, nil
				}
			}
			if s.sidebar.Active() == Extensions {
				s.extensions, cmd = s.extensions.Update(msg)
			}
			return s, cmd
		}
		if !s.sidebar.Searching() {
			switch m.String() {
			case "right", "l":
				s.bodyFocus = true
				return s, nil
			}
		}
	}
	s.sidebar, cmd = s.sidebar.Update(msg)
	return s, cmd
}

// View renders the sidebar next to the page body.
func (s Screen) View() string {
	page := s.sidebar.Active()
	title := s.styles.Header.Render(lookup(s.loc, "settings."+page.String()))
	body := lookup(s.loc, "settings.coming-soon")
	if page == Extensions {
		body = s.extensions.View()
	} else {
		body = s.styles.Info.Render(body)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", body)
	if s.sidebar.Hidden() {
		return content
	}
	nav := lipgloss.NewStyle().Width(defaultSidebarWidth).MarginRight(2).Render(s.sidebar.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, nav, content)
}
