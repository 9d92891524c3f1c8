package settings

import (
	"sort"
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/sound"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"
)

const defaultSidebarWidth = 24

// Router changes the active screen.
type Router interface {
	Navigate(route string)
}

// SoundPlayer plays interface sounds. *sound.Player satisfies it and applies
// the interface-sounds setting.
type SoundPlayer interface {
	Play(sound.Sound)
}

// PageSelectedMsg reports a sidebar navigation.
type PageSelectedMsg struct {
	Page Page
}

// Sidebar lists the settings routes with an optional fuzzy filter.
type Sidebar struct {
	routes    []Route
	visible   []int
	cursor    int
	active    Page
	hidden    bool
	searching bool
	search    textinput.Model
	width     int

	sounds SoundPlayer
	router Router
	styles *theme.Styles
	loc    i18n.Localizer
}

// NewSidebar builds the sidebar. sounds and router may be nil.
func NewSidebar(loc i18n.Localizer, sounds SoundPlayer, router Router) Sidebar {
	in := textinput.New()
	in.Prompt = theme.IconMagnifyingGlass.Glyph() + " "
	in.Placeholder = lookup(loc, "settings.search-placeholder")
	in.Cursor.SetMode(cursor.CursorStatic)
	s := Sidebar{
		routes: Routes(loc),
		search: in,
		width:  defaultSidebarWidth,
		sounds: sounds,
		router: router,
		styles: theme.Default(),
		loc:    loc,
	}
	s.visible = s.allIndices()
	return s
}

// Active returns the selected page.
func (s Sidebar) Active() Page {
	return s.active
}

// Hidden reports whether the sidebar is collapsed.
func (s Sidebar) Hidden() bool {
	return s.hidden
}

// SetHidden collapses or shows the sidebar.
func (s Sidebar) SetHidden(hidden bool) Sidebar {
	s.hidden = hidden
	return s
}

// SetWidth limits the rendered width.
func (s Sidebar) SetWidth(w int) Sidebar {
	if w > 0 {
		s.width = w
	}
	return s
}

// Searching reports whether the filter field captures key input.
func (s Sidebar) Searching() bool {
	return s.searching
}

// Visible returns the routes matching the current filter in display order.
func (s Sidebar) Visible() []Route {
	out := make([]Route, len(s.visible))
	for i, idx := range s.visible {
		out[i] = s.routes[idx]
	}
	return out
}

// Navigate activates route. It plays the interaction sound when enabled,
// tells the router and emits PageSelectedMsg.
func (s Sidebar) Navigate(route string) (Sidebar, tea.Cmd) {
	page := ParsePage(route)
	if s.sounds != nil {
		s.sounds.Play(sound.Interaction)
	}
	s.active = page
	for i, idx := range s.visible {
		if s.routes[idx].Page == page {
			s.cursor = i
		}
	}
	events.Settings.Select(page.String())
	if s.router != nil {
		s.router.Navigate(page.Path())
	}
	return s, func() tea.Msg { return PageSelectedMsg{Page: page} }
}

// Filter narrows the routes by fuzzy match on their localized names.
func (s Sidebar) Filter(query string) Sidebar {
	query = strings.TrimSpace(query)
	if query == "" {
		s.visible = s.allIndices()
		s.cursor = s.indexOfActive()
		return s
	}
	names := make([]string, len(s.routes))
	for i, r := range s.routes {
		names[i] = r.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)
	s.visible = make([]int, 0, len(ranks))
	for _, r := range ranks {
		s.visible = append(s.visible, r.OriginalIndex)
	}
	s.cursor = 0
	events.Settings.Search(query, len(s.visible))
	return s
}

// Update handles sidebar keys.
func (s Sidebar) Update(msg tea.Msg) (Sidebar, tea.Cmd) {
	if s.hidden {
		return s, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.searching {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.searching {
		switch key.Type {
		case tea.KeyEsc:
			s.searching = false
			s.search.Blur()
			s.search.SetValue("")
			return s.Filter(""), nil
		case tea.KeyEnter:
			s.searching = false
			s.search.Blur()
			return s.selectCursor()
		case tea.KeyUp, tea.KeyDown:
			return s.moveCursor(key.Type == tea.KeyDown), nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s.Filter(s.search.Value()), cmd
	}

	switch key.String() {
	case "up", "k":
		return s.moveCursor(false), nil
	case "down", "j":
		return s.moveCursor(true), nil
	case "enter":
		return s.selectCursor()
	case "/":
		s.searching = true
		cmd := s.search.Focus()
		return s, cmd
	}
	return s, nil
}

// View renders the search field and the route list.
func (s Sidebar) View() string {
	if s.hidden {
		return ""
	}
	var b strings.Builder
	b.WriteString(s.styles.Filter.Render(s.search.View()))
	b.WriteString("\n")
	if len(s.visible) == 0 {
		b.WriteString(s.styles.Info.Render(lookup(s.loc, "settings.no-matches")))
		return b.String()
	}
	labelWidth := s.width - 2
	if labelWidth < 1 {
		labelWidth = 1
	}
	for i, idx := range s.visible {
		r := s.routes[idx]
		label := truncate.StringWithTail(r.Icon.Glyph()+" "+r.Name, uint(labelWidth), "…")
		switch {
		case i == s.cursor:
			b.WriteString(s.styles.SelectedItem.Render("▌" + label))
		case r.Page == s.active:
			b.WriteString(s.styles.ActiveItem.Render(" " + label))
		default:
			b.WriteString(s.styles.Item.Render(" " + label))
		}
		if i < len(s.visible)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s Sidebar) moveCursor(down bool) Sidebar {
	if len(s.visible) == 0 {
		return s
	}
	if down && s.cursor < len(s.visible)-1 {
		s.cursor++
	}
	if !down && s.cursor > 0 {
		s.cursor--
	}
	return s
}

func (s Sidebar) selectCursor() (Sidebar, tea.Cmd) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return s, nil
	}
	return s.Navigate(s.routes[s.visible[s.cursor]].To())
}

func (s Sidebar) allIndices() []int {
	out := make([]int, len(s.routes))
	for i := range s.routes {
		out[i] = i
	}
	return out
}

func (s Sidebar) indexOfActive() int {
	for i, idx := range s.visible {
		if s.routes[idx].Page == s.active {
			return i
		}
	}
	return 0
}
