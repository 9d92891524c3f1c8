package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/format/table"
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

// PlaceholderExtension is the id of the demo extension card.
const PlaceholderExtension = "placeholder"

const (
	placeholderAuthor      = "Nobody#1345"
	placeholderDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."
	defaultPanelWidth      = 60
)

// FolderOpener opens a shell in a directory. window.Manager satisfies it.
type FolderOpener interface {
	OpenShell(ctx context.Context, dir string) error
}

// FolderOpenedMsg reports the outcome of the open-folder button. Headless is
// set when no window manager can show the folder.
type FolderOpenedMsg struct {
	Dir      string
	Headless bool
	Err      error
}

// ExtensionToggledMsg reports a switch change and whether persisting it failed.
type ExtensionToggledMsg struct {
	Name    string
	Enabled bool
	Err     error
}

const (
	focusOpenFolder = iota
	focusSwitch
	focusCount
)

// ExtensionsPanel is the extensions settings page.
type ExtensionsPanel struct {
	dir     string
	opener  FolderOpener
	enabled map[string]bool
	persist func(map[string]bool) error
	focus   int
	status  string
	failed  bool
	width   int

	styles *theme.Styles
	loc    i18n.Localizer
}

// NewExtensionsPanel builds the page. persist, if set, stores the switch
// states after each toggle.
func NewExtensionsPanel(dir string, opener FolderOpener, enabled map[string]bool, persist func(map[string]bool) error, loc i18n.Localizer) ExtensionsPanel {
	states := make(map[string]bool, len(enabled))
	for k, v := range enabled {
		states[k] = v
	}
	return ExtensionsPanel{
		dir:     dir,
		opener:  opener,
		enabled: states,
		persist: persist,
		width:   defaultPanelWidth,
		styles:  theme.Default(),
		loc:     loc,
	}
}

// Enabled reports the switch state of an extension.
func (p ExtensionsPanel) Enabled(name string) bool {
	return p.enabled[name]
}

// Status returns the last status line.
func (p ExtensionsPanel) Status() string {
	return p.status
}

// SetWidth sets the wrap width of the card.
func (p ExtensionsPanel) SetWidth(w int) ExtensionsPanel {
	if w > 0 {
		p.width = w
	}
	return p
}

// OpenFolder creates the extensions directory if needed and opens it.
func (p ExtensionsPanel) OpenFolder() tea.Cmd {
	dir, opener := p.dir, p.opener
	return func() tea.Msg {
		if strings.TrimSpace(dir) == "" {
			return FolderOpenedMsg{Err: errors.New("extensions folder not configured")}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return FolderOpenedMsg{Dir: dir, Err: fmt.Errorf("create extensions folder: %w", err)}
		}
		if opener == nil {
			return FolderOpenedMsg{Dir: dir, Headless: true}
		}
		err := opener.OpenShell(context.Background(), dir)
		if errors.Is(err, window.ErrUnsupported) {
			return FolderOpenedMsg{Dir: dir, Headless: true}
		}
		return FolderOpenedMsg{Dir: dir, Err: err}
	}
}

// Toggle flips an extension switch and persists the new states.
func (p ExtensionsPanel) Toggle(name string) (ExtensionsPanel, tea.Cmd) {
	next := make(map[string]bool, len(p.enabled)+1)
	for k, v := range p.enabled {
		next[k] = v
	}
	next[name] = !next[name]
	p.enabled = next
	enabled, persist := next[name], p.persist
	snapshot := make(map[string]bool, len(next))
	for k, v := range next {
		snapshot[k] = v
	}
	return p, func() tea.Msg {
		var err error
		if persist != nil {
			err = persist(snapshot)
		}
		return ExtensionToggledMsg{Name: name, Enabled: enabled, Err: err}
	}
}

// Update handles focus movement, activation and command results.
func (p ExtensionsPanel) Update(msg tea.Msg) (ExtensionsPanel, tea.Cmd) {
	switch m := msg.(type) {
	case FolderOpenedMsg:
		switch {
		case m.Err != nil:
			logging.Error(m.Err)
			p.status, p.failed = m.Err.Error(), true
		case m.Headless:
			p.status, p.failed = lookup(p.loc, "settings-extensions.folder-path")+": "+m.Dir, false
		default:
			p.status, p.failed = lookup(p.loc, "settings-extensions.folder-opened"), false
		}
		return p, nil
	case ExtensionToggledMsg:
		if m.Err != nil {
			logging.Error(m.Err)
			p.status, p.failed = m.Err.Error(), true
		}
		return p, nil
	case tea.KeyMsg:
		switch m.String() {
		case "tab", "down", "j":
			p.focus = (p.focus + 1) % focusCount
		case "shift+tab", "up", "k":
			p.focus = (p.focus + focusCount - 1) % focusCount
		case "enter", " ":
			if p.focus == focusOpenFolder {
				return p, p.OpenFolder()
			}
			return p.Toggle(PlaceholderExtension)
		}
	}
	return p, nil
}

// View renders the open-folder button and the extension card.
func (p ExtensionsPanel) View() string {
	s := p.styles
	var b strings.Builder

	button := s.Button(theme.Secondary, theme.IconFolderOpen, lookup(p.loc, "settings-extensions.open-extensions-folder"))
	if p.focus == focusOpenFolder {
		button = s.Button(theme.Primary, theme.IconFolderOpen, lookup(p.loc, "settings-extensions.open-extensions-folder"))
	}
	b.WriteString(button)
	b.WriteString("\n\n")

	state := lookup(p.loc, "settings-extensions.disabled")
	appearance := theme.Secondary
	if p.enabled[PlaceholderExtension] {
		state = lookup(p.loc, "settings-extensions.enabled")
		appearance = theme.Success
	}
	toggle := s.Button(appearance, theme.IconNone, "["+state+"]")
	if p.focus == focusSwitch {
		toggle = "▸ " + toggle
	}

	inner := p.width - 4
	if inner < 10 {
		inner = 10
	}
	meta := table.Pairs(
		[2]string{lookup(p.loc, "settings-extensions.author"), placeholderAuthor},
		[2]string{lookup(p.loc, "settings-extensions.folder-path"), p.dir},
	)
	lines := []string{s.CardTitle.Render(lookup(p.loc, "settings-extensions.placeholder"))}
	for _, row := range meta {
		lines = append(lines, s.CardMeta.Render(row))
	}
	lines = append(lines, wordwrap.String(placeholderDescription, inner), toggle)
	card := strings.Join(lines, "\n")
	b.WriteString(s.Card.Render(card))

	if p.status != "" {
		b.WriteString("\n")
		if p.failed {
			b.WriteString(s.Error.Render(p.status))
		} else {
			b.WriteString(s.Info.Render(p.status))
		}
	}
	return b.String()
}
