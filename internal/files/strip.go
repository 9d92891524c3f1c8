package files

import (
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
)

// Strip is a horizontal row of attachments with a cursor.
type Strip struct {
	items  []File
	cursor int
}

// NewStrip builds a strip from file names.
func NewStrip(names []string, loc i18n.Localizer) Strip {
	items := make([]File, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		items = append(items, New(n, loc))
	}
	return Strip{items: items}
}

// Len returns the number of attachments.
func (s Strip) Len() int {
	return len(s.items)
}

// Items returns a copy of the attachments.
func (s Strip) Items() []File {
	return append([]File(nil), s.items...)
}

// Cursor returns the selected index.
func (s Strip) Cursor() int {
	return s.cursor
}

// Selected returns the attachment under the cursor.
func (s Strip) Selected() (File, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return File{}, false
	}
	return s.items[s.cursor], true
}

// Renaming reports whether the selected attachment captures key input.
func (s Strip) Renaming() bool {
	f, ok := s.Selected()
	return ok && f.Renaming()
}

// Update handles strip navigation and forwards input to a renaming file.
func (s Strip) Update(msg tea.Msg) (Strip, tea.Cmd) {
	if len(s.items) == 0 {
		return s, nil
	}
	if s.Renaming() {
		var cmd tea.Cmd
		s.items[s.cursor], cmd = s.items[s.cursor].Update(msg)
		return s, cmd
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case "enter":
		return s, s.items[s.cursor].Press()
	case "r":
		var cmd tea.Cmd
		s.items[s.cursor], cmd = s.items[s.cursor].StartRename()
		return s, cmd
	}
	return s, nil
}

// View renders the strip. focused controls whether the cursor is shown.
func (s Strip) View(focused bool) string {
	if len(s.items) == 0 {
		return ""
	}
	parts := make([]string, len(s.items))
	for i, f := range s.items {
		parts[i] = f.View(focused && i == s.cursor)
	}
	line := strings.Join(parts, "  ")
	if focused && !s.Renaming() {
		if f, ok := s.Selected(); ok && !f.Disabled {
			line += "  " + f.styles.Footer.Render("r "+f.renameHint())
		}
	}
	return line
}
