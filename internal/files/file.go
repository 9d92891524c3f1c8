package files

import (
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const skeletonWidth = 12

// RenamedMsg is emitted when a rename is confirmed.
type RenamedMsg struct {
	Old string
	New string
}

// PressedMsg is emitted when a file is activated.
type PressedMsg struct {
	Name  string
	Video bool
}

// File is a single attachment.
type File struct {
	Name      string
	Thumbnail string
	AriaLabel string
	Disabled  bool
	Loading   bool

	renaming bool
	input    textinput.Model
	styles   *theme.Styles
	loc      i18n.Localizer
}

// New builds a file view with the default styles.
func New(name string, loc i18n.Localizer) File {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 255
	return File{Name: name, input: in, styles: theme.Default(), loc: loc}
}

// Renaming reports whether the inline rename field is open.
func (f File) Renaming() bool {
	return f.renaming
}

// StartRename opens the rename field with the current name as placeholder.
// Disabled files cannot be renamed.
func (f File) StartRename() (File, tea.Cmd) {
	if f.Disabled || f.Loading {
		return f, nil
	}
	f.renaming = true
	f.input.Placeholder = f.Name
	f.input.SetValue("")
	cmd := f.input.Focus()
	return f, cmd
}

// CancelRename closes the rename field without emitting anything.
func (f File) CancelRename() File {
	f.renaming = false
	f.input.Blur()
	f.input.SetValue("")
	return f
}

// Press activates the file.
func (f File) Press() tea.Cmd {
	if f.Disabled || f.Loading {
		return nil
	}
	msg := PressedMsg{Name: f.Name, Video: IsVideo(f.Name)}
	return func() tea.Msg { return msg }
}

// Update handles key input while the rename field is open.
func (f File) Update(msg tea.Msg) (File, tea.Cmd) {
	if !f.renaming {
		return f, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(f.input.Value())
			old := f.Name
			f = f.CancelRename()
			if value == "" || value == old {
				return f, nil
			}
			f.Name = value
			return f, func() tea.Msg { return RenamedMsg{Old: old, New: value} }
		case tea.KeyEsc:
			return f.CancelRename(), nil
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the file. selected highlights the entry in a strip.
func (f File) View(selected bool) string {
	s := f.styles
	if f.Loading {
		return theme.IconDocumentText.Glyph() + " " + s.Skeleton.Render(strings.Repeat("░", skeletonWidth))
	}

	var b strings.Builder
	if f.Thumbnail != "" {
		b.WriteString("▣")
	} else {
		b.WriteString(theme.IconDocument.Glyph())
	}
	if IsVideo(f.Name) {
		b.WriteString(theme.IconPlay.Glyph())
	}
	b.WriteString(" ")

	if f.renaming {
		b.WriteString(s.Filter.Render(f.input.View()))
		return b.String()
	}
	_, label := FormatDisplayName(f.Name)
	b.WriteString(label)

	switch {
	case f.Disabled:
		return s.Disabled.Render(b.String())
	case selected:
		return s.SelectedItem.Render(b.String())
	default:
		return s.Item.Render(b.String())
	}
}

// Label returns the accessible label, falling back to the full name.
func (f File) Label() string {
	if f.AriaLabel != "" {
		return f.AriaLabel
	}
	return f.Name
}

func (f File) renameHint() string {
	if f.loc == nil {
		return "rename"
	}
	return f.loc.Lookup("files.rename")
}
