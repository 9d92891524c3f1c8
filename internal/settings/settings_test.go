package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/sound"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

type countingSounds struct {
	played []sound.Sound
}

func (c *countingSounds) Play(s sound.Sound) {
	c.played = append(c.played, s)
}

type recordingRouter struct {
	routes []string
}

func (r *recordingRouter) Navigate(route string) {
	r.routes = append(r.routes, route)
}

func TestParsePage(t *testing.T) {
	tests := map[string]Page{
		"general":             General,
		"profile":             Profile,
		"privacy":             Privacy,
		"audio":               Audio,
		"files":               Files,
		"extensions":          Extensions,
		"notifications":       Notifications,
		"developer":           Developer,
		" Extensions ":        Extensions,
		"/settings/developer": Developer,
		"bogus":               General,
		"":                    General,
	}
	for in, want := range tests {
		if got := ParsePage(in); got != want {
			t.Fatalf("ParsePage(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRoutesOrderAndLabels(t *testing.T) {
	routes := Routes(i18n.Default())
	want := []string{"general", "profile", "privacy", "audio", "files", "extensions", "notifications", "developer"}
	if len(routes) != len(want) {
		t.Fatalf("expected %d routes, got %d", len(want), len(routes))
	}
	for i, r := range routes {
		if r.To() != want[i] {
			t.Fatalf("route %d: expected %s, got %s", i, want[i], r.To())
		}
		if r.Name == "" || strings.HasPrefix(r.Name, "settings.") {
			t.Fatalf("route %s: expected localized name, got %q", r.To(), r.Name)
		}
		if r.Icon.Glyph() == "" {
			t.Fatalf("route %s: missing icon", r.To())
		}
	}
}

func TestNavigatePlaysSoundAndRoutes(t *testing.T) {
	sounds := &countingSounds{}
	router := &recordingRouter{}
	s := NewSidebar(i18n.Default(), sounds, router)
	s, cmd := s.Navigate("audio")
	if s.Active() != Audio {
		t.Fatalf("expected audio active, got %s", s.Active())
	}
	if len(sounds.played) != 1 || sounds.played[0] != sound.Interaction {
		t.Fatalf("expected one interaction sound, got %v", sounds.played)
	}
	if len(router.routes) != 1 || router.routes[0] != "/settings/audio" {
		t.Fatalf("unexpected router calls %v", router.routes)
	}
	if msg, ok := cmd().(PageSelectedMsg); !ok || msg.Page != Audio {
		t.Fatalf("unexpected message %#v", msg)
	}

	s, _ = s.Navigate("bogus")
	if s.Active() != General {
		t.Fatalf("expected fallback to general, got %s", s.Active())
	}
	if router.routes[1] != "/settings/general" {
		t.Fatalf("expected fallback route, got %v", router.routes)
	}
}

func TestSidebarKeysMoveAndSelect(t *testing.T) {
	router := &recordingRouter{}
	s := NewSidebar(i18n.Default(), nil, router)
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || s.Active() != Privacy {
		t.Fatalf("expected privacy selected, got %s", s.Active())
	}
}

func TestSidebarFilter(t *testing.T) {
	s := NewSidebar(i18n.Default(), nil, nil)
	s = s.Filter("ext")
	visible := s.Visible()
	if len(visible) == 0 || visible[0].Page != Extensions {
		t.Fatalf("expected extensions first, got %#v", visible)
	}
	s = s.Filter("zzzz")
	if len(s.Visible()) != 0 {
		t.Fatalf("expected no matches")
	}
	if !strings.Contains(s.View(), "No settings match") {
		t.Fatalf("expected empty state in view")
	}
	s = s.Filter("")
	if len(s.Visible()) != 8 {
		t.Fatalf("expected all routes after clearing filter")
	}
}

func TestSidebarSearchMode(t *testing.T) {
	s := NewSidebar(i18n.Default(), nil, nil)
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !s.Searching() {
		t.Fatalf("expected search mode")
	}
	for _, r := range "dev" {
		s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.Searching() || s.Active() != Developer {
		t.Fatalf("expected developer selected from search, got %s", s.Active())
	}
}

func TestHiddenSidebarRendersNothing(t *testing.T) {
	s := NewSidebar(i18n.Default(), nil, nil).SetHidden(true)
	if s.View() != "" {
		t.Fatalf("expected empty view")
	}
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("hidden sidebar must ignore keys")
	}
}

type fakeOpener struct {
	dirs []string
	err  error
}

func (f *fakeOpener) OpenShell(_ context.Context, dir string) error {
	f.dirs = append(f.dirs, dir)
	return f.err
}

func TestOpenFolderCreatesDirAndOpensShell(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ext")
	opener := &fakeOpener{}
	p := NewExtensionsPanel(dir, opener, nil, nil, i18n.Default())
	msg := p.OpenFolder()().(FolderOpenedMsg)
	if msg.Err != nil || msg.Headless {
		t.Fatalf("unexpected result %#v", msg)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected dir created: %v", err)
	}
	if len(opener.dirs) != 1 || opener.dirs[0] != dir {
		t.Fatalf("unexpected opener calls %v", opener.dirs)
	}
	p, _ = p.Update(msg)
	if p.Status() != "Opened extensions folder" {
		t.Fatalf("unexpected status %q", p.Status())
	}
}

func TestOpenFolderHeadlessShowsPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ext")
	p := NewExtensionsPanel(dir, &fakeOpener{err: window.ErrUnsupported}, nil, nil, i18n.Default())
	msg := p.OpenFolder()().(FolderOpenedMsg)
	if !msg.Headless || msg.Err != nil {
		t.Fatalf("expected headless result, got %#v", msg)
	}
	p, _ = p.Update(msg)
	if !strings.Contains(p.Status(), dir) {
		t.Fatalf("expected path in status, got %q", p.Status())
	}
}

func TestToggleExtensionPersists(t *testing.T) {
	var saved map[string]bool
	persist := func(m map[string]bool) error { saved = m; return nil }
	p := NewExtensionsPanel("", nil, nil, persist, i18n.Default())
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !p.Enabled(PlaceholderExtension) {
		t.Fatalf("expected extension enabled")
	}
	msg := cmd().(ExtensionToggledMsg)
	if !msg.Enabled || !saved[PlaceholderExtension] {
		t.Fatalf("expected persisted enable, got %#v %v", msg, saved)
	}
	if !strings.Contains(p.View(), "Enabled") || !strings.Contains(p.View(), "Nobody#1345") {
		t.Fatalf("unexpected view %q", p.View())
	}
}

func TestToggleFailureShowsError(t *testing.T) {
	p := NewExtensionsPanel("", nil, nil, func(map[string]bool) error { return errors.New("read-only") }, nil)
	p, cmd := p.Toggle(PlaceholderExtension)
	p, _ = p.Update(cmd())
	if p.Status() != "read-only" {
		t.Fatalf("expected error status, got %q", p.Status())
	}
}

func TestScreenFocusMovesIntoExtensionsBody(t *testing.T) {
	var saved map[string]bool
	ext := NewExtensionsPanel("", nil, nil, func(m map[string]bool) error { saved = m; return nil }, i18n.Default())
	s := NewScreen(NewSidebar(i18n.Default(), nil, nil), ext, i18n.Default())
	s, _ = s.Open("extensions")
	if s.Active() != Extensions {
		t.Fatalf("expected extensions page")
	}
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !s.BodyFocused() {
		t.Fatalf("expected body focus")
	}
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected toggle command")
	}
	s, _ = s.Update(cmd())
	if !s.Extensions().Enabled(PlaceholderExtension) || !saved[PlaceholderExtension] {
		t.Fatalf("expected placeholder extension enabled and saved")
	}
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if s.BodyFocused() {
		t.Fatalf("expected focus back on the sidebar")
	}
}

func TestScreenRendersPlaceholderForOtherPages(t *testing.T) {
	s := NewScreen(NewSidebar(i18n.Default(), nil, nil), NewExtensionsPanel("", nil, nil, nil, nil), i18n.Default())
	s, _ = s.Open("privacy")
	view := s.View()
	if !strings.Contains(view, "Privacy") || !strings.Contains(view, "Nothing to configure here yet") {
		t.Fatalf("unexpected view %q", view)
	}
}
