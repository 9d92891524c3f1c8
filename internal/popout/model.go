// Package popout is the root view of the pop-out player surface. It runs as
// its own Bubble Tea program inside the surface and talks to the main
// program over the bridge.
package popout

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/media"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	firstFrameDelay = 800 * time.Millisecond
	tickInterval    = time.Second
	// DefaultLength is the running time of the default source.
	DefaultLength = 14*time.Minute + 48*time.Second
)

// Link is the pop-out end of the bridge. *bridge.Client satisfies it.
type Link interface {
	Send(bridge.Event) error
	Events() <-chan bridge.Event
}

// Config describes the stream and the surface.
type Config struct {
	Surface  string
	Source   string
	StartAt  time.Duration
	Length   time.Duration
	Silenced bool
	Link     Link
	// Fullscreen toggles the surface between its split and the whole window.
	Fullscreen func() error
	Loc        i18n.Localizer
}

// HostCloseMsg reports that the host is tearing the surface down.
type HostCloseMsg struct {
	Reason string
}

type firstFrameMsg struct{}

type tickMsg time.Time

type linkEventMsg struct {
	event bridge.Event
}

type linkClosedMsg struct{}

// Model renders the fixed stream with close and fullscreen controls.
type Model struct {
	cfg      Config
	spinner  spinner.Model
	progress progress.Model
	loading  bool
	silenced bool
	started  time.Time
	now      func() time.Time
	position time.Duration
	focus    int
	width    int
	status   string
	closed   bool

	styles *theme.Styles
}

// New builds the model.
func New(cfg Config) Model {
	if cfg.Source == "" {
		cfg.Source = media.DefaultSource
	}
	if cfg.Length <= 0 {
		cfg.Length = DefaultLength
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = *theme.Default().Loading
	return Model{
		cfg:      cfg,
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		loading:  true,
		silenced: cfg.Silenced,
		started:  time.Now(),
		now:      time.Now,
		position: cfg.StartAt,
		styles:   theme.Default(),
	}
}

// Closed reports whether the model already told the host it is closing.
func (m Model) Closed() bool {
	return m.closed
}

// Silenced reports the mirrored mute flag.
func (m Model) Silenced() bool {
	return m.silenced
}

// Loading reports whether the first frame is still pending.
func (m Model) Loading() bool {
	return m.loading
}

// Position is the playback position.
func (m Model) Position() time.Duration {
	return m.position
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.Tick(firstFrameDelay, func(time.Time) tea.Msg { return firstFrameMsg{} }),
		tick(),
		waitForLinkEvent(m.cfg.Link),
	)
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForLinkEvent(link Link) tea.Cmd {
	if link == nil {
		return nil
	}
	ch := link.Events()
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return linkClosedMsg{}
		}
		return linkEventMsg{event: ev}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w < 10 {
			w = 10
		}
		m.progress.Width = w
		return m, nil
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case firstFrameMsg:
		m.loading = false
		return m, nil
	case tickMsg:
		m.position = m.cfg.StartAt + m.now().Sub(m.started)
		return m, tick()
	case linkEventMsg:
		if msg.event.Kind == bridge.KindSilenced {
			m.silenced = msg.event.Silenced
		}
		return m, waitForLinkEvent(m.cfg.Link)
	case linkClosedMsg:
		// The main program is gone; nobody is left to hand the stream back to.
		m.closed = true
		events.Popout.Close(m.cfg.Surface, "host-gone")
		return m, tea.Quit
	case HostCloseMsg:
		return m.close(msg.Reason)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "x", "esc", "ctrl+c":
			return m.close("user")
		case "f":
			return m.fullscreen(), nil
		case "left", "h", "right", "l", "tab":
			m.focus = 1 - m.focus
		case "enter", " ":
			if m.focus == 0 {
				return m.close("user")
			}
			return m.fullscreen(), nil
		}
	}
	return m, nil
}

// close tells the host to stop tracking this surface, then quits.
func (m Model) close(reason string) (Model, tea.Cmd) {
	if m.closed {
		return m, tea.Quit
	}
	m.closed = true
	events.Popout.Close(m.cfg.Surface, reason)
	if m.cfg.Link != nil {
		if err := m.cfg.Link.Send(bridge.Event{Kind: bridge.KindClose}); err != nil {
			logging.Error(err)
		}
	}
	return m, tea.Quit
}

func (m Model) fullscreen() Model {
	events.Popout.Fullscreen(m.cfg.Surface)
	if m.cfg.Link != nil {
		if err := m.cfg.Link.Send(bridge.Event{Kind: bridge.KindFullscreen}); err != nil {
			logging.Error(err)
		}
	}
	if m.cfg.Fullscreen != nil {
		if err := m.cfg.Fullscreen(); err != nil {
			logging.Error(err)
			m.status = err.Error()
			return m
		}
	}
	m.status = ""
	return m
}

func (m Model) View() string {
	s := m.styles
	var screen string
	if m.loading {
		screen = s.Video.Render(m.spinner.View() + " " + s.Loading.Render(m.lookup("popout.loading")) + " " + theme.IconCog6Tooth.Glyph())
	} else {
		speaker := theme.IconSpeakerWave.Glyph()
		if m.silenced {
			speaker = theme.IconSpeakerXMark.Glyph()
		}
		pos := m.position % m.cfg.Length
		line := fmt.Sprintf("%s %s  %s / %s  %s", theme.IconPlay.Glyph(), path.Base(m.cfg.Source),
			media.FormatPosition(pos), media.FormatPosition(m.cfg.Length), speaker)
		bar := m.progress.ViewAs(float64(pos) / float64(m.cfg.Length))
		screen = s.Video.Render(line + "\n" + bar)
	}

	closeBtn := s.Button(theme.Transparent, theme.IconXMark, m.lookup("popout.close"))
	fullBtn := s.Button(theme.Transparent, theme.IconArrowsPointingOut, m.lookup("popout.fullscreen"))
	if m.focus == 0 {
		closeBtn = s.Button(theme.Secondary, theme.IconXMark, m.lookup("popout.close"))
	} else {
		fullBtn = s.Button(theme.Secondary, theme.IconArrowsPointingOut, m.lookup("popout.fullscreen"))
	}
	controls := strings.Join([]string{closeBtn, fullBtn}, " ")

	parts := []string{screen, controls}
	if m.status != "" {
		parts = append(parts, s.Error.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) lookup(key string) string {
	if m.cfg.Loc == nil {
		return key
	}
	return m.cfg.Loc.Lookup(key)
}
