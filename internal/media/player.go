// Package media implements the call player. The player owns the toggle that
// moves the live video between the embedded slot and a pop-out surface; the
// store decides which of the two renders it.
package media

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/sound"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// SettingsRoute is where the settings control navigates.
	SettingsRoute = "/settings"
	// DefaultSource is the stream shown when a call names none.
	DefaultSource = "http://commondatastorage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4"
)

// ErrNoCall is returned when popping out without an active call.
var ErrNoCall = errors.New("no active call")

// Router changes the active screen.
type Router interface {
	Navigate(route string)
}

// SoundPlayer plays interface sounds.
type SoundPlayer interface {
	Play(sound.Sound)
}

// Config wires the player to its collaborators.
type Config struct {
	Store   *state.Store
	Windows window.Manager
	Router  Router
	Sounds  SoundPlayer
	Loc     i18n.Localizer

	// PopoutCommand starts the pop-out surface process; flags describing the
	// stream are appended to it.
	PopoutCommand []string
	BridgeSocket  string
	DefaultSource string
}

// Player is the Bubble Tea sub-model of the call player.
type Player struct {
	cfg     Config
	focus   int
	status  string
	failed  bool
	width   int
	started time.Time
	now     func() time.Time
	styles  *theme.Styles
}

// New builds a player. Playback position is measured from now.
func New(cfg Config) Player {
	if cfg.DefaultSource == "" {
		cfg.DefaultSource = DefaultSource
	}
	return Player{
		cfg:     cfg,
		started: time.Now(),
		now:     time.Now,
		styles:  theme.Default(),
	}
}

// Mode derives the player state from the store.
func (p Player) Mode() Mode {
	if _, ok := p.cfg.Store.Snapshot().UI.PopoutPlayer(); ok {
		return ModePoppedOut
	}
	return ModeEmbedded
}

// Status returns the last status line.
func (p Player) Status() string {
	return p.status
}

// Focused returns the focused control.
func (p Player) Focused() Control {
	return controls[p.focus].ID
}

// SetWidth sets the rendered width.
func (p Player) SetWidth(w int) Player {
	p.width = w
	return p
}

// Position is the playback position of the current stream.
func (p Player) Position() time.Duration {
	return p.now().Sub(p.started)
}

// RestartClock resets the playback position, used when a new call starts.
func (p Player) RestartClock() Player {
	p.started = p.now()
	return p
}

// Slot returns what the embedded slot renders. It is a live Video only when
// a call is active and no pop-out is tracked.
func (p Player) Slot() Element {
	snap := p.cfg.Store.Snapshot()
	if _, ok := snap.UI.PopoutPlayer(); ok {
		return Placeholder{}
	}
	if snap.Call.Current == nil {
		return Idle{}
	}
	return Video{
		Source:   p.source(snap),
		Muted:    snap.Silenced(),
		Position: p.Position(),
	}
}

// TogglePopout moves the video between the embedded slot and a pop-out
// surface. The new surface is tracked before TogglePopout returns.
func (p Player) TogglePopout(ctx context.Context) error {
	store := p.cfg.Store
	snap := store.Snapshot()
	if h, ok := snap.UI.PopoutPlayer(); ok {
		if _, live := h.Upgrade(); live {
			return p.closePopout(ctx, h, "toggle")
		}
		// Closed behind our back; forget it and open a fresh one.
		events.Popout.Close(h.ID(), "gone")
		if err := store.DispatchSilent(state.ClearPopoutSurface(h.ID())); err != nil {
			return err
		}
	}
	if snap.Call.Current == nil {
		return ErrNoCall
	}
	return p.openPopout(ctx, snap)
}

func (p Player) openPopout(ctx context.Context, snap state.State) error {
	position := p.Position()
	root := window.Root{
		Name:    "popout-player",
		Command: p.popoutCommand(snap, position),
		IDEnv:   bridge.EnvSurface,
	}
	if p.cfg.BridgeSocket != "" {
		root.Env = map[string]string{bridge.EnvSocket: p.cfg.BridgeSocket}
	}
	surface, err := p.cfg.Windows.Create(ctx, root)
	if err != nil {
		return fmt.Errorf("open pop-out player: %w", err)
	}
	h := p.cfg.Windows.Downgrade(surface)
	// Subscribers must not re-render until the pop-out owns the stream.
	if err := p.cfg.Store.DispatchSilent(state.SetPopout(h)); err != nil {
		_ = p.cfg.Windows.Close(ctx, h)
		return err
	}
	if tracked, ok := p.cfg.Store.Snapshot().UI.PopoutPlayer(); !ok || !tracked.Equal(h) {
		_ = p.cfg.Windows.Close(ctx, h)
		return fmt.Errorf("open pop-out player: %w", window.ErrSurfaceGone)
	}
	events.Popout.Open(h.ID(), position.String())
	return nil
}

func (p Player) closePopout(ctx context.Context, h window.Handle, reason string) error {
	if err := p.cfg.Windows.Close(ctx, h); err != nil {
		// The surface may still be playing; keep tracking it.
		return fmt.Errorf("close pop-out player: %w", err)
	}
	events.Popout.Close(h.ID(), reason)
	return p.cfg.Store.Dispatch(state.ClearPopoutSurface(h.ID()))
}

// SurfaceClosed handles a pop-out that closed itself. Reports about a
// surface that is no longer tracked are ignored.
func (p Player) SurfaceClosed(id string) error {
	events.Popout.Close(id, "bridge")
	return p.cfg.Store.Dispatch(state.ClearPopoutSurface(id))
}

func (p Player) popoutCommand(snap state.State, position time.Duration) []string {
	cmd := append([]string(nil), p.cfg.PopoutCommand...)
	return append(cmd,
		"--source", p.source(snap),
		"--start-at", position.Truncate(time.Second).String(),
		"--silenced="+strconv.FormatBool(snap.Silenced()),
	)
}

func (p Player) source(snap state.State) string {
	if snap.Call.Current != nil && snap.Call.Current.Source != "" {
		return snap.Call.Current.Source
	}
	return p.cfg.DefaultSource
}

// Activate runs a control.
func (p Player) Activate(ctx context.Context, c Control) Player {
	p.status, p.failed = "", false
	store := p.cfg.Store
	var err error
	switch c {
	case ControlFullscreen:
		err = p.cfg.Windows.ToggleFullscreen(ctx, "")
	case ControlPopout:
		err = p.TogglePopout(ctx)
	case ControlCamera, ControlScreenshare:
		p.status = p.lookup("media.unavailable")
		return p
	case ControlMute:
		err = store.Dispatch(state.SetSilenced{Silenced: !store.Snapshot().Silenced()})
	case ControlEnd:
		err = p.endCall(ctx)
	case ControlSettings:
		if p.cfg.Router != nil {
			p.cfg.Router.Navigate(SettingsRoute)
		}
	}
	switch {
	case errors.Is(err, window.ErrUnsupported):
		p.status = p.lookup("media.unavailable")
	case errors.Is(err, ErrNoCall):
		p.status = p.lookup("media.no-call")
	case err != nil:
		logging.Error(err)
		events.Action.Error(err)
		p.status, p.failed = err.Error(), true
	}
	return p
}

// endCall closes any pop-out so the stream does not outlive the call.
func (p Player) endCall(ctx context.Context) error {
	store := p.cfg.Store
	if h, ok := store.Snapshot().UI.PopoutPlayer(); ok {
		if _, live := h.Upgrade(); live {
			if err := p.closePopout(ctx, h, "end-call"); err != nil {
				return err
			}
		} else if err := store.Dispatch(state.ClearPopoutSurface(h.ID())); err != nil {
			return err
		}
	}
	if p.cfg.Sounds != nil && store.Snapshot().Call.Current != nil {
		p.cfg.Sounds.Play(sound.Hangup)
	}
	return store.Dispatch(state.DisableMedia{})
}

// Update handles control keys.
func (p Player) Update(msg tea.Msg) (Player, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	ctx := context.Background()
	switch key.String() {
	case "left", "h":
		if p.focus > 0 {
			p.focus--
		}
	case "right", "l":
		if p.focus < len(controls)-1 {
			p.focus++
		}
	case "enter", " ":
		return p.Activate(ctx, controls[p.focus].ID), nil
	default:
		if c, ok := controlForKey(key.String()); ok {
			return p.Activate(ctx, c), nil
		}
	}
	return p, nil
}

// View renders the topbar, the slot and the control row.
func (p Player) View() string {
	s := p.styles
	topbar := theme.IconChevronUpDown.Glyph() + "  " + s.Button(theme.Secondary, theme.IconArrowsPointingOut, "")

	var body string
	switch el := p.Slot().(type) {
	case Video:
		speaker := theme.IconSpeakerWave.Glyph()
		if el.Muted {
			speaker = theme.IconSpeakerXMark.Glyph()
		}
		body = s.Video.Render(fmt.Sprintf("%s %s  %s  %s", theme.IconPlay.Glyph(), el.Title(), FormatPosition(el.Position), speaker))
	case Placeholder:
		body = s.Placeholder.Render(theme.IconSquare2Stack.Glyph() + " " + p.lookup("media.popped-out"))
	default:
		body = s.Placeholder.Render(p.lookup("media.no-call"))
	}

	buttons := make([]string, 0, len(controls))
	silenced := p.cfg.Store.Snapshot().Silenced()
	for i, c := range controls {
		label := ""
		if c.Labelled {
			label = p.lookup(c.Label)
		}
		icon := c.Icon
		if c.ID == ControlMute && silenced {
			icon = theme.IconSpeakerXMark
		}
		appearance := c.Appearance
		if i == p.focus {
			appearance = theme.Primary
		}
		buttons = append(buttons, s.Button(appearance, icon, label))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(buttons, " "))
	hint := p.lookup(controls[p.focus].Label)
	if controls[p.focus].ID == ControlMute && silenced {
		hint = p.lookup("media.unmute")
	}
	hint = s.Footer.Render(hint + " (" + controls[p.focus].Key + ")")

	parts := []string{topbar, body, row, hint}
	if p.status != "" {
		if p.failed {
			parts = append(parts, s.Error.Render(p.status))
		} else {
			parts = append(parts, s.Info.Render(p.status))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p Player) lookup(key string) string {
	if p.cfg.Loc == nil {
		return key
	}
	return p.cfg.Loc.Lookup(key)
}
