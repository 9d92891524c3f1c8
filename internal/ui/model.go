package ui

import (
	"reflect"
	"strings"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/backend"
	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/atomicstack/tmux-chat-ui/internal/data/dispatcher"
	"github.com/atomicstack/tmux-chat-ui/internal/files"
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/media"
	"github.com/atomicstack/tmux-chat-ui/internal/settings"
	"github.com/atomicstack/tmux-chat-ui/internal/sound"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/theme"
	"github.com/atomicstack/tmux-chat-ui/internal/ui/command"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the top-level view selected by the route.
type Screen int

const (
	ScreenCall Screen = iota
	ScreenSettings
)

// CallRoute is the route of the call screen.
const CallRoute = "/call"

type focusArea int

const (
	focusPlayer focusArea = iota
	focusAttachments
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Bridge is the host end of the pop-out bridge. *bridge.Server satisfies it.
type Bridge interface {
	Events() <-chan bridge.Event
	Broadcast(bridge.Event) error
}

// SurfaceWatcher reports tracked surfaces that disappeared.
// *backend.Watcher satisfies it.
type SurfaceWatcher interface {
	Events() <-chan backend.Event
}

// Options wires the model to its collaborators.
type Options struct {
	Store   *state.Store
	Windows window.Manager
	Bridge  Bridge
	Watcher SurfaceWatcher
	Sounds  *sound.Player
	Loc     i18n.Localizer

	Width         int
	Height        int
	Verbose       bool
	PopoutCommand []string
	BridgeSocket  string
	MediaSource   string
	Attachments   []string

	ExtensionsDir     string
	Extensions        map[string]bool
	PersistExtensions func(map[string]bool) error
}

// Model implements the Bubble Tea model of the main window.
type Model struct {
	route       string
	screen      Screen
	focus       focusArea
	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	verbose     bool

	store        *state.Store
	sub          *state.Subscription
	bridge       Bridge
	watcher      SurfaceWatcher
	dispatcher   *dispatcher.Dispatcher
	lastSilenced bool
	lastCallID   string

	// detached models never block on the store or the bridge.
	detached bool
	// syncing is set while the settings screen itself reports a navigation.
	syncing bool

	player      media.Player
	attachments files.Strip
	settings    settings.Screen
	loc         i18n.Localizer

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel builds the main window model. The store subscription is taken
// here so no change between construction and Init is missed.
func NewModel(opts Options) *Model {
	m := &Model{
		route:   CallRoute,
		screen:  ScreenCall,
		verbose: opts.Verbose,
		store:   opts.Store,
		sub:     opts.Store.Subscribe(),
		bridge:  opts.Bridge,
		watcher: opts.Watcher,
		loc:     opts.Loc,
		bus:     command.New(),
	}
	m.dispatcher = dispatcher.New(opts.Store)
	snap := opts.Store.Snapshot()
	m.lastSilenced = snap.Silenced()
	if snap.Call.Current != nil {
		m.lastCallID = snap.Call.Current.ID
	}

	var sounds settings.SoundPlayer
	if opts.Sounds != nil {
		sounds = opts.Sounds
	}
	m.player = media.New(media.Config{
		Store:         opts.Store,
		Windows:       opts.Windows,
		Router:        m,
		Sounds:        sounds,
		Loc:           opts.Loc,
		PopoutCommand: opts.PopoutCommand,
		BridgeSocket:  opts.BridgeSocket,
		DefaultSource: opts.MediaSource,
	})
	m.attachments = files.NewStrip(opts.Attachments, opts.Loc)

	var opener settings.FolderOpener
	if opts.Windows != nil {
		opener = opts.Windows
	}
	sidebar := settings.NewSidebar(opts.Loc, sounds, m).SetHidden(snap.UI.SidebarHidden)
	extensions := settings.NewExtensionsPanel(opts.ExtensionsDir, opener, opts.Extensions, opts.PersistExtensions, opts.Loc)
	m.settings = settings.NewScreen(sidebar, extensions, opts.Loc)

	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.applyWidth()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStore(), m.waitForBridge(), m.waitForBackend())
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):                   m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):            m.handleWindowSizeMsg,
		reflect.TypeOf(storeChangedMsg{}):              m.handleStoreChangedMsg,
		reflect.TypeOf(storeClosedMsg{}):               m.handleStoreClosedMsg,
		reflect.TypeOf(bridgeEventMsg{}):               m.handleBridgeEventMsg,
		reflect.TypeOf(backendEventMsg{}):              m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):               m.handleBackendDoneMsg,
		reflect.TypeOf(bridgeDoneMsg{}):                m.handleBridgeDoneMsg,
		reflect.TypeOf(files.PressedMsg{}):             m.handleFilePressedMsg,
		reflect.TypeOf(files.RenamedMsg{}):             m.handleFileRenamedMsg,
		reflect.TypeOf(settings.PageSelectedMsg{}):     m.handlePageSelectedMsg,
		reflect.TypeOf(settings.FolderOpenedMsg{}):     m.forwardToSettings,
		reflect.TypeOf(settings.ExtensionToggledMsg{}): m.forwardToSettings,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return m.forwardToFocused
}

// Navigate implements the router used by the player and the sidebar.
func (m *Model) Navigate(route string) {
	route = strings.TrimSpace(route)
	if route == "" {
		route = CallRoute
	}
	m.route = route
	m.errMsg = ""
	events.UI.Navigate(route)
	if !strings.HasPrefix(route, settings.RoutePrefix) {
		m.screen = ScreenCall
		return
	}
	m.screen = ScreenSettings
	if m.syncing {
		return
	}
	m.syncing = true
	m.settings, _ = m.settings.Open(route)
	m.syncing = false
}

// Route returns the current route.
func (m *Model) Route() string {
	return m.route
}

// Screen returns the visible screen.
func (m *Model) Screen() Screen {
	return m.screen
}

// Player exposes the media player sub-model.
func (m *Model) Player() media.Player {
	return m.player
}

// Settings exposes the settings screen sub-model.
func (m *Model) Settings() settings.Screen {
	return m.settings
}

// Attachments exposes the attachment strip.
func (m *Model) Attachments() files.Strip {
	return m.attachments
}

// Close releases the store subscription.
func (m *Model) Close() {
	if m.sub != nil {
		m.sub.Unsubscribe()
	}
}

func (m *Model) applyWidth() {
	if m.width <= 0 {
		return
	}
	m.player = m.player.SetWidth(m.width)
	m.settings = m.settings.SetWidth(m.width)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.applyWidth()
	return nil
}
