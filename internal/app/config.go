package app

import (
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/media"
)

// DefaultMediaSource is the stream the player shows when no source is configured.
const DefaultMediaSource = media.DefaultSource

// Config describes user-provided application options.
type Config struct {
	SocketPath      string
	Width           int
	Height          int
	Verbose         bool
	Headless        bool
	InterfaceSounds bool
	SidebarHidden   bool
	LocaleFile      string
	ExtensionsDir   string
	MediaSource     string
	Attachments     []string
	Extensions      map[string]bool

	// PersistExtensions stores the extension switches; nil keeps them in memory.
	PersistExtensions func(map[string]bool) error `json:"-"`
}

// PopoutConfig describes how a pop-out surface process was launched.
type PopoutConfig struct {
	SocketPath   string
	BridgeSocket string
	SurfaceID    string
	Source       string
	StartAt      time.Duration
	Silenced     bool
	LocaleFile   string
}
