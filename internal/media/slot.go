package media

import (
	"fmt"
	"path"
	"time"
)

// Mode is the player state.
type Mode int

const (
	// ModeEmbedded renders the live video in the main window.
	ModeEmbedded Mode = iota
	// ModePoppedOut leaves the video to the pop-out surface.
	ModePoppedOut
)

func (m Mode) String() string {
	if m == ModePoppedOut {
		return "popped-out"
	}
	return "embedded"
}

// Element is the content of the embedded slot.
type Element interface {
	// Live reports whether the element plays the media stream.
	Live() bool
}

// Video is a live video element.
type Video struct {
	Source   string
	Muted    bool
	Position time.Duration
}

// Placeholder stands in for the video while it plays in the pop-out.
type Placeholder struct{}

// Idle is shown when there is no call.
type Idle struct{}

func (Video) Live() bool       { return true }
func (Placeholder) Live() bool { return false }
func (Idle) Live() bool        { return false }

// Title is the last path element of the source URL.
func (v Video) Title() string {
	if v.Source == "" {
		return ""
	}
	return path.Base(v.Source)
}

// FormatPosition renders a playback position as mm:ss or h:mm:ss.
func FormatPosition(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
