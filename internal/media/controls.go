package media

import "github.com/atomicstack/tmux-chat-ui/internal/theme"

// Control identifies a player button.
type Control int

const (
	ControlFullscreen Control = iota
	ControlPopout
	ControlCamera
	ControlScreenshare
	ControlMute
	ControlEnd
	ControlSettings
)

type controlSpec struct {
	ID         Control
	Icon       theme.Icon
	Label      string
	Key        string
	Appearance theme.Appearance
	Labelled   bool
}

var controls = []controlSpec{
	{ID: ControlFullscreen, Icon: theme.IconArrowsPointingOut, Label: "media.fullscreen", Key: "f", Appearance: theme.Secondary},
	{ID: ControlPopout, Icon: theme.IconSquare2Stack, Label: "media.popout-player", Key: "p", Appearance: theme.Transparent},
	{ID: ControlCamera, Icon: theme.IconVideoCamera, Label: "media.enable-camera", Key: "c", Appearance: theme.Secondary},
	{ID: ControlScreenshare, Icon: theme.IconWindow, Label: "media.screenshare", Key: "s", Appearance: theme.Secondary},
	{ID: ControlMute, Icon: theme.IconSpeakerWave, Label: "media.mute", Key: "m", Appearance: theme.Secondary},
	{ID: ControlEnd, Icon: theme.IconPhoneXMark, Label: "media.end", Key: "e", Appearance: theme.Danger, Labelled: true},
	{ID: ControlSettings, Icon: theme.IconCog6Tooth, Label: "media.settings", Key: ",", Appearance: theme.Secondary},
}

func controlForKey(key string) (Control, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c.ID, true
		}
	}
	return 0, false
}
