// Package sound plays interface sounds. It uses the beeep library so the
// terminal bell or the platform beep is used depending on the OS.
package sound

import (
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/gen2brain/beeep"
)

// Sound identifies an interface sound.
type Sound int

const (
	Interaction Sound = iota
	Notification
	Hangup
)

type tone struct {
	freq     float64
	duration int
}

var tones = map[Sound]tone{
	Interaction:  {freq: 880, duration: 40},
	Notification: {freq: beeep.DefaultFreq, duration: 120},
	Hangup:       {freq: 330, duration: 200},
}

var beep = beeep.Beep

// Player plays sounds when enabled.
type Player struct {
	enabled bool
}

// NewPlayer returns a player gated by the interface sounds setting.
func NewPlayer(enabled bool) *Player {
	return &Player{enabled: enabled}
}

// Enabled reports whether sounds are played.
func (p *Player) Enabled() bool {
	return p != nil && p.enabled
}

// SetEnabled toggles playback.
func (p *Player) SetEnabled(enabled bool) {
	if p == nil {
		return
	}
	p.enabled = enabled
}

// Play emits the sound when enabled. Failures are logged, never returned:
// a missing audio device must not interrupt navigation.
func (p *Player) Play(s Sound) {
	if !p.Enabled() {
		return
	}
	t, ok := tones[s]
	if !ok {
		t = tones[Interaction]
	}
	if err := beep(t.freq, t.duration); err != nil {
		logging.Error(err)
	}
}
