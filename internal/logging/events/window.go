package events

import "github.com/atomicstack/tmux-chat-ui/internal/logging"

type WindowTracer struct{}

type PopoutTracer struct{}

var (
	Window = WindowTracer{}
	Popout = PopoutTracer{}
)

func (WindowTracer) Create(surface, target string) {
	logging.Trace("window.create", map[string]interface{}{"surface": surface, "target": target})
}

func (WindowTracer) Close(surface, target string) {
	logging.Trace("window.close", map[string]interface{}{"surface": surface, "target": target})
}

func (WindowTracer) Gone(surface string) {
	logging.Trace("window.gone", map[string]interface{}{"surface": surface})
}

func (PopoutTracer) Open(surface string, position string) {
	logging.Trace("popout.open", map[string]interface{}{"surface": surface, "position": position})
}

func (PopoutTracer) Close(surface string, reason string) {
	logging.Trace("popout.close", map[string]interface{}{"surface": surface, "reason": reason})
}

func (PopoutTracer) Fullscreen(surface string) {
	logging.Trace("popout.fullscreen", map[string]interface{}{"surface": surface})
}
