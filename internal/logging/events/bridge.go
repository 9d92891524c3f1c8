package events

import "github.com/atomicstack/tmux-chat-ui/internal/logging"

type BridgeTracer struct{}

var Bridge = BridgeTracer{}

func (BridgeTracer) Listen(socket string) {
	logging.Trace("bridge.listen", map[string]interface{}{"socket": socket})
}

func (BridgeTracer) Connect(surface string) {
	logging.Trace("bridge.connect", map[string]interface{}{"surface": surface})
}

func (BridgeTracer) Receive(kind, surface string) {
	logging.Trace("bridge.receive", map[string]interface{}{"kind": kind, "surface": surface})
}

func (BridgeTracer) Send(kind, surface string) {
	logging.Trace("bridge.send", map[string]interface{}{"kind": kind, "surface": surface})
}

func (BridgeTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("bridge.error", map[string]interface{}{"error": err.Error()})
}
