package events

import "github.com/atomicstack/tmux-chat-ui/internal/logging"

type StoreTracer struct{}

var Store = StoreTracer{}

func (StoreTracer) Dispatch(action string, silent, changed bool) {
	logging.Trace("store.dispatch", map[string]interface{}{
		"action":  action,
		"silent":  silent,
		"changed": changed,
	})
}

func (StoreTracer) StaleHandle(action, surface string) {
	logging.Trace("store.handle.stale", map[string]interface{}{"action": action, "surface": surface})
}

func (StoreTracer) Subscribe(count int) {
	logging.Trace("store.subscribe", map[string]interface{}{"subscribers": count})
}
