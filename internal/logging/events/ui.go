package events

import "github.com/atomicstack/tmux-chat-ui/internal/logging"

type UITracer struct{}

type SettingsTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI       = UITracer{}
	Settings = SettingsTracer{}
	Action   = ActionTracer{}
	Command  = CommandTracer{}
)

func (UITracer) Navigate(route string) {
	logging.Trace("ui.navigate", map[string]interface{}{"route": route})
}

func (UITracer) Key(view, key string) {
	logging.Trace("ui.key", map[string]interface{}{"view": view, "key": key})
}

func (SettingsTracer) Select(page string) {
	logging.Trace("settings.select", map[string]interface{}{"page": page})
}

func (SettingsTracer) Search(query string, matches int) {
	logging.Trace("settings.search", map[string]interface{}{"query": query, "matches": matches})
}

func (SettingsTracer) UnknownRoute(route string) {
	logging.Trace("settings.route.fallback", map[string]interface{}{"route": route})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
