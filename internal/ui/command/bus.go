package command

import (
	"fmt"

	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a command issued by a sub-model.
type Request struct {
	ID    string
	Label string
	Cmd   tea.Cmd
}

// Bus coordinates the execution of sub-model commands.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a command while emitting trace logs. A request without a
// command yields nil so callers can pass results through unconditionally.
func (b *Bus) Execute(req Request) tea.Cmd {
	if req.Cmd == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		msg := req.Cmd()
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
