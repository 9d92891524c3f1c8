package tmux

import (
	"os/exec"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Pane is the subset of tmux pane state the window manager needs.
type Pane struct {
	ID     string
	Title  string
	Width  int
	Height int
	Active bool
}

// SplitOptions describes a pane created to host a surface.
type SplitOptions struct {
	Target     string
	Horizontal bool
	Size       string
	Detached   bool
	Env        map[string]string
	Command    []string
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	runExecCommand = func(name string, args ...string) commander {
		return realCommander{cmd: exec.Command(name, args...)}
	}
)

type tmuxClient interface {
	ListAllPanes() ([]*gotmux.Pane, error)
	Close() error
}

type commander interface {
	Run() error
	Output() ([]byte, error)
}

type realCommander struct {
	cmd *exec.Cmd
}

func (r realCommander) Run() error {
	return r.cmd.Run()
}

func (r realCommander) Output() ([]byte, error) {
	return r.cmd.Output()
}
