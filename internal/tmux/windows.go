package tmux

import (
	"fmt"
	"strings"
)

// NewWindowAt opens a shell window rooted at dir.
func NewWindowAt(socketPath, dir, name string) error {
	d := strings.TrimSpace(dir)
	if d == "" {
		return fmt.Errorf("directory required")
	}
	args := append(baseArgs(socketPath), "new-window", "-c", d)
	if n := strings.TrimSpace(name); n != "" {
		args = append(args, "-n", n)
	}
	if err := runExecCommand("tmux", args...).Run(); err != nil {
		return fmt.Errorf("new-window %s: %w", d, err)
	}
	return nil
}
