package tmux

import (
	"fmt"
	"sort"
	"strings"
)

// SplitPane creates a pane running opts.Command and returns its pane id.
func SplitPane(socketPath string, opts SplitOptions) (string, error) {
	if len(opts.Command) == 0 {
		return "", fmt.Errorf("split-window: command required")
	}
	args := append(baseArgs(socketPath), "split-window", "-P", "-F", "#{pane_id}")
	if opts.Horizontal {
		args = append(args, "-h")
	}
	if opts.Detached {
		args = append(args, "-d")
	}
	if size := strings.TrimSpace(opts.Size); size != "" {
		args = append(args, "-l", size)
	}
	if target := strings.TrimSpace(opts.Target); target != "" {
		args = append(args, "-t", target)
	}
	keys := make([]string, 0, len(opts.Env))
	for k := range opts.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-e", k+"="+opts.Env[k])
	}
	args = append(args, opts.Command...)
	out, err := runExecCommand("tmux", args...).Output()
	if err != nil {
		return "", fmt.Errorf("split-window: %w", err)
	}
	id := strings.TrimSpace(string(out))
	if id == "" {
		return "", fmt.Errorf("split-window: no pane id returned")
	}
	return id, nil
}

// KillPane closes a pane.
func KillPane(socketPath, target string) error {
	t := strings.TrimSpace(target)
	if t == "" {
		return fmt.Errorf("pane target required")
	}
	args := append(baseArgs(socketPath), "kill-pane", "-t", t)
	return runExecCommand("tmux", args...).Run()
}

// ToggleZoom zooms or unzooms a pane, the terminal analogue of fullscreen.
func ToggleZoom(socketPath, target string) error {
	args := append(baseArgs(socketPath), "resize-pane", "-Z")
	if t := strings.TrimSpace(target); t != "" {
		args = append(args, "-t", t)
	}
	return runExecCommand("tmux", args...).Run()
}

// FetchPanes lists every pane on the server.
func FetchPanes(socketPath string) ([]Pane, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()
	panes, err := client.ListAllPanes()
	if err != nil {
		return nil, err
	}
	out := make([]Pane, 0, len(panes))
	for _, p := range panes {
		if p == nil {
			continue
		}
		out = append(out, Pane{
			ID:     p.Id,
			Title:  p.Title,
			Width:  p.Width,
			Height: p.Height,
			Active: p.Active,
		})
	}
	return out, nil
}

// PaneExists reports whether the pane id is still present on the server.
func PaneExists(socketPath, paneID string) (bool, error) {
	panes, err := FetchPanes(socketPath)
	if err != nil {
		return false, err
	}
	for _, p := range panes {
		if p.ID == paneID {
			return true, nil
		}
	}
	return false, nil
}
