package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

func baseArgs(socketPath string) []string {
	if strings.TrimSpace(socketPath) == "" {
		return []string{}
	}
	return []string{"-S", socketPath}
}

// Available reports whether the process runs inside tmux or was pointed at a
// tmux socket explicitly.
func Available(socketPath string) bool {
	if strings.TrimSpace(socketPath) != "" {
		return true
	}
	return strings.TrimSpace(os.Getenv("TMUX")) != ""
}

// ResolveSocketPath picks the tmux socket from the flag, the environment, or
// the tmux default location.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

// CurrentPane returns the pane the process runs in, if any.
func CurrentPane() string {
	return strings.TrimSpace(os.Getenv("TMUX_PANE"))
}
