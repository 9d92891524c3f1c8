package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const waitTimeout = 10 * time.Second

// within returns a context that expires d from now and is cancelled when the
// test ends.
func within(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}

func TestPopoutRoundTripInTmux(t *testing.T) {
	bin := BuildBinary(t)
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		AssertNoServerCrash(t, logDir)
	})
	session := "chat"
	window := session + ":0"
	pane := window + ".0"
	scriptDir := t.TempDir()
	exitFile := filepath.Join(scriptDir, "exit-code")
	scriptPath := filepath.Join(scriptDir, "run.sh")
	script := "#!/bin/sh\n" +
		"\"$CHAT_BIN\" --socket \"$CHAT_SOCKET\" --width 80 --height 24 --log-file \"$CHAT_LOG\"\n" +
		"printf '%s' $? > \"$CHAT_EXIT\"\n" +
		"sleep 300\n"
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	cmd := tmuxCommand(socket, "new-session", "-d", "-x", "120", "-y", "30", "-s", session,
		"-e", "CHAT_BIN="+bin,
		"-e", "CHAT_SOCKET="+socket,
		"-e", "CHAT_EXIT="+exitFile,
		"-e", "CHAT_LOG="+filepath.Join(scriptDir, "chat.log"),
		scriptPath)
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := tmuxCommand(socket, "has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}

	WaitForText(t, within(t, waitTimeout), socket, pane, "p pop-out", exitFile)

	if err := SendKeys(socket, pane, "p"); err != nil {
		t.Fatalf("send-keys: %v", err)
	}
	WaitForPanes(t, within(t, waitTimeout), socket, window, 2)
	WaitForText(t, within(t, waitTimeout), socket, pane, "Playing in pop-out window", exitFile)

	if err := SendKeys(socket, pane, "p"); err != nil {
		t.Fatalf("send-keys: %v", err)
	}
	WaitForPanes(t, within(t, waitTimeout), socket, window, 1)

	_ = SendKeys(socket, pane, "q")
	_ = tmuxCommand(socket, "kill-session", "-t", session).Run()
}
