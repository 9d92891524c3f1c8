package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tmux-chat-ui/internal/app"
	"github.com/atomicstack/tmux-chat-ui/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			Verbose:    true,
			Headless:   true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":   "socket-path",
			"width":    "80",
			"height":   "24",
			"headless": "true",
			"verbose":  "true",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" || flagsValue["height"] != "24" {
		t.Fatalf("expected 80x24, got %v x %v", flagsValue["width"], flagsValue["height"])
	}
	if flagsValue["headless"] != "true" {
		t.Fatalf("expected headless flag true, got %v", flagsValue["headless"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}
	if payload["version"] != version {
		t.Fatalf("expected version in payload, got %v", payload["version"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App.SocketPath != cfg.App.SocketPath || !cfgValue.App.Headless {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd(nil)
	for _, name := range []string{"popout", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v", name, err)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd(nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "tmux-chat-ui "+version) {
		t.Fatalf("unexpected version output %q", out.String())
	}
}

func TestConfigErrorsExitWithUsageStatus(t *testing.T) {
	root := newRootCmd(nil)
	root.SetArgs([]string{"--width", "-3"})
	err := root.Execute()
	if err == nil {
		t.Fatalf("expected configuration error")
	}
	if code := exitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if code := exitCode(errors.New("boom")); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestPopoutRequiresSurface(t *testing.T) {
	root := newRootCmd(nil)
	logFile := filepath.Join(t.TempDir(), "popout.log")
	root.SetArgs([]string{"popout", "--bridge", "/tmp/none.sock", "--log-file", logFile})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected error without a surface id")
	}
}
