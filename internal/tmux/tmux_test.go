package tmux

import (
	"errors"
	"strings"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type stubCommander struct {
	output []byte
	err    error
}

func (s *stubCommander) Run() error {
	return s.err
}

func (s *stubCommander) Output() ([]byte, error) {
	return s.output, s.err
}

func withStubCommander(t *testing.T, fn func(name string, args ...string) commander) {
	t.Helper()
	prev := runExecCommand
	runExecCommand = fn
	t.Cleanup(func() { runExecCommand = prev })
}

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

type fakeClient struct {
	panes    []*gotmux.Pane
	panesErr error
	closed   int
}

func (f *fakeClient) ListAllPanes() ([]*gotmux.Pane, error) {
	if f.panesErr != nil {
		return nil, f.panesErr
	}
	return f.panes, nil
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func TestSplitPaneBuildsArguments(t *testing.T) {
	var gotArgs []string
	withStubCommander(t, func(name string, args ...string) commander {
		gotArgs = args
		return &stubCommander{output: []byte("%42\n")}
	})
	id, err := SplitPane("/tmp/sock", SplitOptions{
		Target:     "%1",
		Horizontal: true,
		Size:       "40%",
		Env:        map[string]string{"B": "2", "A": "1"},
		Command:    []string{"/bin/app", "popout"},
	})
	if err != nil {
		t.Fatalf("SplitPane returned error: %v", err)
	}
	if id != "%42" {
		t.Fatalf("expected pane id %%42, got %q", id)
	}
	joined := strings.Join(gotArgs, " ")
	want := "-S /tmp/sock split-window -P -F #{pane_id} -h -l 40% -t %1 -e A=1 -e B=2 /bin/app popout"
	if joined != want {
		t.Fatalf("unexpected args\n got: %s\nwant: %s", joined, want)
	}
}

func TestSplitPaneRequiresCommand(t *testing.T) {
	if _, err := SplitPane("", SplitOptions{}); err == nil {
		t.Fatalf("expected error without command")
	}
}

func TestSplitPaneEmptyOutput(t *testing.T) {
	withStubCommander(t, func(name string, args ...string) commander {
		return &stubCommander{output: []byte("  \n")}
	})
	if _, err := SplitPane("", SplitOptions{Command: []string{"true"}}); err == nil {
		t.Fatalf("expected error for empty pane id")
	}
}

func TestKillPaneRequiresTarget(t *testing.T) {
	if err := KillPane("", " "); err == nil {
		t.Fatalf("expected error for empty target")
	}
}

func TestToggleZoomTargetsPane(t *testing.T) {
	var gotArgs []string
	withStubCommander(t, func(name string, args ...string) commander {
		gotArgs = args
		return &stubCommander{}
	})
	if err := ToggleZoom("", "%7"); err != nil {
		t.Fatalf("ToggleZoom returned error: %v", err)
	}
	if strings.Join(gotArgs, " ") != "resize-pane -Z -t %7" {
		t.Fatalf("unexpected args %v", gotArgs)
	}
}

func TestPaneExists(t *testing.T) {
	fake := &fakeClient{panes: []*gotmux.Pane{{Id: "%1"}, {Id: "%9"}}}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	ok, err := PaneExists("", "%9")
	if err != nil || !ok {
		t.Fatalf("expected %%9 to exist, got %v %v", ok, err)
	}
	ok, err = PaneExists("", "%3")
	if err != nil || ok {
		t.Fatalf("expected %%3 to be missing, got %v %v", ok, err)
	}
	if fake.closed != 2 {
		t.Fatalf("expected client closed after each query, got %d", fake.closed)
	}
}

func TestPaneExistsPropagatesErrors(t *testing.T) {
	fake := &fakeClient{panesErr: errors.New("no server")}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })
	if _, err := PaneExists("", "%1"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewWindowAtRequiresDir(t *testing.T) {
	if err := NewWindowAt("", "", "ext"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
