// Package app wires the long-lived collaborators of the main window and of
// the pop-out surface process, then runs their Bubble Tea programs.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atomicstack/tmux-chat-ui/internal/backend"
	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/atomicstack/tmux-chat-ui/internal/i18n"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/atomicstack/tmux-chat-ui/internal/popout"
	"github.com/atomicstack/tmux-chat-ui/internal/sound"
	"github.com/atomicstack/tmux-chat-ui/internal/state"
	"github.com/atomicstack/tmux-chat-ui/internal/tmux"
	"github.com/atomicstack/tmux-chat-ui/internal/ui"
	"github.com/atomicstack/tmux-chat-ui/internal/window"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	watchInterval = 1500 * time.Millisecond
	dialTimeout   = 5 * time.Second
)

// Run bootstraps and executes the main window program.
func Run(cfg Config) error {
	windows, socketPath, err := newWindowManager(cfg)
	if err != nil {
		return err
	}
	loc, err := i18n.Load(cfg.LocaleFile)
	if err != nil {
		// The built-in catalog is still usable.
		logging.Error(err)
	}

	srv, err := bridge.Listen(bridge.DefaultSocketPath())
	if err != nil {
		return fmt.Errorf("start bridge: %w", err)
	}
	defer srv.Close()

	store := state.New(initialState(cfg))
	defer store.Close()

	watcher := backend.NewWatcher(store, watchInterval)
	defer watcher.Stop()

	popoutCmd, err := popoutCommand(socketPath)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Store:             store,
		Windows:           windows,
		Bridge:            srv,
		Watcher:           watcher,
		Sounds:            sound.NewPlayer(cfg.InterfaceSounds),
		Loc:               loc,
		Width:             cfg.Width,
		Height:            cfg.Height,
		Verbose:           cfg.Verbose,
		PopoutCommand:     popoutCmd,
		BridgeSocket:      srv.SocketPath(),
		MediaSource:       cfg.MediaSource,
		Attachments:       cfg.Attachments,
		ExtensionsDir:     cfg.ExtensionsDir,
		Extensions:        cfg.Extensions,
		PersistExtensions: cfg.PersistExtensions,
	})
	defer model.Close()
	defer closeSurfaces(windows, store)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newWindowManager(cfg Config) (window.Manager, string, error) {
	if cfg.Headless || !tmux.Available(cfg.SocketPath) {
		return window.NewDetachedManager(), "", nil
	}
	socketPath, err := tmux.ResolveSocketPath(cfg.SocketPath)
	if err != nil {
		return nil, "", fmt.Errorf("resolve socket path: %w", err)
	}
	return window.NewTmuxManager(socketPath, tmux.CurrentPane()), socketPath, nil
}

func initialState(cfg Config) state.State {
	return state.State{
		UI: state.UiState{SidebarHidden: cfg.SidebarHidden},
		Call: state.CallState{Current: &state.CallInfo{
			ID:     uuid.NewString(),
			Source: cfg.MediaSource,
		}},
	}
}

func popoutCommand(socketPath string) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	cmd := []string{exe, "popout"}
	if socketPath != "" {
		cmd = append(cmd, "--socket", socketPath)
	}
	return cmd, nil
}

// closeSurfaces closes any pop-out still tracked when the main window exits.
func closeSurfaces(windows window.Manager, store *state.Store) {
	h, ok := store.Snapshot().UI.PopoutPlayer()
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := windows.Close(ctx, h); err != nil {
		logging.Error(err)
		return
	}
	events.Popout.Close(h.ID(), "exit")
}

// RunPopout runs the pop-out surface program. The host is told about the
// close exactly once, whether the user closed the surface or the process is
// being torn down.
func RunPopout(cfg PopoutConfig) error {
	if cfg.SurfaceID == "" {
		return errors.New("surface id required")
	}
	if cfg.BridgeSocket == "" {
		return errors.New("bridge socket required")
	}
	events.App.PopoutStart(cfg.SurfaceID, cfg.BridgeSocket)
	loc, err := i18n.Load(cfg.LocaleFile)
	if err != nil {
		logging.Error(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	link, err := bridge.Dial(ctx, cfg.BridgeSocket, cfg.SurfaceID)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to host: %w", err)
	}
	defer link.Close()

	socketPath := cfg.SocketPath
	pane := tmux.CurrentPane()
	model := popout.New(popout.Config{
		Surface:  cfg.SurfaceID,
		Source:   cfg.Source,
		StartAt:  cfg.StartAt,
		Silenced: cfg.Silenced,
		Link:     link,
		Loc:      loc,
		Fullscreen: func() error {
			if pane == "" {
				return window.ErrUnsupported
			}
			return tmux.ToggleZoom(socketPath, pane)
		},
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(signals)
	go func() {
		if sig, ok := <-signals; ok {
			program.Send(popout.HostCloseMsg{Reason: sig.String()})
		}
	}()

	final, err := program.Run()
	if m, ok := final.(popout.Model); ok && !m.Closed() {
		if sendErr := link.Send(bridge.Event{Kind: bridge.KindClose}); sendErr != nil && !errors.Is(sendErr, bridge.ErrClosed) {
			logging.Error(sendErr)
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
