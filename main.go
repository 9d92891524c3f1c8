package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/tmux-chat-ui/internal/app"
	"github.com/atomicstack/tmux-chat-ui/internal/config"
	"github.com/atomicstack/tmux-chat-ui/internal/logging"
	"github.com/atomicstack/tmux-chat-ui/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

// usageError marks configuration problems, which exit with status 2.
type usageError struct {
	err error
}

func (e usageError) Error() string { return "Configuration error: " + e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func main() {
	if err := newRootCmd(os.Environ()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var usage usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// newRootCmd builds the command tree. Flags are parsed by the config package
// so environment fallbacks and the settings file apply uniformly.
func newRootCmd(environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:                "tmux-chat-ui",
		Short:              "Terminal chat client with a pop-out call player",
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMain(args, environ)
		},
	}
	root.AddCommand(&cobra.Command{
		Use:                "popout",
		Short:              "Run the pop-out player surface (started by the main window)",
		Hidden:             true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopout(args, environ)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "tmux-chat-ui "+version)
		},
	})
	return root
}

func runMain(args, environ []string) error {
	runtimeCfg, err := config.LoadArgs(args, environ)
	if err != nil {
		return usageError{err}
	}
	if err := config.Validate(runtimeCfg); err != nil {
		return usageError{err}
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)
	defer logging.Sync()

	traceStartup(runtimeCfg)

	err = app.Run(runtimeCfg.App)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
	}
	return err
}

func runPopout(args, environ []string) error {
	popoutCfg, logCfg, err := config.LoadPopoutArgs(args, environ)
	if err != nil {
		return usageError{err}
	}
	logging.Configure(logCfg.FilePath)
	logging.SetTraceEnabled(logCfg.Trace)
	defer logging.Sync()

	err = app.RunPopout(popoutCfg)
	events.App.Exit(err)
	if err != nil {
		logging.Error(err)
	}
	return err
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"version": version,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
