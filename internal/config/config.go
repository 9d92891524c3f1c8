package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/tmux-chat-ui/internal/app"
	"github.com/atomicstack/tmux-chat-ui/internal/bridge"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Settings Settings
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSocketPath      = "TMUX_CHAT_UI_SOCKET"
	envWidth           = "TMUX_CHAT_UI_WIDTH"
	envHeight          = "TMUX_CHAT_UI_HEIGHT"
	envVerbose         = "TMUX_CHAT_UI_VERBOSE"
	envHeadless        = "TMUX_CHAT_UI_HEADLESS"
	envTrace           = "TMUX_CHAT_UI_TRACE"
	envLogFile         = "TMUX_CHAT_UI_LOG_FILE"
	envConfigFile      = "TMUX_CHAT_UI_CONFIG"
	envInterfaceSounds = "TMUX_CHAT_UI_INTERFACE_SOUNDS"
	envLocaleFile      = "TMUX_CHAT_UI_LOCALE_FILE"

	// EnvBridge and EnvSurface are injected into pop-out surfaces.
	EnvBridge  = bridge.EnvSocket
	EnvSurface = bridge.EnvSurface
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("tmux-chat-ui", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "track pop-out surfaces without tmux")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to the YAML settings file")
	sounds := fs.Bool("interface-sounds", false, "play a sound on navigation")
	locale := fs.String("locale-file", "", "YAML catalog overriding the built-in labels")
	source := fs.String("source", "", "media source shown by the call player")
	attachments := fs.StringSlice("attach", nil, "file names shown in the attachment strip")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	settingsPath := *configFile
	if settingsPath == "" {
		if p, err := DefaultSettingsPath(); err == nil {
			settingsPath = p
		}
	}
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return Config{}, err
	}
	if _, ok := env[envInterfaceSounds]; ok {
		settings.InterfaceSounds = envOrBool(env, envInterfaceSounds, settings.InterfaceSounds)
	}
	if v := envOrDefault(env, envLocaleFile, ""); v != "" {
		settings.LocaleFile = v
	}
	if fs.Changed("interface-sounds") {
		settings.InterfaceSounds = *sounds
	}
	if fs.Changed("locale-file") {
		settings.LocaleFile = *locale
	}
	if fs.Changed("source") {
		settings.MediaSource = *source
	}
	if settings.MediaSource == "" {
		settings.MediaSource = app.DefaultMediaSource
	}

	cfg := Config{
		App: app.Config{
			SocketPath:      *socket,
			Width:           *width,
			Height:          *height,
			Verbose:         *verbose,
			Headless:        *headless,
			InterfaceSounds: settings.InterfaceSounds,
			SidebarHidden:   settings.SidebarHidden,
			LocaleFile:      settings.LocaleFile,
			ExtensionsDir:   settings.ExtensionsDir,
			MediaSource:     settings.MediaSource,
			Attachments:     append([]string(nil), (*attachments)...),
			Extensions:      settings.Extensions,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Settings: settings,
		Flags: map[string]string{
			"socket":          *socket,
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"trace":           strconv.FormatBool(*trace),
			"verbose":         strconv.FormatBool(*verbose),
			"headless":        strconv.FormatBool(*headless),
			"logFile":         *logFile,
			"config":          settingsPath,
			"interfaceSounds": strconv.FormatBool(settings.InterfaceSounds),
		},
		Args: append([]string(nil), args...),
	}

	if settingsPath != "" {
		cfg.App.PersistExtensions = extensionsSaver(settingsPath, settings)
	}
	return cfg, nil
}

// extensionsSaver writes extension switches back to the settings file the
// configuration was loaded from.
func extensionsSaver(path string, base Settings) func(map[string]bool) error {
	return func(enabled map[string]bool) error {
		current, err := LoadSettings(path)
		if err != nil {
			current = base
		}
		current.Extensions = enabled
		return SaveSettings(path, current)
	}
}

// LoadPopoutArgs parses the arguments of the pop-out surface process. The
// bridge socket and surface id fall back to the variables the window manager
// injects into the surface environment.
func LoadPopoutArgs(args []string, environ []string) (app.PopoutConfig, Logging, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("tmux-chat-ui popout", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket")
	bridgeSocket := fs.String("bridge", envOrDefault(env, EnvBridge, ""), "unix socket of the host bridge")
	surface := fs.String("surface", envOrDefault(env, EnvSurface, ""), "surface id assigned by the window manager")
	source := fs.String("source", app.DefaultMediaSource, "media source")
	startAt := fs.Duration("start-at", 0, "playback position handed over by the embedded player")
	silenced := fs.Bool("silenced", false, "start muted")
	locale := fs.String("locale-file", envOrDefault(env, envLocaleFile, ""), "YAML catalog overriding the built-in labels")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return app.PopoutConfig{}, Logging{}, err
	}
	if *startAt < 0 {
		return app.PopoutConfig{}, Logging{}, fmt.Errorf("start-at must be >= 0 (got %s)", *startAt)
	}

	cfg := app.PopoutConfig{
		SocketPath:   *socket,
		BridgeSocket: *bridgeSocket,
		SurfaceID:    *surface,
		Source:       *source,
		StartAt:      *startAt,
		Silenced:     *silenced,
		LocaleFile:   *locale,
	}
	return cfg, Logging{FilePath: *logFile, Trace: *trace}, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.App.MediaSource) == "" {
		return fmt.Errorf("media source must not be empty")
	}
	return nil
}
