package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

const (
	appName      = "tmux-chat-ui"
	settingsFile = "config.yaml"
)

// Settings is the persisted portion of the configuration.
type Settings struct {
	InterfaceSounds bool            `yaml:"interface_sounds"`
	SidebarHidden   bool            `yaml:"sidebar_hidden"`
	LocaleFile      string          `yaml:"locale_file,omitempty"`
	ExtensionsDir   string          `yaml:"extensions_dir,omitempty"`
	MediaSource     string          `yaml:"media_source,omitempty"`
	Extensions      map[string]bool `yaml:"extensions,omitempty"`
}

// ConfigDir returns the platform configuration directory for the application:
//   - Linux: $XDG_CONFIG_HOME/tmux-chat-ui or $HOME/.config/tmux-chat-ui
//   - macOS: $HOME/.config/tmux-chat-ui
//   - Windows: %LOCALAPPDATA%\tmux-chat-ui
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// DefaultSettingsPath returns the settings file inside ConfigDir.
func DefaultSettingsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// DefaultExtensionsDir is used when the settings file names none.
func DefaultExtensionsDir() string {
	dir, err := ConfigDir()
	if err != nil {
		return "extensions"
	}
	return filepath.Join(dir, "extensions")
}

// LoadSettings reads the YAML settings file. A missing file yields defaults.
func LoadSettings(path string) (Settings, error) {
	settings := Settings{}
	if path == "" {
		return withDefaults(settings), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return withDefaults(settings), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return withDefaults(settings), nil
}

// SaveSettings writes the settings file, creating its directory if needed.
func SaveSettings(path string, settings Settings) error {
	if path == "" {
		return fmt.Errorf("settings path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func withDefaults(s Settings) Settings {
	if s.ExtensionsDir == "" {
		s.ExtensionsDir = DefaultExtensionsDir()
	}
	return s
}
