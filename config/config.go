// Package config reads the hyprfresh TOML configuration file.
//
// Every key is optional. Absent keys keep the values from Default:
//
//	[general]
//	idle_timeout = 300
//	poll_interval = 1000
//	session_idle = true
//	session_idle_timeout = 600
//
//	[monitors.DP-1]
//	idle_timeout = 120
//	screensaver = "starfield"
//
//	[screensaver]
//	name = "matrix"
//	fps = 30
//	opacity = 1.0
//	shader_dir = "~/.config/hypr/hyprfresh/shaders"
//
//	[screensaver.options]
//	speed = 1.5
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/saver"
)

// DefaultFile is the configuration path used when none is given.
const DefaultFile = "~/.config/hypr/hyprfresh.toml"

// Sentinel errors returned by Validate.
var (
	ErrInvalidFPS     = errors.New("config: fps must be positive")
	ErrInvalidOpacity = errors.New("config: opacity must be within [0, 1]")
	ErrInvalidTimeout = errors.New("config: timeouts must be positive")
)

// Config is the top-level configuration.
type Config struct {
	General     General            `toml:"general"`
	Monitors    map[string]Monitor `toml:"monitors"`
	Screensaver Screensaver        `toml:"screensaver"`
}

// General holds daemon-wide settings.
type General struct {
	// IdleTimeout is the per-monitor idle timeout in seconds.
	IdleTimeout uint64 `toml:"idle_timeout"`

	// PollInterval is the cursor poll period in milliseconds.
	PollInterval uint64 `toml:"poll_interval"`

	// SessionIdle also triggers on session-wide idle.
	SessionIdle bool `toml:"session_idle"`

	// SessionIdleTimeout is the session-wide idle timeout in seconds.
	SessionIdleTimeout uint64 `toml:"session_idle_timeout"`
}

// Monitor holds per-output overrides. Nil fields fall back to the global
// settings.
type Monitor struct {
	IdleTimeout *uint64 `toml:"idle_timeout"`
	Screensaver *string `toml:"screensaver"`
	Disabled    bool    `toml:"disabled"`
}

// Screensaver holds rendering settings.
type Screensaver struct {
	Name      string        `toml:"name"`
	FPS       uint32        `toml:"fps"`
	Opacity   float64       `toml:"opacity"`
	ShaderDir string        `toml:"shader_dir"`
	Options   saver.Options `toml:"options"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		General: General{
			IdleTimeout:        300,
			PollInterval:       1000,
			SessionIdle:        true,
			SessionIdleTimeout: 600,
		},
		Monitors: map[string]Monitor{},
		Screensaver: Screensaver{
			Name:      "matrix",
			FPS:       30,
			Opacity:   1,
			ShaderDir: "~/.config/hypr/hyprfresh/shaders",
			Options:   saver.Options{},
		},
	}
}

// Parse decodes a configuration document over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	warnUndecoded(md, "")
	return cfg, nil
}

// Load reads and decodes the file at path over the defaults. A leading "~/"
// is expanded.
func Load(path string) (Config, error) {
	path = ExpandPath(path)
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	warnUndecoded(md, path)
	return cfg, nil
}

// LoadOrDefault is Load that falls back to Default on any error. The error
// is still returned so the caller can report it.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

func warnUndecoded(md toml.MetaData, path string) {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	saver.Logger().Warn("config: unknown keys", "path", path, "keys", strings.Join(names, ", "))
}

// Validate reports settings that no host can honour.
func (c Config) Validate() error {
	var errs []error
	if c.Screensaver.FPS == 0 {
		errs = append(errs, ErrInvalidFPS)
	}
	if c.Screensaver.Opacity < 0 || c.Screensaver.Opacity > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidOpacity, c.Screensaver.Opacity))
	}
	if c.General.IdleTimeout == 0 || (c.General.SessionIdle && c.General.SessionIdleTimeout == 0) {
		errs = append(errs, ErrInvalidTimeout)
	}
	for name, m := range c.Monitors {
		if m.IdleTimeout != nil && *m.IdleTimeout == 0 {
			errs = append(errs, fmt.Errorf("%w: monitor %s", ErrInvalidTimeout, name))
		}
	}
	return errors.Join(errs...)
}

// ScreensaverFor returns the effect name to run on monitor.
func (c Config) ScreensaverFor(monitor string) string {
	if m, ok := c.Monitors[monitor]; ok && m.Screensaver != nil {
		return *m.Screensaver
	}
	return c.Screensaver.Name
}

// IdleTimeoutFor returns the idle timeout of monitor.
func (c Config) IdleTimeoutFor(monitor string) time.Duration {
	secs := c.General.IdleTimeout
	if m, ok := c.Monitors[monitor]; ok && m.IdleTimeout != nil {
		secs = *m.IdleTimeout
	}
	return time.Duration(secs) * time.Second
}

// Enabled reports whether the screensaver may run on monitor.
func (c Config) Enabled(monitor string) bool {
	m, ok := c.Monitors[monitor]
	return !ok || !m.Disabled
}

// FrameInterval returns the time between frames at the configured FPS.
func (c Config) FrameInterval() time.Duration {
	if c.Screensaver.FPS == 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Screensaver.FPS)
}

// PollPeriod returns the cursor poll period.
func (g General) PollPeriod() time.Duration {
	return time.Duration(g.PollInterval) * time.Millisecond
}

// ExpandPath replaces a leading "~/" with the home directory. Other paths,
// and paths that cannot be expanded, are returned unchanged.
func ExpandPath(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}

// DefaultPath returns DefaultFile with the home directory expanded.
func DefaultPath() string {
	return ExpandPath(DefaultFile)
}
