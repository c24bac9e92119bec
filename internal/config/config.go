package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"finterm/internal/scheme"
)

const (
	envTheme    = "FINTERM_THEME"
	envRenderer = "FINTERM_RENDERER"

	defaultSymbol = "DEMO"
)

// Store manages the runtime configuration for finterm.
//
// Config is the session view. Theme and Renderer in it may carry session
// overrides (environment, -theme); Save writes the persisted values for those
// two fields, which only SetTheme and SetRenderer change.
type Store struct {
	path      string
	Config    Data
	persisted Data
}

// Data represents persisted user preferences.
type Data struct {
	Theme        string `json:"theme"`
	Renderer     string `json:"renderer"`
	Symbol       string `json:"symbol"`
	CustomScheme string `json:"custom_scheme,omitempty"`
	Overlay      bool   `json:"overlay"`
	Timezone     string `json:"timezone"`
}

// Load retrieves the config from the user config dir, creating defaults if needed.
func Load() (*Store, error) {
	cfgPath, err := resolvePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(cfgPath)
}

// LoadFrom retrieves the config stored at path, creating defaults if needed.
// FINTERM_THEME and FINTERM_RENDERER override the stored values for the
// session without being written back.
func LoadFrom(cfgPath string) (*Store, error) {
	cfg := Data{}
	if _, err := os.Stat(cfgPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
		cfg = defaultConfig()
		if err := writeConfig(cfgPath, cfg); err != nil {
			return nil, err
		}
	} else {
		bytes, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := json.Unmarshal(bytes, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	store := &Store{path: cfgPath, Config: cfg, persisted: cfg}

	if v := strings.TrimSpace(os.Getenv(envTheme)); v != "" {
		store.Config.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(envRenderer)); v != "" {
		store.Config.Renderer = v
	}
	store.Config.normalize()

	return store, nil
}

// Save writes the current config values to disk.
func (s *Store) Save() error {
	if s == nil {
		return errors.New("nil config store")
	}
	out := s.Config
	out.Theme = s.persisted.Theme
	out.Renderer = s.persisted.Renderer
	return writeConfig(s.path, out)
}

// SetTheme selects t for the session and for later saves.
func (s *Store) SetTheme(t scheme.Theme) {
	if s == nil {
		return
	}
	s.Config.Theme = string(t)
	s.persisted.Theme = string(t)
}

// SetRenderer selects k for the session and for later saves.
func (s *Store) SetRenderer(k scheme.Kind) {
	if s == nil {
		return
	}
	s.Config.Renderer = k.String()
	s.persisted.Renderer = k.String()
}

// OverrideTheme selects t for this session only.
func (s *Store) OverrideTheme(t scheme.Theme) {
	if s == nil {
		return
	}
	s.Config.Theme = string(t)
}

// Path returns the config file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Theme returns the configured theme. Unknown names fall back to CLASSIC.
func (s *Store) Theme() scheme.Theme {
	if s == nil {
		return scheme.Classic
	}
	t, err := scheme.ParseTheme(s.Config.Theme)
	if err != nil {
		return scheme.Classic
	}
	return t
}

// Renderer returns the configured renderer kind, defaulting to candlestick.
func (s *Store) Renderer() scheme.Kind {
	if s == nil {
		return scheme.KindCandlestick
	}
	k, err := scheme.ParseKind(s.Config.Renderer)
	if err != nil {
		return scheme.KindCandlestick
	}
	return k
}

func (d *Data) normalize() {
	if d.Theme == "" {
		d.Theme = string(scheme.Classic)
	}
	d.Theme = strings.ToUpper(strings.TrimSpace(d.Theme))
	if d.Renderer == "" {
		d.Renderer = scheme.KindCandlestick.String()
	}
	if d.Symbol == "" {
		d.Symbol = defaultSymbol
	}
	d.CustomScheme = strings.TrimSpace(d.CustomScheme)
	if d.Timezone == "" {
		d.Timezone = defaultTimezone()
	}
}

func resolvePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.Getenv("HOME")
		if base == "" {
			return "", fmt.Errorf("cannot resolve config directory: %w", err)
		}
	}
	dir := filepath.Join(base, "finterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, "config.json"), nil
}

func writeConfig(path string, cfg Data) error {
	bytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig() Data {
	return Data{
		Theme:    string(scheme.Classic),
		Renderer: scheme.KindCandlestick.String(),
		Symbol:   defaultSymbol,
		Overlay:  true,
		Timezone: defaultTimezone(),
	}
}

func defaultTimezone() string {
	if locName := time.Now().Location().String(); locName != "Local" && locName != "" {
		return locName
	}
	return "UTC"
}

// Location returns the configured timezone Location, defaulting to UTC on error.
func (s *Store) Location() *time.Location {
	if s == nil {
		return time.UTC
	}
	if loc, err := time.LoadLocation(s.Config.Timezone); err == nil {
		return loc
	}
	return time.UTC
}
