package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS    = 30
	DefaultTheme  = "midnight"
	DefaultWidth  = 1280
	DefaultHeight = 720
	EnvPrefix     = "LINKFIELD"
)

var (
	ErrInvalidFPS     = errors.New("config: fps must be positive")
	ErrInvalidSize    = errors.New("config: window size must be positive")
	ErrUnknownBackend = errors.New("config: unknown backend")
)

type Config struct {
	FPS    int          `yaml:"fps" toml:"fps" mapstructure:"fps"`
	Seed   int64        `yaml:"seed" toml:"seed" mapstructure:"seed"`
	Theme  string       `yaml:"theme" toml:"theme" mapstructure:"theme"`
	Store  StoreConfig  `yaml:"store" toml:"store" mapstructure:"store"`
	Window WindowConfig `yaml:"window" toml:"window" mapstructure:"window"`
	Log    LogConfig    `yaml:"log" toml:"log" mapstructure:"log"`
}

type StoreConfig struct {
	Backend string `yaml:"backend" toml:"backend" mapstructure:"backend"`
	Path    string `yaml:"path" toml:"path" mapstructure:"path"`
	Key     string `yaml:"key" toml:"key" mapstructure:"key"`
}

type WindowConfig struct {
	Width   int    `yaml:"width" toml:"width" mapstructure:"width"`
	Height  int    `yaml:"height" toml:"height" mapstructure:"height"`
	Backend string `yaml:"backend" toml:"backend" mapstructure:"backend"`
}

type LogConfig struct {
	Debug bool   `yaml:"debug" toml:"debug" mapstructure:"debug"`
	File  string `yaml:"file" toml:"file" mapstructure:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Store: StoreConfig{
			Backend: "file",
			Key:     "resolvedEvents",
		},
		Window: WindowConfig{
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			Backend: "raylib",
		},
		Log: LogConfig{File: "linkfield.log"},
	}
}

// DataDir is where stores and logs live unless configured otherwise.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".linkfield"
	}
	return filepath.Join(home, ".local", "share", "linkfield")
}

// Load reads path (when non-empty) on top of the defaults. Environment
// variables with prefix LINKFIELD_ override both, e.g. LINKFIELD_STORE_BACKEND.
func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith is Load with base, typically a preset, in place of the defaults.
func LoadWith(path string, base *Config) (*Config, error) {
	if base == nil {
		base = DefaultConfig()
	}
	v := viper.New()
	setDefaults(v, base)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("fps", d.FPS)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.key", d.Store.Key)
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.backend", d.Window.Backend)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.file", d.Log.File)
}

// Save writes cfg as TOML when path ends in .toml and as YAML otherwise.
func Save(path string, cfg *Config) error {
	data, err := Encode(path, cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Encode renders cfg in the format implied by path's extension.
func Encode(path string, cfg *Config) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFPS, c.FPS)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Window.Width, c.Window.Height)
	}
	switch c.Store.Backend {
	case "", "file", "sqlite", "memory":
	default:
		return fmt.Errorf("%w: store %q", ErrUnknownBackend, c.Store.Backend)
	}
	switch c.Window.Backend {
	case "", "raylib", "ebiten":
	default:
		return fmt.Errorf("%w: window %q", ErrUnknownBackend, c.Window.Backend)
	}
	return nil
}

// StorePath resolves the store location, falling back to a file under dataDir
// named after the backend.
func (c *Config) StorePath(dataDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if dataDir == "" {
		dataDir = DataDir()
	}
	if c.Store.Backend == "sqlite" {
		return filepath.Join(dataDir, "counter.db")
	}
	return filepath.Join(dataDir, "counter.json")
}

// LogPath resolves a relative log file against dataDir.
func (c *Config) LogPath(dataDir string) string {
	if c.Log.File == "" || filepath.IsAbs(c.Log.File) {
		return c.Log.File
	}
	if dataDir == "" {
		dataDir = DataDir()
	}
	return filepath.Join(dataDir, c.Log.File)
}
