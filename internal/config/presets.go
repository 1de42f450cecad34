package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"eco": {
		FPS: 12, Theme: "mono",
		Store:  StoreConfig{Backend: "file", Key: "resolvedEvents"},
		Window: WindowConfig{Width: 960, Height: 540, Backend: "ebiten"},
		Log:    LogConfig{File: "linkfield.log"},
	},
	"kiosk": {
		FPS: 60, Theme: "neon",
		Store:  StoreConfig{Backend: "sqlite", Key: "resolvedEvents"},
		Window: WindowConfig{Width: 1920, Height: 1080, Backend: "raylib"},
		Log:    LogConfig{File: "linkfield.log"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
