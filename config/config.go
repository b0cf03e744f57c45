package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	TabSize           int    `json:"tab_size"`
	Theme             string `json:"theme"`
	UndoCoalesce      bool   `json:"undo_coalesce"`
	TrimTrailingSpace bool   `json:"trim_trailing_whitespace"`
}

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	Selection   tcell.Color
	Match       tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	PromptBg    tcell.Color
	PromptFg    tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		Selection:   tcell.ColorDarkBlue,
		Match:       tcell.ColorDarkGoldenrod,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		PromptBg:    tcell.ColorDarkBlue,
		PromptFg:    tcell.ColorWhite,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		Selection:   tcell.ColorLightBlue,
		Match:       tcell.ColorYellow,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		PromptBg:    tcell.ColorLightBlue,
		PromptFg:    tcell.ColorBlack,
	},
}

func Default() *Config {
	return &Config{
		TabSize:           4,
		Theme:             "dark",
		UndoCoalesce:      true,
		TrimTrailingSpace: false,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	if t, ok := Themes[c.Theme]; ok {
		return t
	}
	return Themes["dark"]
}

func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mako", "config.json"), nil
}

// Load reads the user config, falling back to defaults for anything
// missing or unreadable.
func Load() (*Config, error) {
	cfg := Default()
	path, err := configPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	if cfg.TabSize < 1 || cfg.TabSize > 16 {
		cfg.TabSize = 4
	}
	return cfg, nil
}

// Save writes the config back, creating the directory on first use.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
