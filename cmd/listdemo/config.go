package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/BurntSushi/toml"
	"github.com/ayn2op/listview/term"
	"github.com/gdamore/tcell/v2"
)

type ColorsConfig struct {
	Background  string `toml:"background"`
	Cursor      string `toml:"cursor"`
	Border      string `toml:"border"`
	FocusBorder string `toml:"focus_border"`
	Text        string `toml:"text"`
	DropTarget  string `toml:"drop_target"`
}

type LogConfig struct {
	File  string     `toml:"file"`
	Level slog.Level `toml:"level"`
}

type Config struct {
	Items           int          `toml:"items"`
	Wrap            bool         `toml:"wrap"`
	SmoothScrolling bool         `toml:"smooth_scrolling"`
	Border          string       `toml:"border"`
	Colors          ColorsConfig `toml:"colors"`
	Log             LogConfig    `toml:"log"`
}

func defaultConfig() Config {
	return Config{
		Items:  1000,
		Border: "round",
		Log:    LogConfig{Level: slog.LevelInfo},
	}
}

// loadConfig reads path over the defaults. A missing file is not an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Items < 0 {
		return fmt.Errorf("items must not be negative, got %d", c.Items)
	}
	switch c.Border {
	case "plain", "round", "thick":
	default:
		return fmt.Errorf("unknown border set %q", c.Border)
	}
	return nil
}

// applyColors sets the theme from the configured colors. Unknown colors keep
// the default.
func (c ColorsConfig) applyColors(logger *slog.Logger) {
	for _, color := range []struct {
		name  string
		value string
		dst   *tcell.Color
	}{
		{"background", c.Background, &term.Styles.PrimitiveBackgroundColor},
		{"cursor", c.Cursor, &term.Styles.ContrastBackgroundColor},
		{"border", c.Border, &term.Styles.BorderColor},
		{"focus_border", c.FocusBorder, &term.Styles.FocusBorderColor},
		{"text", c.Text, &term.Styles.PrimaryTextColor},
		{"drop_target", c.DropTarget, &term.Styles.DropTargetColor},
	} {
		if color.value == "" {
			continue
		}
		parsed, ok := term.ParseColor(color.value)
		if !ok {
			logger.Warn("unknown color", "name", color.name, "value", color.value)
			continue
		}
		*color.dst = parsed
	}
}
