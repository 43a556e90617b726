/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/adaryorg/peacock/internal/logging"
)

type Config struct {
	Files   FilesConfig   `toml:"files"`
	History HistoryConfig `toml:"history"`
	Logging LoggingConfig `toml:"logging"`
	Editor  EditorConfig  `toml:"editor"`
	Preview PreviewConfig `toml:"preview"`
	Theme   ThemeConfig   `toml:"theme"`
}

type FilesConfig struct {
	Picklists       string `toml:"picklists"`
	Session         string `toml:"session"`
	History         string `toml:"history"`
	DefaultDocument string `toml:"default_document"`
}

type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

type LoggingConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxAge     int    `toml:"max_age"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
}

type EditorConfig struct {
	TextEditor string `toml:"text_editor"`
}

type PreviewConfig struct {
	SyntaxTheme string `toml:"syntax_theme"`
}

type ThemeConfig struct {
	Header   ColorConfig `toml:"header"`
	Status   ColorConfig `toml:"status"`
	Selected ColorConfig `toml:"selected"`
	Warning  ColorConfig `toml:"warning"`
	Card     ColorConfig `toml:"card"`
	Frame    FrameConfig `toml:"frame"`
}

type FrameConfig struct {
	Border     ColorConfig `toml:"border"`
	Background ColorConfig `toml:"background"`
}

type ColorConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Bold       bool   `toml:"bold"`
}

// Dir returns ~/.config/peacock.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "peacock"), nil
}

// Load reads ~/.config/peacock/config.toml, creating it with defaults first
// if it does not exist.
func Load() (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(configDir, "config.toml"))
}

// LoadFrom reads the config at configPath, creating a default file there
// when it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := createDefaultConfig(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	var config Config
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the built-in configuration without touching the disk.
func Default() (*Config, error) {
	var config Config
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (config *Config) applyDefaults() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}

	if config.Files.Picklists == "" {
		config.Files.Picklists = filepath.Join(configDir, "picklists.json")
	}
	if config.Files.Session == "" {
		config.Files.Session = filepath.Join(configDir, "window_config.json")
	}
	if config.Files.History == "" {
		config.Files.History = filepath.Join(configDir, "history.db")
	}
	if config.Files.DefaultDocument == "" {
		config.Files.DefaultDocument = filepath.Join("examples", "CoSD_SSO_Configuration.json")
	}
	for _, p := range []*string{&config.Files.Picklists, &config.Files.Session, &config.Files.History, &config.Files.DefaultDocument, &config.Logging.File} {
		expanded, err := logging.ExpandHome(*p)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", *p, err)
		}
		*p = expanded
	}

	if config.History.MaxEntries <= 0 {
		config.History.MaxEntries = 200
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.MaxAge <= 0 {
		config.Logging.MaxAge = 28
	}
	if config.Logging.MaxSize <= 0 {
		config.Logging.MaxSize = 10
	}
	if config.Logging.MaxBackups <= 0 {
		config.Logging.MaxBackups = 3
	}

	if config.Editor.TextEditor == "" {
		config.Editor.TextEditor = os.Getenv("EDITOR")
	}
	if config.Editor.TextEditor == "" {
		config.Editor.TextEditor = "nano"
	}

	if config.Preview.SyntaxTheme == "" {
		config.Preview.SyntaxTheme = "monokai"
	}

	if config.Theme.Header.Foreground == "" {
		config.Theme.Header.Foreground = "13"
		config.Theme.Header.Bold = true
	}
	if config.Theme.Status.Foreground == "" {
		config.Theme.Status.Foreground = "8"
	}
	if config.Theme.Selected.Foreground == "" {
		config.Theme.Selected.Foreground = "15"
		config.Theme.Selected.Background = "55"
	}
	if config.Theme.Warning.Foreground == "" {
		config.Theme.Warning.Foreground = "9"
		config.Theme.Warning.Bold = true
	}
	if config.Theme.Card.Foreground == "" {
		config.Theme.Card.Foreground = "240"
	}
	if config.Theme.Frame.Border.Foreground == "" {
		config.Theme.Frame.Border.Foreground = "39"
	}
	return nil
}

func createDefaultConfig(configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	file, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(`[files]
picklists = "~/.config/peacock/picklists.json"
session = "~/.config/peacock/window_config.json"
history = "~/.config/peacock/history.db"
default_document = "examples/CoSD_SSO_Configuration.json"

[history]
max_entries = 200

[logging]
file = "~/.config/peacock/peacock.log"
level = "info"
max_age = 28
max_size = 10
max_backups = 3

[editor]
text_editor = ""

[preview]
syntax_theme = "monokai"

[theme.header]
foreground = "13"
background = ""
bold = true

[theme.status]
foreground = "8"
background = ""
bold = false

[theme.selected]
foreground = "15"
background = "55"
bold = false

[theme.warning]
foreground = "9"
background = ""
bold = true

[theme.card]
foreground = "240"
background = ""
bold = false

[theme.frame.border]
foreground = "39"
background = ""
bold = false

[theme.frame.background]
foreground = ""
background = ""
bold = false
`)

	return err
}
