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

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/adaryorg/peacock/internal/cli/commands"
	"github.com/adaryorg/peacock/internal/clipboard"
	"github.com/adaryorg/peacock/internal/config"
	"github.com/adaryorg/peacock/internal/document"
	"github.com/adaryorg/peacock/internal/logging"
	"github.com/adaryorg/peacock/internal/picklist"
	"github.com/adaryorg/peacock/internal/session"
	"github.com/adaryorg/peacock/internal/storage"
	"github.com/adaryorg/peacock/internal/ui"
	"github.com/adaryorg/peacock/internal/version"
)

func Execute() error {
	return NewRoot().Execute()
}

var runTUI = func(m ui.Model) (ui.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(ui.Model); ok {
		return fm, nil
	}
	return m, nil
}

// screenSize reports the terminal size in cells, 0x0 when stdout is not a
// terminal.
var screenSize = func() (int, int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0, 0
	}
	return w, h
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "peacock [FILE]",
		Short:         "Edit console theme configuration blocks",
		Version:       version.String(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commands.Setup(cmd)
			if err != nil {
				return err
			}
			var path string
			if len(args) > 0 {
				path = args[0]
			}
			return runEditor(cfg, path)
		},
	}
	root.SetVersionTemplate("peacock version {{.Version}}\n")
	root.PersistentFlags().String("config", "", "config file (default ~/.config/peacock/config.toml)")
	root.AddCommand(
		commands.ExportCmd(),
		commands.SummaryCmd(),
		commands.ThemeCmd(),
		commands.PicklistCmd(),
		commands.HistoryCmd(),
		commands.VersionCmd(),
	)
	return root
}

func runEditor(cfg *config.Config, path string) error {
	engine := document.New()
	switch {
	case path != "":
		if err := engine.LoadFile(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	case fileExists(cfg.Files.DefaultDocument):
		path = cfg.Files.DefaultDocument
		if err := engine.LoadFile(path); err != nil {
			logging.Warn("Failed to load default document %s: %v", path, err)
			path = ""
		}
	}

	history, err := storage.New(cfg.Files.History, cfg.History.MaxEntries)
	if err != nil {
		logging.Warn("Export history disabled: %v", err)
		history = nil
	} else {
		defer history.Close()
	}

	screenW, screenH := screenSize()
	m := ui.NewModel(ui.Options{
		Config:    cfg,
		Engine:    engine,
		Path:      path,
		Picklists: picklist.Open(cfg.Files.Picklists),
		History:   history,
		Clipboard: clipboard.System{},
		Placement: session.Load(cfg.Files.Session, screenW, screenH),
	})

	logging.Info("Starting editor")
	final, err := runTUI(m)
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	session.Save(cfg.Files.Session, final.Placement())
	logging.Info("Editor closed")
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
