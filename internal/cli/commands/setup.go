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

// Package commands holds the headless peacock subcommands.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/adaryorg/peacock/internal/config"
	"github.com/adaryorg/peacock/internal/document"
	"github.com/adaryorg/peacock/internal/logging"
	"github.com/adaryorg/peacock/internal/picklist"
	"github.com/adaryorg/peacock/internal/storage"
)

// Setup loads the configuration named by the inherited --config flag and
// starts file logging.
func Setup(cmd *cobra.Command) (*config.Config, error) {
	var path string
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := logging.Init(logging.Options{
		File:       cfg.Logging.File,
		Level:      cfg.Logging.Level,
		MaxAge:     cfg.Logging.MaxAge,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openHistory(cfg *config.Config) (*storage.Storage, error) {
	return storage.New(cfg.Files.History, cfg.History.MaxEntries)
}

func openPicklists(cfg *config.Config) *picklist.Store {
	return picklist.Open(cfg.Files.Picklists)
}

func loadDocument(path string) (*document.Engine, error) {
	engine := document.New()
	if err := engine.LoadFile(path); err != nil {
		return nil, err
	}
	return engine, nil
}
