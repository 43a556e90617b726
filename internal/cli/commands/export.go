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

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adaryorg/peacock/internal/clipboard"
	"github.com/adaryorg/peacock/internal/logging"
	"github.com/adaryorg/peacock/internal/storage"
)

var copyToClipboard = clipboard.Copy

// ExportCmd prints the clean export of a document.
func ExportCmd() *cobra.Command {
	var (
		format string
		toClip bool
	)
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Print the clean export of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Setup(cmd)
			if err != nil {
				return err
			}
			engine, err := loadDocument(args[0])
			if err != nil {
				return fmt.Errorf("loading document: %w", err)
			}

			doc := engine.ExportClean()
			var data []byte
			switch format {
			case "json":
				data, err = doc.JSON()
			case "yaml":
				data, err = doc.YAML()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))

			if !toClip {
				return nil
			}
			if err := copyToClipboard(string(data)); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Configuration copied to clipboard")

			history, err := openHistory(cfg)
			if err != nil {
				logging.Warn("Export history disabled: %v", err)
				return nil
			}
			defer history.Close()
			location, _ := filepath.Abs(args[0])
			if _, err := history.Record(storage.TargetClipboard, location, string(data)); err != nil {
				logging.Warn("Failed to record export history: %v", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().BoolVarP(&toClip, "copy", "c", false, "also copy the export to the clipboard")
	return cmd
}
