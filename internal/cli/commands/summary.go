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
	"strings"

	"github.com/spf13/cobra"

	"github.com/adaryorg/peacock/internal/summary"
)

// SummaryCmd prints the one-line-per-binding summary of every block.
func SummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Summarize the blocks of a document",
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
			store := openPicklists(cfg)

			if engine.Len() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No blocks found in "+args[0])
				return nil
			}
			for i, block := range engine.Blocks() {
				fmt.Fprintf(cmd.OutOrStdout(), "Block %d\n", i+1)
				fmt.Fprintln(cmd.OutOrStdout(), indent(summary.Summarize(block, store)))
			}
			return nil
		},
	}
}

func indent(text string) string {
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}
