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

	"github.com/spf13/cobra"
)

// HistoryCmd inspects the export history.
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded saves and copies",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List recorded exports, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				history, err := openHistory(cfg)
				if err != nil {
					return err
				}
				defer history.Close()

				entries, err := history.List()
				if err != nil {
					return fmt.Errorf("loading history: %w", err)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No exports recorded")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-9s %s\n",
						e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Target, e.Location)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print the content of a recorded export",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				history, err := openHistory(cfg)
				if err != nil {
					return err
				}
				defer history.Close()

				entry, err := history.Get(args[0])
				if err != nil {
					return fmt.Errorf("loading entry %s: %w", args[0], err)
				}
				fmt.Fprint(cmd.OutOrStdout(), entry.Content)
				return nil
			},
		},
	)
	return cmd
}
