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

	"github.com/adaryorg/peacock/internal/palette"
)

// ThemeCmd prints a generated color pair and the style entries it sets.
func ThemeCmd() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Generate a harmonious color pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := palette.NewGenerator()
			if cmd.Flags().Changed("seed") {
				gen = palette.NewSeededGenerator(seed)
			}
			pair := gen.Generate()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s\n", palette.NavigationBackgroundKey, pair.Primary)
			fmt.Fprintf(out, "%s: %s\n", palette.AccountMenuBackgroundKey, pair.Secondary)
			fmt.Fprintf(out, "hue %.3f / %.3f  saturation %.3f  lightness %.3f\n",
				pair.Hue, pair.ComplementHue, pair.Saturation, pair.Lightness)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible pair")
	return cmd
}
