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

// PicklistCmd manages the region and account picklists.
func PicklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picklist",
		Short: "Manage region and account picklists",
	}
	cmd.AddCommand(regionsCmd(), accountsCmd())
	return cmd
}

func regionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "List, add or remove regions",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List regions",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				regions := openPicklists(cfg).Regions()
				if len(regions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No regions")
					return nil
				}
				for _, region := range regions {
					fmt.Fprintln(cmd.OutOrStdout(), region)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <region>",
			Short: "Add a region",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				if err := openPicklists(cfg).AddRegion(args[0]); err != nil {
					return fmt.Errorf("adding region %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added region %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <region>",
			Short: "Remove a region",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				if err := openPicklists(cfg).RemoveRegion(args[0]); err != nil {
					return fmt.Errorf("removing region %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed region %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List, add or remove accounts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List accounts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				accounts := openPicklists(cfg).Accounts()
				if len(accounts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No accounts")
					return nil
				}
				for _, acc := range accounts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", acc.ID, acc.Name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <id> <name>",
			Short: "Add an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				if err := openPicklists(cfg).AddAccount(args[0], args[1]); err != nil {
					return fmt.Errorf("adding account %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added account %s (%s)\n", args[1], args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := Setup(cmd)
				if err != nil {
					return err
				}
				if err := openPicklists(cfg).RemoveAccount(args[0]); err != nil {
					return fmt.Errorf("removing account %q: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed account %s\n", args[0])
				return nil
			},
		},
	)
	return cmd
}
