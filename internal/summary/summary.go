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

// Package summary renders the one-line-per-binding description of a block.
package summary

import (
	"fmt"
	"strings"

	"github.com/adaryorg/peacock/internal/document"
)

// Placeholder is shown for a block with no non-empty bindings.
const Placeholder = "Empty Configuration"

// AccountNamer resolves an account id to its display name, or "" when unknown.
type AccountNamer interface {
	AccountName(id string) string
}

// Summarize describes every non-empty binding of b, one per line.
// names may be nil.
func Summarize(b *document.Block, names AccountNamer) string {
	return Bindings(b.Bindings(), names)
}

// Bindings describes a list of bindings, one per line.
func Bindings(bindings []document.Binding, names AccountNamer) string {
	lines := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		if binding.IsEmpty() {
			continue
		}
		lines = append(lines, Line(binding, names))
	}
	if len(lines) == 0 {
		return Placeholder
	}
	return strings.Join(lines, "\n")
}

// Line describes a single binding.
func Line(binding document.Binding, names AccountNamer) string {
	account := ""
	if binding.Account != "" {
		name := ""
		if names != nil {
			name = names.AccountName(binding.Account)
		}
		if name != "" {
			account = fmt.Sprintf("%s (%s)", name, binding.Account)
		} else {
			account = binding.Account
		}
	}

	switch {
	case account != "" && binding.Region != "":
		return account + " - " + binding.Region
	case account != "":
		return account
	default:
		return binding.Region
	}
}
