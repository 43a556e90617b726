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

package ui

import (
	"strings"

	"github.com/adaryorg/peacock/internal/document"
	"github.com/adaryorg/peacock/internal/picklist"
)

// envRow is the editable text of one binding. Account holds what the user
// sees, usually the "Name (ID)" display form.
type envRow struct {
	Account string
	Region  string
}

type styleField struct {
	Key   string
	Value string
}

// blockForm holds the in-flight values for one block. Rows line up with the
// block's bindings until the next sync.
type blockForm struct {
	Rows  []envRow
	Style []styleField
}

func buildForms(e *document.Engine, store *picklist.Store) []blockForm {
	forms := make([]blockForm, e.Len())
	for i, b := range e.Blocks() {
		for _, binding := range b.Bindings() {
			forms[i].Rows = append(forms[i].Rows, envRow{
				Account: store.AccountDisplay(binding.Account),
				Region:  binding.Region,
			})
		}
		for _, entry := range b.Style() {
			forms[i].Style = append(forms[i].Style, styleField{Key: entry.Key, Value: entry.Value})
		}
	}
	return forms
}

func (f blockForm) bindings() []document.Binding {
	out := make([]document.Binding, 0, len(f.Rows))
	for _, row := range f.Rows {
		out = append(out, document.Binding{
			Account: picklist.AccountIDFromDisplay(strings.TrimSpace(row.Account)),
			Region:  row.Region,
		})
	}
	return out
}

// collectEdits gathers every form into the snapshot Engine.Sync expects.
func collectEdits(forms []blockForm) []document.BlockEdit {
	edits := make([]document.BlockEdit, len(forms))
	for i, f := range forms {
		edits[i].Bindings = f.bindings()
		if len(f.Style) > 0 {
			edits[i].Style = make(map[string]string, len(f.Style))
			for _, field := range f.Style {
				edits[i].Style[field.Key] = field.Value
			}
		}
	}
	return edits
}
