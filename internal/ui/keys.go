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

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Edit        key.Binding
	AddBlock    key.Binding
	DeleteBlock key.Binding
	AddEnv      key.Binding
	RemoveEnv   key.Binding
	Collapse    key.Binding
	CollapseAll key.Binding
	ExpandAll   key.Binding
	Theme       key.Binding
	Save        key.Binding
	SaveAs      key.Binding
	Open        key.Binding
	Copy        key.Binding
	Preview     key.Binding
	Picklists   key.Binding
	External    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
		Edit:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit field")),
		AddBlock:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add block")),
		DeleteBlock: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete block")),
		AddEnv:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add environment")),
		RemoveEnv:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "remove environment")),
		Collapse:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "collapse/expand block")),
		CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		Theme:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate theme")),
		Save:        key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		SaveAs:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "save as")),
		Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open file")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy JSON")),
		Preview:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview JSON")),
		Picklists:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "manage picklists")),
		External:    key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "edit in $EDITOR")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpBindings lists the bindings shown on the help screen, in order.
func (k keyMap) helpBindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Edit,
		k.AddBlock, k.DeleteBlock, k.AddEnv, k.RemoveEnv,
		k.Collapse, k.CollapseAll, k.ExpandAll, k.Theme,
		k.Save, k.SaveAs, k.Open, k.Copy, k.Preview,
		k.Picklists, k.External, k.Help, k.Quit,
	}
}
