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
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type pickSection int

const (
	sectionRegions pickSection = iota
	sectionAccounts
)

type addStage int

const (
	addNone addStage = iota
	addRegion
	addAccountID
	addAccountName
)

// picklistState is the picklist manager's cursor and add flow.
type picklistState struct {
	section   pickSection
	cursor    int
	stage     addStage
	pendingID string
	input     textinput.Model
}

func newPicklistState() picklistState {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 128
	return picklistState{input: input}
}

func (m Model) picklistLen() int {
	if m.picker.section == sectionRegions {
		return len(m.picklists.Regions())
	}
	return len(m.picklists.Accounts())
}

func (m Model) updatePicklists(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.stage != addNone {
		return m.updatePicklistInput(msg)
	}

	switch msg.String() {
	case "esc", "q", "m":
		m.currentMode = modeList
	case "tab", "left", "right", "h", "l":
		if m.picker.section == sectionRegions {
			m.picker.section = sectionAccounts
		} else {
			m.picker.section = sectionRegions
		}
		m.picker.cursor = 0
	case "up", "k":
		if m.picker.cursor > 0 {
			m.picker.cursor--
		}
	case "down", "j":
		if m.picker.cursor < m.picklistLen()-1 {
			m.picker.cursor++
		}
	case "a":
		if m.picker.section == sectionRegions {
			m.startPicklistInput(addRegion, "region code")
		} else {
			m.startPicklistInput(addAccountID, "account id")
		}
		return m, textinput.Blink
	case "x", "delete":
		m.removePicklistEntry()
	}
	return m, nil
}

func (m *Model) startPicklistInput(stage addStage, placeholder string) {
	m.picker.stage = stage
	m.picker.input.Placeholder = placeholder
	m.picker.input.SetValue("")
	m.picker.input.Focus()
}

func (m Model) updatePicklistInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picker.stage = addNone
		m.picker.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.picker.input.Value())
		switch m.picker.stage {
		case addRegion:
			m.picker.stage = addNone
			m.picker.input.Blur()
			if err := m.picklists.AddRegion(value); err != nil {
				m.setError("Failed to add region %q: %v", value, err)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("Added region %s", value))
		case addAccountID:
			if value == "" {
				m.setError("Account ID is required")
				return m, nil
			}
			m.picker.pendingID = value
			m.startPicklistInput(addAccountName, "account name")
			return m, textinput.Blink
		case addAccountName:
			if value == "" {
				m.setError("Account name is required")
				return m, nil
			}
			m.picker.stage = addNone
			m.picker.input.Blur()
			if err := m.picklists.AddAccount(m.picker.pendingID, value); err != nil {
				m.setError("Failed to add account %q: %v", m.picker.pendingID, err)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("Added account %s (%s)", value, m.picker.pendingID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker.input, cmd = m.picker.input.Update(msg)
	return m, cmd
}

func (m *Model) removePicklistEntry() {
	if m.picker.section == sectionRegions {
		regions := m.picklists.Regions()
		if m.picker.cursor >= len(regions) {
			return
		}
		region := regions[m.picker.cursor]
		if err := m.picklists.RemoveRegion(region); err != nil {
			m.setError("Failed to remove region %q: %v", region, err)
			return
		}
		m.setStatus(fmt.Sprintf("Removed region %s", region))
	} else {
		accounts := m.picklists.Accounts()
		if m.picker.cursor >= len(accounts) {
			return
		}
		acc := accounts[m.picker.cursor]
		if err := m.picklists.RemoveAccount(acc.ID); err != nil {
			m.setError("Failed to remove account %q: %v", acc.ID, err)
			return
		}
		m.setStatus(fmt.Sprintf("Removed account %s", acc.Display()))
	}
	if n := m.picklistLen(); m.picker.cursor >= n && n > 0 {
		m.picker.cursor = n - 1
	}
}
