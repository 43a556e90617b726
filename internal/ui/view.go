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
	"path/filepath"
	"strings"

	"github.com/adaryorg/peacock/internal/summary"
)

const (
	accountWidth = 28
	regionWidth  = 16
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < 30 || m.height < 10 {
		return "Terminal too small"
	}

	switch m.currentMode {
	case modePreview:
		return m.renderPreview()
	case modePicklists:
		return m.renderPicklists()
	case modeHelp:
		return m.renderHelp()
	default:
		return m.renderMainWindow()
	}
}

func (m Model) renderMainWindow() string {
	contentWidth := m.contentWidth()
	contentHeight := m.contentHeight()

	name := "untitled"
	if m.path != "" {
		name = filepath.Base(m.path)
	}
	header := fmt.Sprintf("Peacock - %s", name)
	if m.dirty {
		header += " [modified]"
	}
	header += fmt.Sprintf("  (%d blocks)", m.engine.Len())

	lines, cursorLine := m.bodyLines()
	offset := 0
	if cursorLine >= contentHeight {
		offset = cursorLine - contentHeight + 1
	}

	var body strings.Builder
	for i := 0; i < contentHeight; i++ {
		if idx := offset + i; idx < len(lines) {
			body.WriteString(lines[idx])
		}
		body.WriteString("\n")
	}
	body.WriteString(m.statusLine(contentWidth))
	body.WriteString("\n")

	return m.createMainFrameDialog(m.buildFrameContent(header, body.String(), m.footerText(), contentWidth))
}

func (m Model) statusLine(width int) string {
	switch m.currentMode {
	case modeConfirmDelete:
		return m.styles.Warning.Render(fmt.Sprintf("Delete block #%d? (y/n)", m.deleteCandidate+1))
	case modePrompt:
		label := "Save as: "
		if m.prompt == promptOpen {
			label = "Open: "
		}
		return label + m.input.View()
	}
	if m.status == "" {
		return ""
	}
	if m.statusIsError {
		return m.styles.Warning.Render(truncate(m.status, width))
	}
	return m.styles.Status.Render(truncate(m.status, width))
}

func (m Model) footerText() string {
	switch m.currentMode {
	case modeEditField:
		return "enter: apply • tab: next suggestion • esc: cancel"
	case modePrompt:
		return "enter: confirm • esc: cancel"
	case modeConfirmDelete:
		return "y: delete • n: keep"
	}
	return "a: add • x: delete • +/-: env • space: fold • g: theme • s: save • y: copy • p: preview • m: picklists • ?: help • q: quit"
}

// bodyLines renders every block and returns the line holding the cursor.
func (m Model) bodyLines() ([]string, int) {
	if m.engine.Len() == 0 {
		return []string{"", "  No blocks. Press a to add one or o to open a file."}, 0
	}

	cur, _ := m.current()
	cursorLine := 0
	var lines []string

	for i, b := range m.engine.Blocks() {
		form := m.forms[i]
		summaryLines := strings.Split(summary.Bindings(form.bindings(), m.picklists), "\n")

		indicator := "▼"
		if b.Collapsed() {
			indicator = "▶"
		}
		headerTarget := target{kind: fieldHeader, block: i}
		headerText := fmt.Sprintf("%s Block #%d  %s", indicator, i+1, summaryLines[0])
		if cur == headerTarget {
			cursorLine = len(lines)
			headerText = m.styles.Selected.Render(headerText)
		} else {
			headerText = m.styles.Label.Render(headerText)
		}
		lines = append(lines, headerText)

		if b.Collapsed() {
			for _, extra := range summaryLines[1:] {
				lines = append(lines, "             "+m.styles.Card.Render(extra))
			}
			lines = append(lines, "")
			continue
		}

		if len(form.Rows) == 0 {
			lines = append(lines, m.styles.Card.Render("    no environments, press + to add one"))
		}
		for j, row := range form.Rows {
			accountTarget := target{kind: fieldAccount, block: i, index: j}
			regionTarget := target{kind: fieldRegion, block: i, index: j}
			if cur == accountTarget || cur == regionTarget {
				cursorLine = len(lines)
			}
			line := fmt.Sprintf("    Account %s  Region %s",
				m.renderField(accountTarget, row.Account, accountWidth),
				m.renderField(regionTarget, row.Region, regionWidth))
			lines = append(lines, line)
			if m.currentMode == modeEditField && (m.editing == accountTarget || m.editing == regionTarget) {
				lines = append(lines, m.suggestionLine())
			}
		}

		keyWidth := 0
		for _, field := range form.Style {
			if len(field.Key) > keyWidth {
				keyWidth = len(field.Key)
			}
		}
		for j, field := range form.Style {
			styleTarget := target{kind: fieldStyle, block: i, index: j}
			if cur == styleTarget {
				cursorLine = len(lines)
			}
			line := fmt.Sprintf("    %-*s %s %s", keyWidth, field.Key, m.renderField(styleTarget, field.Value, 9), swatch(field.Value))
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}
	return lines, cursorLine
}

func (m Model) renderField(t target, value string, width int) string {
	if m.currentMode == modeEditField && m.editing == t {
		return m.input.View()
	}
	padded := fmt.Sprintf("%-*s", width, value)
	if cur, ok := m.current(); ok && cur == t {
		return m.styles.Selected.Render(padded)
	}
	return m.styles.Input.Render(padded)
}

func (m Model) suggestionLine() string {
	if len(m.suggestions) == 0 {
		return m.styles.Card.Render("      no matches")
	}
	shown := m.suggestions
	if len(shown) > maxSuggestions {
		shown = shown[:maxSuggestions]
	}
	return m.styles.Card.Render("      ↳ " + strings.Join(shown, "  "))
}

func (m Model) renderPreview() string {
	contentWidth := m.contentWidth()
	contentHeight := m.contentHeight() + 1

	var body strings.Builder
	end := m.previewOffset + contentHeight
	if end > len(m.previewLines) {
		end = len(m.previewLines)
	}
	rendered := 0
	for i := m.previewOffset; i < end; i++ {
		body.WriteString(m.previewLines[i])
		body.WriteString("\n")
		rendered++
	}
	for ; rendered < contentHeight; rendered++ {
		body.WriteString("\n")
	}

	footer := fmt.Sprintf("↑/↓: scroll • y: copy • esc: back  %d-%d/%d", m.previewOffset+1, end, len(m.previewLines))
	return m.createMainFrameDialog(m.buildFrameContent("Clean export preview", body.String(), footer, contentWidth))
}

func (m Model) renderPicklists() string {
	contentWidth := m.contentWidth()
	contentHeight := m.contentHeight()

	var lines []string
	section := func(title string, active bool, items []string) {
		if active {
			title = m.styles.Selected.Render(title)
		} else {
			title = m.styles.Label.Render(title)
		}
		lines = append(lines, title)
		if len(items) == 0 {
			lines = append(lines, m.styles.Card.Render("    (empty)"))
		}
		for i, item := range items {
			line := "    " + item
			if active && i == m.picker.cursor {
				line = m.styles.Selected.Render("  > " + item)
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}
	section("Regions", m.picker.section == sectionRegions, m.picklists.Regions())
	section("Accounts", m.picker.section == sectionAccounts, m.picklists.AccountDisplayList())

	var body strings.Builder
	for i := 0; i < contentHeight; i++ {
		if i < len(lines) {
			body.WriteString(lines[i])
		}
		body.WriteString("\n")
	}

	switch m.picker.stage {
	case addRegion:
		body.WriteString("New region " + m.picker.input.View())
	case addAccountID:
		body.WriteString("New account ID " + m.picker.input.View())
	case addAccountName:
		body.WriteString(fmt.Sprintf("Name for %s ", m.picker.pendingID) + m.picker.input.View())
	default:
		body.WriteString(m.statusLine(contentWidth))
	}
	body.WriteString("\n")

	footer := "tab: switch list • a: add • x: remove • esc: back"
	return m.createMainFrameDialog(m.buildFrameContent("Picklists", body.String(), footer, contentWidth))
}

func (m Model) renderHelp() string {
	contentWidth := m.contentWidth()
	contentHeight := m.contentHeight() + 1

	bindings := m.keys.helpBindings()
	var body strings.Builder
	rendered := 0
	for i := m.helpOffset; i < len(bindings) && rendered < contentHeight; i++ {
		help := bindings[i].Help()
		body.WriteString(fmt.Sprintf("  %-10s %s\n", help.Key, help.Desc))
		rendered++
	}
	for ; rendered < contentHeight; rendered++ {
		body.WriteString("\n")
	}

	return m.createMainFrameDialog(m.buildFrameContent("Peacock Help", body.String(), "?: close", contentWidth))
}
