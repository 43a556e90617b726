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

	"github.com/charmbracelet/lipgloss"
)

// createMainFrameDialog frames content across the whole terminal.
func (m Model) createMainFrameDialog(content string) string {
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(parseColor(m.config.Theme.Frame.Border.Foreground)).
		Background(parseColor(m.config.Theme.Frame.Background.Background)).
		Padding(0, 1).
		Width(m.width - 2).
		Height(m.height - 2)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		dialogStyle.Render(content),
	)
}

// buildFrameContent lays out a header, a content area and a footer
// separated by horizontal rules.
func (m Model) buildFrameContent(headerText, contentText, footerText string, contentWidth int) string {
	var content strings.Builder

	content.WriteString(m.styles.Header.Render(truncate(headerText, contentWidth)))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", contentWidth))
	content.WriteString("\n")

	content.WriteString(contentText)

	content.WriteString(strings.Repeat("─", contentWidth))
	content.WriteString("\n")
	content.WriteString(m.styles.Status.Render(truncate(footerText, contentWidth)))

	return content.String()
}

// contentWidth and contentHeight give the area inside the main frame.
func (m Model) contentWidth() int {
	w := m.width - 6
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) contentHeight() int {
	// border, header, two rules, status, footer
	h := m.height - 7
	if h < 3 {
		h = 3
	}
	return h
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-3 {
		runes = runes[:width-3]
	}
	return string(runes) + "..."
}
