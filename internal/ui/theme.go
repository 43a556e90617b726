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

	"github.com/adaryorg/peacock/internal/config"
	"github.com/adaryorg/peacock/internal/palette"
)

// editorStyles holds every lipgloss style the editor renders with.
type editorStyles struct {
	Header   lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
	Warning  lipgloss.Style
	Card     lipgloss.Style
	Border   lipgloss.Style
	Label    lipgloss.Style
	Input    lipgloss.Style
}

func newStyles(theme config.ThemeConfig) editorStyles {
	return editorStyles{
		Header:   createStyle(theme.Header),
		Status:   createStyle(theme.Status),
		Selected: createStyle(theme.Selected),
		Warning:  createStyle(theme.Warning),
		Card:     createStyle(theme.Card),
		Border:   createStyle(theme.Frame.Border),
		Label:    lipgloss.NewStyle().Bold(true),
		Input:    lipgloss.NewStyle().Underline(true),
	}
}

var cssColors = map[string]string{
	"black":   "#000000",
	"red":     "#FF0000",
	"green":   "#008000",
	"yellow":  "#FFFF00",
	"blue":    "#0000FF",
	"magenta": "#FF00FF",
	"cyan":    "#00FFFF",
	"white":   "#FFFFFF",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"pink":    "#FFC0CB",
	"navy":    "#000080",
	"teal":    "#008080",
	"silver":  "#C0C0C0",
	"gold":    "#FFD700",
}

// parseColor accepts hex colors, a small set of CSS names and ANSI codes.
func parseColor(colorStr string) lipgloss.Color {
	if colorStr == "" {
		return lipgloss.Color("")
	}
	if strings.HasPrefix(colorStr, "#") {
		return lipgloss.Color(colorStr)
	}
	if hexColor, exists := cssColors[strings.ToLower(colorStr)]; exists {
		return lipgloss.Color(hexColor)
	}
	return lipgloss.Color(colorStr)
}

func createStyle(cc config.ColorConfig) lipgloss.Style {
	style := lipgloss.NewStyle()
	if cc.Foreground != "" {
		style = style.Foreground(parseColor(cc.Foreground))
	}
	if cc.Background != "" {
		style = style.Background(parseColor(cc.Background))
	}
	if cc.Bold {
		style = style.Bold(true)
	}
	return style
}

// swatch renders a small block filled with value, or a marker when value is
// not a #rrggbb color.
func swatch(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !palette.IsHexColor(normalized) {
		return "  ?  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(normalized)).Render("     ")
}
