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
	"os"
	"strconv"
	"strings"
)

// detectTerminalCapabilities reports whether the terminal handles 256 colors
// or better.
func detectTerminalCapabilities() bool {
	colorTerm := os.Getenv("COLORTERM")
	if colorTerm == "truecolor" || colorTerm == "24bit" {
		return true
	}

	modernIndicators := []string{
		"ITERM_SESSION_ID",
		"KITTY_WINDOW_ID",
		"ALACRITTY_SOCKET",
		"WEZTERM_PANE",
		"GHOSTTY_RESOURCES_DIR",
	}
	for _, indicator := range modernIndicators {
		if os.Getenv(indicator) != "" {
			return true
		}
	}

	if colors := os.Getenv("COLORS"); colors != "" {
		if numColors, err := strconv.Atoi(colors); err == nil && numColors >= 256 {
			return true
		}
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "256") || strings.Contains(term, "color") {
		return true
	}

	basicTerminals := []string{"xterm", "screen", "tmux", "linux", "cons25", "vt100", "vt220", "ansi", "dumb"}
	for _, basicTerm := range basicTerminals {
		if strings.HasPrefix(term, basicTerm) {
			return false
		}
	}
	return true
}
