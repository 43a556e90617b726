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

// Package clipboard copies exported documents to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	atotto "github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("no clipboard available")

// System copies through the desktop session's clipboard.
type System struct{}

func (System) Copy(content string) error {
	return Copy(content)
}

// Copy places content on the clipboard. Wayland sessions use wl-copy; X11
// sets both CLIPBOARD and PRIMARY.
func Copy(content string) error {
	if isWaylandSession() {
		return copyWayland(content)
	}
	if atotto.Unsupported {
		return ErrUnavailable
	}
	return copyX11(content)
}

func isWaylandSession() bool {
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "wayland"
}

func copyWayland(content string) error {
	cmd := exec.Command("wl-copy")
	cmd.Stdin = strings.NewReader(content)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}
	return nil
}

func copyX11(content string) error {
	if err := atotto.WriteAll(content); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}

	// PRIMARY is optional
	cmd := exec.Command("xclip", "-selection", "primary")
	cmd.Stdin = strings.NewReader(content)
	cmd.Run()

	return nil
}
