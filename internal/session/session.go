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

// Package session persists the editor's window placement between runs.
package session

import (
	"github.com/adaryorg/peacock/internal/jsonfile"
	"github.com/adaryorg/peacock/internal/logging"
)

const (
	DefaultWidth  = 1100
	DefaultHeight = 700
	DefaultX      = 100
	DefaultY      = 100
)

// Placement is the stored window geometry.
type Placement struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	X      int `json:"x"`
	Y      int `json:"y"`
}

type stored struct {
	Width  *int `json:"width"`
	Height *int `json:"height"`
	X      *int `json:"x"`
	Y      *int `json:"y"`
}

// Centered returns the default size centered on a screen of the given size.
func Centered(screenWidth, screenHeight int) Placement {
	return Placement{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		X:      (screenWidth - DefaultWidth) / 2,
		Y:      (screenHeight - DefaultHeight) / 2,
	}
}

// Load reads the placement at path. Keys missing from the file take their
// defaults; a missing or unreadable file yields Centered.
func Load(path string, screenWidth, screenHeight int) Placement {
	var s stored
	exists, err := jsonfile.Read(path, &s)
	if err != nil {
		logging.Warn("Failed to load window config: %v", err)
		return Centered(screenWidth, screenHeight)
	}
	if !exists {
		return Centered(screenWidth, screenHeight)
	}

	return Placement{
		Width:  orDefault(s.Width, DefaultWidth),
		Height: orDefault(s.Height, DefaultHeight),
		X:      orDefault(s.X, DefaultX),
		Y:      orDefault(s.Y, DefaultY),
	}
}

func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Save writes p to path. Failures are logged and returned; callers on the
// exit path may ignore them.
func Save(path string, p Placement) error {
	if err := jsonfile.Write(path, p); err != nil {
		logging.Warn("Failed to save window config: %v", err)
		return err
	}
	return nil
}
