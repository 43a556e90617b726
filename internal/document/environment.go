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

package document

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Binding ties a block to one account/region pair.
type Binding struct {
	Account string `json:"account"`
	Region  string `json:"region"`
}

// IsEmpty reports whether both fields are empty. Empty bindings are never persisted.
func (b Binding) IsEmpty() bool {
	return b.Account == "" && b.Region == ""
}

func (b Binding) trimmed() Binding {
	return Binding{Account: strings.TrimSpace(b.Account), Region: strings.TrimSpace(b.Region)}
}

// Shape records how the env field was written in the source document.
type Shape int

const (
	// ShapePlural is a JSON array of bindings.
	ShapePlural Shape = iota
	// ShapeSingular is a single binding object.
	ShapeSingular
	// ShapeAbsent means the block had no env field.
	ShapeAbsent
)

func (s Shape) String() string {
	switch s {
	case ShapeSingular:
		return "singular"
	case ShapeAbsent:
		return "absent"
	default:
		return "plural"
	}
}

// Environments is the normalized, always-plural view of a block's env field
// together with the shape it was read in.
type Environments struct {
	Shape    Shape
	Bindings []Binding
}

// ReadEnvironments normalizes a raw env value. A nil raw value means the
// field was absent.
func ReadEnvironments(raw json.RawMessage) (Environments, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Environments{Shape: ShapeAbsent, Bindings: []Binding{}}, nil
	}

	if trimmed[0] == '{' {
		var b Binding
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return Environments{}, err
		}
		return Environments{Shape: ShapeSingular, Bindings: []Binding{b}}, nil
	}

	bindings := []Binding{}
	if err := json.Unmarshal(trimmed, &bindings); err != nil {
		return Environments{}, err
	}
	if bindings == nil {
		bindings = []Binding{}
	}
	return Environments{Shape: ShapePlural, Bindings: bindings}, nil
}

// NonEmpty returns the bindings with empty entries dropped, in order.
func (e Environments) NonEmpty() []Binding {
	out := make([]Binding, 0, len(e.Bindings))
	for _, b := range e.Bindings {
		if !b.IsEmpty() {
			out = append(out, b)
		}
	}
	return out
}

// Value denormalizes the bindings for writing. Empty bindings are dropped
// first. A singular source with exactly one remaining binding is written as
// an object; everything else is written as an array. The boolean is false
// when the field should be omitted: an absent source that is still empty.
// The omission keeps a file without "env" byte-stable on round trip instead
// of gaining an empty list.
func (e Environments) Value() (any, bool) {
	kept := e.NonEmpty()
	switch {
	case e.Shape == ShapeSingular && len(kept) == 1:
		return kept[0], true
	case e.Shape == ShapeAbsent && len(kept) == 0:
		return nil, false
	default:
		return kept, true
	}
}

func (e Environments) clone() Environments {
	return Environments{Shape: e.Shape, Bindings: append([]Binding{}, e.Bindings...)}
}
