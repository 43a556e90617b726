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
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Keys with this prefix are editor bookkeeping; they are dropped on read
// and never written.
const InternalKeyPrefix = "_"

const (
	envKey   = "env"
	styleKey = "style"
)

// Default style applied to new blocks.
var DefaultStyle = []StyleEntry{
	{Key: "navigationBackgroundColor", Value: "#ffffff"},
	{Key: "accountMenuButtonBackgroundColor", Value: "#ffffff"},
}

// StyleEntry is one style key and its color value.
type StyleEntry struct {
	Key   string
	Value string
}

// Block is one configuration unit. Unknown keys are carried through
// untouched in their original order.
type Block struct {
	fields    object
	env       Environments
	style     []StyleEntry
	hasStyle  bool
	collapsed bool
}

func newBlock() *Block {
	b := &Block{
		env:      Environments{Shape: ShapePlural, Bindings: []Binding{}},
		style:    append([]StyleEntry{}, DefaultStyle...),
		hasStyle: true,
	}
	b.fields.set(envKey, nil)
	b.fields.set(styleKey, nil)
	return b
}

func parseBlock(raw json.RawMessage) (*Block, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}

	b := &Block{}
	var envRaw json.RawMessage
	for _, f := range obj.fields {
		if IsInternalKey(f.key) {
			continue
		}
		switch f.key {
		case envKey:
			envRaw = f.value
		case styleKey:
			style, err := parseStyle(f.value)
			if err != nil {
				return nil, fmt.Errorf("style: %w", err)
			}
			b.style = style
			b.hasStyle = true
		}
		b.fields.fields = append(b.fields.fields, f)
	}

	env, err := ReadEnvironments(envRaw)
	if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	b.env = env
	return b, nil
}

func parseStyle(raw json.RawMessage) ([]StyleEntry, error) {
	var obj object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	out := make([]StyleEntry, 0, len(obj.fields))
	for _, f := range obj.fields {
		var value string
		if err := json.Unmarshal(f.value, &value); err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		out = append(out, StyleEntry{Key: f.key, Value: value})
	}
	return out, nil
}

// IsInternalKey reports whether key is editor-only bookkeeping.
func IsInternalKey(key string) bool {
	return strings.HasPrefix(key, InternalKeyPrefix)
}

// Environments returns a copy of the block's normalized env field.
func (b *Block) Environments() Environments {
	return b.env.clone()
}

// Bindings returns the block's bindings in display order.
func (b *Block) Bindings() []Binding {
	return append([]Binding{}, b.env.Bindings...)
}

// Style returns the block's style entries in document order.
func (b *Block) Style() []StyleEntry {
	return append([]StyleEntry{}, b.style...)
}

// StyleValue returns the value for key.
func (b *Block) StyleValue(key string) (string, bool) {
	for _, e := range b.style {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Collapsed reports the transient display state.
func (b *Block) Collapsed() bool {
	return b.collapsed
}

// Keys returns the persisted top-level keys in order.
func (b *Block) Keys() []string {
	return b.clean().keys()
}

func (b *Block) setStyle(values map[string]string) {
	if len(values) == 0 {
		return
	}
	var added []string
	for key := range values {
		found := false
		for i := range b.style {
			if b.style[i].Key == key {
				b.style[i].Value = values[key]
				found = true
				break
			}
		}
		if !found {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	for _, key := range added {
		b.style = append(b.style, StyleEntry{Key: key, Value: values[key]})
	}
	b.hasStyle = true
}

func (b *Block) styleMap() map[string]string {
	out := make(map[string]string, len(b.style))
	for _, e := range b.style {
		out[e.Key] = e.Value
	}
	return out
}

func (b *Block) clone() *Block {
	return &Block{
		fields:    b.fields.clone(),
		env:       b.env.clone(),
		style:     append([]StyleEntry{}, b.style...),
		hasStyle:  b.hasStyle,
		collapsed: b.collapsed,
	}
}

// clean builds the persisted form: unknown keys verbatim, env re-shaped,
// style rebuilt, transient state dropped.
func (b *Block) clean() object {
	var out object
	envDone, styleDone := false, false

	writeEnv := func() {
		envDone = true
		if v, ok := b.env.Value(); ok {
			out.set(envKey, mustMarshal(v))
		}
	}
	writeStyle := func() {
		styleDone = true
		if b.hasStyle {
			out.set(styleKey, marshalStyle(b.style))
		}
	}

	for _, f := range b.fields.fields {
		switch f.key {
		case envKey:
			writeEnv()
		case styleKey:
			writeStyle()
		default:
			out.fields = append(out.fields, field{key: f.key, value: append(json.RawMessage(nil), f.value...)})
		}
	}
	if !envDone {
		writeEnv()
	}
	if !styleDone {
		writeStyle()
	}
	return out
}

func marshalStyle(entries []StyleEntry) json.RawMessage {
	var obj object
	for _, e := range entries {
		obj.set(e.Key, mustMarshal(e.Value))
	}
	data, _ := obj.MarshalJSON()
	return data
}

// mustMarshal encodes values that cannot fail: strings, bindings and slices of them.
func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("document: marshal %T: %v", v, err))
	}
	return data
}
