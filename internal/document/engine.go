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

	"github.com/adaryorg/peacock/internal/jsonfile"
)

// BlockEdit carries the caller's current values for one block.
// Style holds only the keys the caller edits; keys it omits are left as they are.
type BlockEdit struct {
	Bindings []Binding
	Style    map[string]string
}

// Engine owns the working document for one editing session.
type Engine struct {
	blocks []*Block
}

// New returns an engine holding an empty document.
func New() *Engine {
	return &Engine{}
}

// Load replaces the working document with data. Comments and trailing
// commas are accepted. On error the current document is kept.
func (e *Engine) Load(data []byte) error {
	std, err := jsonfile.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := Validate(std); err != nil {
		return err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(std, &raws); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	blocks := make([]*Block, 0, len(raws))
	for i, raw := range raws {
		b, err := parseBlock(raw)
		if err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrMalformedDocument, i+1, err)
		}
		blocks = append(blocks, b)
	}
	e.blocks = blocks
	return nil
}

// LoadFile reads path and loads it.
func (e *Engine) LoadFile(path string) error {
	data, exists, err := jsonfile.ReadBytes(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if !exists {
		return fmt.Errorf("failed to open %s: file does not exist", path)
	}
	if err := e.Load(data); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Len returns the number of blocks.
func (e *Engine) Len() int {
	return len(e.blocks)
}

// Block returns a read-only copy of block i.
func (e *Engine) Block(i int) (*Block, error) {
	if err := e.checkBlock(i); err != nil {
		return nil, err
	}
	return e.blocks[i].clone(), nil
}

// Blocks returns read-only copies of every block.
func (e *Engine) Blocks() []*Block {
	out := make([]*Block, len(e.blocks))
	for i, b := range e.blocks {
		out[i] = b.clone()
	}
	return out
}

func (e *Engine) checkBlock(i int) error {
	if i < 0 || i >= len(e.blocks) {
		return fmt.Errorf("%w: block %d of %d", ErrIndexOutOfRange, i, len(e.blocks))
	}
	return nil
}

// AppendBlock adds a block with no bindings and the default style, and
// returns its index.
func (e *Engine) AppendBlock() int {
	e.blocks = append(e.blocks, newBlock())
	return len(e.blocks) - 1
}

// DeleteBlock removes block i. Confirmation is the caller's job.
func (e *Engine) DeleteBlock(i int) error {
	if err := e.checkBlock(i); err != nil {
		return err
	}
	e.blocks = append(e.blocks[:i], e.blocks[i+1:]...)
	return nil
}

// AddEnvironment appends binding to block i and returns the new entry's index.
func (e *Engine) AddEnvironment(i int, binding Binding) (int, error) {
	if err := e.checkBlock(i); err != nil {
		return 0, err
	}
	b := e.blocks[i]
	b.env.Bindings = append(b.env.Bindings, binding)
	return len(b.env.Bindings) - 1, nil
}

// RemoveEnvironment removes entry j from block i.
func (e *Engine) RemoveEnvironment(i, j int) error {
	if err := e.checkBlock(i); err != nil {
		return err
	}
	b := e.blocks[i]
	if j < 0 || j >= len(b.env.Bindings) {
		return fmt.Errorf("%w: entry %d of %d in block %d", ErrIndexOutOfRange, j, len(b.env.Bindings), i)
	}
	b.env.Bindings = append(b.env.Bindings[:j], b.env.Bindings[j+1:]...)
	return nil
}

// SetStyle overwrites the given style keys on block i. New keys are
// appended in sorted order.
func (e *Engine) SetStyle(i int, values map[string]string) error {
	if err := e.checkBlock(i); err != nil {
		return err
	}
	e.blocks[i].setStyle(values)
	return nil
}

// SetCollapsed sets the display state of block i.
func (e *Engine) SetCollapsed(i int, collapsed bool) error {
	if err := e.checkBlock(i); err != nil {
		return err
	}
	e.blocks[i].collapsed = collapsed
	return nil
}

// ToggleCollapsed flips the display state of block i.
func (e *Engine) ToggleCollapsed(i int) error {
	if err := e.checkBlock(i); err != nil {
		return err
	}
	e.blocks[i].collapsed = !e.blocks[i].collapsed
	return nil
}

// CollapseAll collapses every block.
func (e *Engine) CollapseAll() {
	for _, b := range e.blocks {
		b.collapsed = true
	}
}

// ExpandAll expands every block.
func (e *Engine) ExpandAll() {
	for _, b := range e.blocks {
		b.collapsed = false
	}
}

// Snapshot returns the current values of every editable field, in the
// shape Sync accepts.
func (e *Engine) Snapshot() []BlockEdit {
	out := make([]BlockEdit, len(e.blocks))
	for i, b := range e.blocks {
		out[i] = BlockEdit{Bindings: b.Bindings()}
		if b.hasStyle {
			out[i].Style = b.styleMap()
		}
	}
	return out
}

// Sync writes the caller's edited values back into the document. edits must
// hold one entry per block, in order. Bindings are trimmed and empty ones
// dropped. Nothing changes if the snapshot does not cover the document.
func (e *Engine) Sync(edits []BlockEdit) error {
	if len(edits) != len(e.blocks) {
		return fmt.Errorf("%w: %d edits for %d blocks", ErrSnapshotMismatch, len(edits), len(e.blocks))
	}
	for i, edit := range edits {
		b := e.blocks[i]
		bindings := make([]Binding, 0, len(edit.Bindings))
		for _, binding := range edit.Bindings {
			binding = binding.trimmed()
			if !binding.IsEmpty() {
				bindings = append(bindings, binding)
			}
		}
		b.env.Bindings = bindings
		b.setStyle(edit.Style)
	}
	return nil
}

// ExportClean returns the persisted form of the document. Callers holding
// in-flight edits must Sync first.
func (e *Engine) ExportClean() CleanDocument {
	doc := CleanDocument{blocks: make([]object, len(e.blocks))}
	for i, b := range e.blocks {
		doc.blocks[i] = b.clean()
	}
	return doc
}

// Save writes the clean export to path.
func (e *Engine) Save(path string) error {
	return e.ExportClean().Save(path)
}
