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

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/peacock/internal/config"
	"github.com/adaryorg/peacock/internal/document"
	"github.com/adaryorg/peacock/internal/logging"
	"github.com/adaryorg/peacock/internal/palette"
	"github.com/adaryorg/peacock/internal/picklist"
	"github.com/adaryorg/peacock/internal/session"
	"github.com/adaryorg/peacock/internal/storage"
)

type mode int

const (
	modeList mode = iota
	modeEditField
	modeConfirmDelete
	modePrompt
	modePreview
	modePicklists
	modeHelp
)

type fieldKind int

const (
	fieldHeader fieldKind = iota
	fieldAccount
	fieldRegion
	fieldStyle
)

// target is one focusable line element: a block header or a single field.
type target struct {
	kind  fieldKind
	block int
	index int
}

type promptKind int

const (
	promptSave promptKind = iota
	promptOpen
)

const maxSuggestions = 5

// Copier puts text on a clipboard.
type Copier interface {
	Copy(content string) error
}

// Options wires the editor to its collaborators. Config is required;
// History and Clipboard may be nil.
type Options struct {
	Config    *config.Config
	Engine    *document.Engine
	Path      string
	Picklists *picklist.Store
	History   *storage.Storage
	Clipboard Copier
	Palette   *palette.Generator
	Placement session.Placement
}

type Model struct {
	config    *config.Config
	engine    *document.Engine
	path      string
	picklists *picklist.Store
	history   *storage.Storage
	clipboard Copier
	palette   *palette.Generator
	keys      keyMap
	styles    editorStyles

	useBasicColors bool

	forms       []blockForm
	targets     []target
	cursor      int
	currentMode mode
	dirty       bool

	// Field editing
	input           textinput.Model
	editing         target
	suggestions     []string
	suggestionIndex int

	prompt          promptKind
	deleteCandidate int

	previewLines  []string
	previewOffset int
	helpOffset    int

	picker picklistState

	status        string
	statusIsError bool

	width     int
	height    int
	placement session.Placement
}

func NewModel(opts Options) Model {
	if opts.Engine == nil {
		opts.Engine = document.New()
	}
	if opts.Picklists == nil {
		opts.Picklists = picklist.NewMemory()
	}
	if opts.Palette == nil {
		opts.Palette = palette.NewGenerator()
	}

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256

	m := Model{
		config:         opts.Config,
		engine:         opts.Engine,
		path:           opts.Path,
		picklists:      opts.Picklists,
		history:        opts.History,
		clipboard:      opts.Clipboard,
		palette:        opts.Palette,
		keys:           defaultKeyMap(),
		styles:         newStyles(opts.Config.Theme),
		useBasicColors: !detectTerminalCapabilities(),
		input:          input,
		picker:         newPicklistState(),
		placement:      opts.Placement,
	}
	m.rebuild()
	if m.path != "" {
		m.setStatus(fmt.Sprintf("Loaded %s", m.path))
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Placement returns the session placement updated with the last terminal size.
func (m Model) Placement() session.Placement {
	return m.placement
}

// Engine returns the document engine the model edits.
func (m Model) Engine() *document.Engine {
	return m.engine
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusIsError = false
}

func (m *Model) setError(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.statusIsError = true
	logging.Warn("%s", m.status)
}

// rebuild discards the forms and re-reads them from the engine.
func (m *Model) rebuild() {
	m.forms = buildForms(m.engine, m.picklists)
	m.rebuildTargets()
}

func (m *Model) rebuildTargets() {
	m.targets = nil
	for i, b := range m.engine.Blocks() {
		m.targets = append(m.targets, target{kind: fieldHeader, block: i})
		if b.Collapsed() {
			continue
		}
		for j := range m.forms[i].Rows {
			m.targets = append(m.targets,
				target{kind: fieldAccount, block: i, index: j},
				target{kind: fieldRegion, block: i, index: j},
			)
		}
		for j := range m.forms[i].Style {
			m.targets = append(m.targets, target{kind: fieldStyle, block: i, index: j})
		}
	}
	if m.cursor >= len(m.targets) {
		m.cursor = len(m.targets) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) current() (target, bool) {
	if m.cursor < 0 || m.cursor >= len(m.targets) {
		return target{}, false
	}
	return m.targets[m.cursor], true
}

func (m *Model) focus(t target) {
	for i, candidate := range m.targets {
		if candidate == t {
			m.cursor = i
			return
		}
	}
	m.focusBlock(t.block)
}

func (m *Model) focusBlock(block int) {
	for i, candidate := range m.targets {
		if candidate.kind == fieldHeader && candidate.block == block {
			m.cursor = i
			return
		}
	}
}

// syncForms pushes every in-flight value into the engine and re-reads the
// forms, so empty rows disappear exactly as they will on export.
func (m *Model) syncForms() error {
	if err := m.engine.Sync(collectEdits(m.forms)); err != nil {
		return err
	}
	m.rebuild()
	return nil
}

func (m *Model) fieldValue(t target) string {
	f := m.forms[t.block]
	switch t.kind {
	case fieldAccount:
		return f.Rows[t.index].Account
	case fieldRegion:
		return f.Rows[t.index].Region
	case fieldStyle:
		return f.Style[t.index].Value
	}
	return ""
}

func (m *Model) setFieldValue(t target, value string) {
	f := &m.forms[t.block]
	switch t.kind {
	case fieldAccount:
		f.Rows[t.index].Account = value
	case fieldRegion:
		f.Rows[t.index].Region = value
	case fieldStyle:
		f.Style[t.index].Value = value
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.placement.Width = msg.Width
		m.placement.Height = msg.Height
		return m, nil

	case editorFinishedMsg:
		m.finishExternalEdit(msg)
		return m, nil

	case tea.KeyMsg:
		switch m.currentMode {
		case modeEditField:
			return m.updateEditField(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		case modePreview:
			return m.updatePreview(msg)
		case modePicklists:
			return m.updatePicklists(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t, ok := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.targets)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		if !ok {
			break
		}
		if t.kind == fieldHeader {
			m.toggleCollapsed(t.block)
			break
		}
		m.startEdit(t)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Collapse):
		if ok {
			m.toggleCollapsed(t.block)
		}

	case key.Matches(msg, m.keys.CollapseAll):
		m.engine.CollapseAll()
		m.rebuildTargets()
		if ok {
			m.focusBlock(t.block)
		}

	case key.Matches(msg, m.keys.ExpandAll):
		m.engine.ExpandAll()
		m.rebuildTargets()
		if ok {
			m.focusBlock(t.block)
		}

	case key.Matches(msg, m.keys.AddBlock):
		if err := m.syncForms(); err != nil {
			m.setError("Failed to add block: %v", err)
			break
		}
		idx := m.engine.AppendBlock()
		m.rebuild()
		m.focusBlock(idx)
		m.dirty = true
		m.setStatus(fmt.Sprintf("Added block #%d", idx+1))

	case key.Matches(msg, m.keys.DeleteBlock):
		if ok {
			m.deleteCandidate = t.block
			m.currentMode = modeConfirmDelete
		}

	case key.Matches(msg, m.keys.AddEnv):
		if ok {
			m.addEnvironment(t.block)
		}

	case key.Matches(msg, m.keys.RemoveEnv):
		if ok && (t.kind == fieldAccount || t.kind == fieldRegion) {
			m.removeEnvironment(t)
		}

	case key.Matches(msg, m.keys.Theme):
		if ok {
			m.applyTheme(t.block)
		}

	case key.Matches(msg, m.keys.Save):
		if m.path == "" {
			m.startPrompt(promptSave, "")
			return m, textinput.Blink
		}
		m.save(m.path)

	case key.Matches(msg, m.keys.SaveAs):
		m.startPrompt(promptSave, m.path)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Open):
		m.startPrompt(promptOpen, m.path)
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Copy):
		m.copyToClipboard()

	case key.Matches(msg, m.keys.Preview):
		m.openPreview()

	case key.Matches(msg, m.keys.Picklists):
		m.picker = newPicklistState()
		m.currentMode = modePicklists

	case key.Matches(msg, m.keys.External):
		return m, m.editExternally()

	case key.Matches(msg, m.keys.Help):
		m.helpOffset = 0
		m.currentMode = modeHelp
	}
	return m, nil
}

func (m *Model) toggleCollapsed(block int) {
	if err := m.engine.ToggleCollapsed(block); err != nil {
		m.setError("%v", err)
		return
	}
	m.rebuildTargets()
	m.focusBlock(block)
}

// addEnvironment appends an empty binding to both the engine and the form
// so the two stay aligned without a sync.
func (m *Model) addEnvironment(block int) {
	j, err := m.engine.AddEnvironment(block, document.Binding{})
	if err != nil {
		m.setError("Failed to add environment: %v", err)
		return
	}
	m.forms[block].Rows = append(m.forms[block].Rows, envRow{})
	if err := m.engine.SetCollapsed(block, false); err != nil {
		m.setError("%v", err)
	}
	m.rebuildTargets()
	m.focus(target{kind: fieldAccount, block: block, index: j})
	m.dirty = true
}

func (m *Model) removeEnvironment(t target) {
	if err := m.engine.RemoveEnvironment(t.block, t.index); err != nil {
		m.setError("Failed to remove environment: %v", err)
		return
	}
	rows := m.forms[t.block].Rows
	m.forms[t.block].Rows = append(rows[:t.index], rows[t.index+1:]...)
	m.rebuildTargets()
	if t.index > 0 {
		m.focus(target{kind: fieldAccount, block: t.block, index: t.index - 1})
	} else {
		m.focusBlock(t.block)
	}
	m.dirty = true
}

func (m *Model) applyTheme(block int) {
	if err := m.syncForms(); err != nil {
		m.setError("Failed to apply theme: %v", err)
		return
	}
	pair := m.palette.Generate()
	if err := m.engine.SetStyle(block, pair.Style()); err != nil {
		m.setError("Failed to apply theme: %v", err)
		return
	}
	m.rebuild()
	m.focusBlock(block)
	m.dirty = true
	m.setStatus(fmt.Sprintf("Theme for block #%d: %s / %s", block+1, pair.Primary, pair.Secondary))
}

func (m *Model) startEdit(t target) {
	m.editing = t
	m.input.Placeholder = ""
	m.input.SetValue(m.fieldValue(t))
	m.input.CursorEnd()
	m.input.Focus()
	m.refreshSuggestions()
	m.currentMode = modeEditField
}

func (m *Model) refreshSuggestions() {
	m.suggestionIndex = 0
	switch m.editing.kind {
	case fieldAccount:
		m.suggestions = m.picklists.MatchAccounts(m.input.Value())
	case fieldRegion:
		m.suggestions = m.picklists.MatchRegions(m.input.Value())
	default:
		m.suggestions = nil
	}
}

func (m Model) updateEditField(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.currentMode = modeList
		return m, nil

	case "enter":
		value := m.input.Value()
		m.setFieldValue(m.editing, value)
		m.input.Blur()
		m.currentMode = modeList
		m.dirty = true
		m.setStatus("")
		if m.editing.kind == fieldStyle && !palette.IsHexColor(strings.ToLower(strings.TrimSpace(value))) {
			m.setError("%q is not a #rrggbb color", value)
		}
		return m, nil

	case "tab":
		if len(m.suggestions) > 0 {
			index := m.suggestionIndex % len(m.suggestions)
			list := m.suggestions
			m.input.SetValue(list[index])
			m.input.CursorEnd()
			m.suggestionIndex = index + 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refreshSuggestions()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		block := m.deleteCandidate
		m.currentMode = modeList
		if err := m.syncForms(); err != nil {
			m.setError("Failed to delete block: %v", err)
			return m, nil
		}
		if err := m.engine.DeleteBlock(block); err != nil {
			m.setError("Failed to delete block: %v", err)
			return m, nil
		}
		m.rebuild()
		if block >= m.engine.Len() {
			block = m.engine.Len() - 1
		}
		m.focusBlock(block)
		m.dirty = true
		m.setStatus(fmt.Sprintf("Deleted block #%d", m.deleteCandidate+1))
	case "n", "N", "esc", "q":
		m.currentMode = modeList
	}
	return m, nil
}

func (m *Model) startPrompt(kind promptKind, value string) {
	m.prompt = kind
	if kind == promptSave {
		m.input.Placeholder = "path to save"
	} else {
		m.input.Placeholder = "path to open"
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	m.currentMode = modePrompt
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.currentMode = modeList
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		m.input.Blur()
		m.currentMode = modeList
		if path == "" {
			return m, nil
		}
		if expanded, err := logging.ExpandHome(path); err == nil {
			path = expanded
		}
		if m.prompt == promptSave {
			m.save(path)
		} else {
			m.open(path)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// save writes the clean export, records it, and reloads the written file so
// the editor shows exactly what is on disk.
func (m *Model) save(path string) {
	if err := m.syncForms(); err != nil {
		m.setError("Failed to save: %v", err)
		return
	}
	doc := m.engine.ExportClean()
	data, err := doc.JSON()
	if err != nil {
		m.setError("Failed to save: %v", err)
		return
	}
	if err := doc.Save(path); err != nil {
		m.setError("Failed to save: %v", err)
		return
	}
	logging.Info("Saved %d blocks to %s", doc.Len(), path)
	m.record(storage.TargetFile, path, data)

	m.path = path
	m.dirty = false
	if err := m.engine.LoadFile(path); err != nil {
		m.setError("Saved, but failed to reload: %v", err)
		return
	}
	m.rebuild()
	m.setStatus(fmt.Sprintf("Saved %s", path))
}

func (m *Model) open(path string) {
	if err := m.engine.LoadFile(path); err != nil {
		m.setError("Failed to load file: %v", err)
		return
	}
	logging.Info("Loaded %d blocks from %s", m.engine.Len(), path)
	m.path = path
	m.dirty = false
	m.cursor = 0
	m.rebuild()
	m.setStatus(fmt.Sprintf("Loaded %s", path))
}

func (m *Model) copyToClipboard() {
	if m.clipboard == nil {
		m.setError("No clipboard available")
		return
	}
	if err := m.syncForms(); err != nil {
		m.setError("Failed to copy: %v", err)
		return
	}
	data, err := m.engine.ExportClean().JSON()
	if err != nil {
		m.setError("Failed to copy: %v", err)
		return
	}
	if err := m.clipboard.Copy(string(data)); err != nil {
		m.setError("Failed to copy: %v", err)
		return
	}
	m.record(storage.TargetClipboard, "", data)
	m.setStatus("Configuration copied to clipboard")
}

func (m *Model) record(targetName, location string, data []byte) {
	if m.history == nil {
		return
	}
	if location != "" {
		if abs, err := filepath.Abs(location); err == nil {
			location = abs
		}
	}
	if _, err := m.history.Record(targetName, location, string(data)); err != nil {
		logging.Warn("Failed to record export history: %v", err)
	}
}

func (m *Model) openPreview() {
	if err := m.syncForms(); err != nil {
		m.setError("Failed to preview: %v", err)
		return
	}
	data, err := m.engine.ExportClean().JSON()
	if err != nil {
		m.setError("Failed to preview: %v", err)
		return
	}
	theme := ""
	if m.config != nil {
		theme = m.config.Preview.SyntaxTheme
	}
	lines, err := highlightJSON(string(data), theme, m.useBasicColors)
	if err != nil {
		logging.Debug("Highlighting failed: %v", err)
	}
	m.previewLines = lines
	m.previewOffset = 0
	m.currentMode = modePreview
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := m.contentHeight()
	maxOffset := len(m.previewLines) - page
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch msg.String() {
	case "esc", "q", "p":
		m.currentMode = modeList
	case "up", "k":
		if m.previewOffset > 0 {
			m.previewOffset--
		}
	case "down", "j":
		if m.previewOffset < maxOffset {
			m.previewOffset++
		}
	case "pgup":
		m.previewOffset -= page
		if m.previewOffset < 0 {
			m.previewOffset = 0
		}
	case "pgdown", " ":
		m.previewOffset += page
		if m.previewOffset > maxOffset {
			m.previewOffset = maxOffset
		}
	case "y":
		m.copyToClipboard()
	}
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.currentMode = modeList
	case "up", "k":
		if m.helpOffset > 0 {
			m.helpOffset--
		}
	case "down", "j":
		if m.helpOffset < len(m.keys.helpBindings())-1 {
			m.helpOffset++
		}
	}
	return m, nil
}
