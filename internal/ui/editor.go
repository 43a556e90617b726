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
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaryorg/peacock/internal/logging"
)

type editorFinishedMsg struct {
	data []byte
	err  error
}

// editorCommand splits the configured editor so values like "code --wait" work.
func (m Model) editorCommand(path string) *exec.Cmd {
	editor := "nano"
	if m.config != nil && m.config.Editor.TextEditor != "" {
		editor = m.config.Editor.TextEditor
	}
	parts := strings.Fields(editor)
	return exec.Command(parts[0], append(parts[1:], path)...)
}

// editExternally hands the clean export to the text editor and loads the
// result back when the editor exits.
func (m *Model) editExternally() tea.Cmd {
	if err := m.syncForms(); err != nil {
		m.setError("Failed to start editor: %v", err)
		return nil
	}
	data, err := m.engine.ExportClean().JSON()
	if err != nil {
		m.setError("Failed to start editor: %v", err)
		return nil
	}

	tmpFile, err := os.CreateTemp("", "peacock-edit-*.json")
	if err != nil {
		m.setError("Failed to create temp file: %v", err)
		return nil
	}
	tmpFilePath := tmpFile.Name()
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpFilePath)
		m.setError("Failed to write temp file: %v", err)
		return nil
	}
	tmpFile.Close()

	return tea.ExecProcess(m.editorCommand(tmpFilePath), func(err error) tea.Msg {
		defer os.Remove(tmpFilePath)
		if err != nil {
			return editorFinishedMsg{err: err}
		}
		content, readErr := os.ReadFile(tmpFilePath)
		return editorFinishedMsg{data: content, err: readErr}
	})
}

func (m *Model) finishExternalEdit(msg editorFinishedMsg) {
	if msg.err != nil {
		m.setError("Editor failed: %v", msg.err)
		return
	}
	if err := m.engine.Load(msg.data); err != nil {
		m.setError("Edit rejected, document unchanged: %v", err)
		return
	}
	logging.Info("Reloaded %d blocks from editor", m.engine.Len())
	m.rebuild()
	m.dirty = true
	m.setStatus("Document updated from editor")
}
