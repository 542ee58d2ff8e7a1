package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"liteedit/internal/editor"
	"liteedit/internal/render"
)

// focusField gives the keyboard to one property field of the selection.
func (m *Model) focusField(f editor.Field) tea.Cmd {
	panel := m.editor.Engine().Panel()
	if !panel.Visible {
		return nil
	}
	if m.mode == ModeEditing {
		m.endEdit()
	}
	m.mode = ModeProperty
	m.field = f
	m.editor.FocusInput(true)
	if f == editor.FieldText {
		m.input.Blur()
		m.textField.SetValue(panel.Text)
		return m.textField.Focus()
	}
	m.textField.Blur()
	m.input.SetValue(fieldValue(panel, f))
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) blurField() {
	m.input.Blur()
	m.textField.Blur()
	m.editor.FocusInput(false)
	m.mode = ModeNormal
}

// handlePropertyKey edits the focused field. The text field is multi-line,
// so there enter starts a new line and up/down move the cursor; only esc
// and tab leave it.
func (m Model) handlePropertyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multiline := m.field == editor.FieldText

	switch msg.String() {
	case "esc":
		m.blurField()
		return m, nil
	case "enter":
		if !multiline {
			m.blurField()
			return m, nil
		}
	case "tab":
		cmd := m.focusField(m.nextField(1))
		return m, cmd
	case "shift+tab":
		cmd := m.focusField(m.nextField(-1))
		return m, cmd
	case "down":
		if !multiline {
			cmd := m.focusField(m.nextField(1))
			return m, cmd
		}
	case "up":
		if !multiline {
			cmd := m.focusField(m.nextField(-1))
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if multiline {
		before := m.textField.Value()
		m.textField, cmd = m.textField.Update(msg)
		if v := m.textField.Value(); v != before {
			m.editor.SetProperty(m.field, v)
		}
		return m, cmd
	}

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.editor.SetProperty(m.field, v)
	}
	return m, cmd
}

// nextField steps through the fields the selection shows, wrapping around.
func (m Model) nextField(step int) editor.Field {
	fields := visibleFields(m.editor.Engine().Panel().ShowText)
	cur := 0
	for i, f := range fields {
		if f == m.field {
			cur = i
		}
	}
	next := (cur + step + len(fields)) % len(fields)
	return fields[next]
}

func visibleFields(showText bool) []editor.Field {
	if showText {
		return editor.Fields
	}
	fields := make([]editor.Field, 0, len(editor.Fields))
	for _, f := range editor.Fields {
		if f != editor.FieldText {
			fields = append(fields, f)
		}
	}
	return fields
}

func fieldValue(p render.Panel, f editor.Field) string {
	switch f {
	case editor.FieldX:
		return strconv.Itoa(p.X)
	case editor.FieldY:
		return strconv.Itoa(p.Y)
	case editor.FieldW:
		return strconv.Itoa(p.W)
	case editor.FieldH:
		return strconv.Itoa(p.H)
	case editor.FieldRotation:
		return strconv.FormatFloat(p.Rotation, 'f', -1, 64)
	case editor.FieldColor:
		return p.Color
	case editor.FieldText:
		return p.Text
	}
	return ""
}
