// Package tui is the terminal front end of the editor: a bubbletea program
// that draws the canvas, the property panel and the layer list, and turns
// mouse and keyboard input into editor events.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"liteedit/internal/config"
	"liteedit/internal/document"
	"liteedit/internal/editor"
	"liteedit/internal/export"
	"liteedit/internal/render"
)

type Model struct {
	editor *editor.Editor
	cfg    *config.Config
	scale  render.Scale
	keys   keyMap
	log    zerolog.Logger
	clip   Clipboard
	now    func() time.Time

	width  int
	height int

	mode          Mode
	confirmAction ConfirmAction
	pendingExport export.Format
	pendingPath   string

	help         bool
	helpScroll   int
	helpRendered string

	field     editor.Field
	input     textinput.Model
	textField textarea.Model
	text      textarea.Model

	lastPress   time.Time
	lastPressID document.ID

	errorMessage   string
	successMessage string
}

type Option func(*Model)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Model) { m.log = l }
}

func WithClipboard(c Clipboard) Option {
	return func(m *Model) { m.clip = c }
}

// WithClock replaces time.Now for double-click detection.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func New(ed *editor.Editor, cfg *config.Config, opts ...Option) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 64
	input.Width = sideWidth - 9

	// The text property keeps every rune and newline of the element.
	textField := textarea.New()
	textField.ShowLineNumbers = false
	textField.Prompt = ""
	textField.CharLimit = 0
	textField.MaxHeight = 0
	textField.SetWidth(sideWidth)
	textField.SetHeight(3)

	text := textarea.New()
	text.ShowLineNumbers = false
	text.Prompt = ""
	text.CharLimit = 0
	text.MaxHeight = 0
	text.SetWidth(sideWidth)
	text.SetHeight(4)

	m := Model{
		editor: ed,
		cfg:    cfg,
		scale:  cfg.Scale(),
		keys:   defaultKeyMap(),
		log:    zerolog.Nop(),
		clip:   systemClipboard{},
		now:    time.Now,
		input:     input,
		textField: textField,
		text:      text,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Mode() Mode { return m.mode }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help {
			m.helpRendered = renderHelp(m.width)
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and similar messages go to whichever input has focus.
	var cmd tea.Cmd
	switch m.mode {
	case ModeEditing:
		m.text, cmd = m.text.Update(msg)
	case ModeProperty:
		if m.field == editor.FieldText {
			m.textField, cmd = m.textField.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		return m.handleHelpKey(msg)
	}
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeEditing:
		return m.handleEditKey(msg)
	case ModeProperty:
		return m.handlePropertyKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.cfg.Confirm() {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help = true
		m.helpScroll = 0
		m.helpRendered = renderHelp(m.width)
	case key.Matches(msg, m.keys.AddRect):
		m.editor.AddElement(document.KindRectangle)
	case key.Matches(msg, m.keys.AddText):
		m.editor.AddElement(document.KindText)
	case key.Matches(msg, m.keys.Delete):
		m.editor.KeyDown("delete")
	case key.Matches(msg, m.keys.Edit):
		if id := m.editor.Document().SelectedID(); id != "" {
			cmd := m.beginEdit(id)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Deselect):
		m.editor.Deselect()
	case key.Matches(msg, m.keys.Properties):
		if m.editor.Document().SelectedID() != "" {
			cmd := m.focusField(editor.FieldX)
			return m, cmd
		}
	case key.Matches(msg, m.keys.Raise):
		m.editor.Raise()
	case key.Matches(msg, m.keys.Lower):
		m.editor.Lower()
	case key.Matches(msg, m.keys.Front):
		m.editor.BringToFront()
	case key.Matches(msg, m.keys.Back):
		m.editor.SendToBack()
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Paste):
		m.paste()
	case key.Matches(msg, m.keys.ExportJSON):
		m.startExport(export.FormatJSON)
	case key.Matches(msg, m.keys.ExportHTML):
		m.startExport(export.FormatHTML)
	case key.Matches(msg, m.keys.ExportPNG):
		m.startExport(export.FormatPNG)
	case key.Matches(msg, m.keys.ExportText):
		m.startExport(export.FormatText)
	default:
		m.handleNudge(msg.String())
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			m.writeExport(m.pendingExport, m.pendingPath)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

// beginEdit opens a text edit on id and hands the keyboard to the textarea.
func (m *Model) beginEdit(id document.ID) tea.Cmd {
	if !m.editor.DoubleActivate(id) {
		return nil
	}
	if m.mode == ModeProperty {
		m.blurField()
	}
	m.mode = ModeEditing
	m.text.SetValue(m.editor.EditText())
	return m.text.Focus()
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+s":
		m.endEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	m.editor.EditInput(m.text.Value())
	return m, cmd
}

func (m *Model) endEdit() {
	m.editor.Blur()
	m.text.Blur()
	m.mode = ModeNormal
}

// syncMode drops out of edit mode when the editor closed the edit session
// on its own, for example after a press outside the edited element.
func (m *Model) syncMode() {
	if m.mode != ModeEditing {
		return
	}
	if _, editing := m.editor.Editing(); !editing {
		m.text.Blur()
		m.mode = ModeNormal
	}
}
