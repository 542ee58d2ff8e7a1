package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"liteedit/internal/interaction"
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.canvasView(),
		strings.Repeat(" ", sideGap),
		m.sideView(),
	)
	return body + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	var status string
	switch m.mode {
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit liteedit? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status = fmt.Sprintf("Mode: %s", m.mode)
		if st := m.editor.Interaction(); st != interaction.Idle {
			status += " | " + strings.ToUpper(st.String())
		}
		if el, ok := m.editor.Document().Selected(); ok {
			status += fmt.Sprintf(" | Selected: %s (%.0f,%.0f %.0fx%.0f)", el.Label(), el.X, el.Y, el.W, el.H)
		}
		switch m.mode {
		case ModeEditing:
			status += " | Esc=done"
		case ModeProperty:
			status += " | Tab=next field, Enter/Esc=done"
		}
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage != "" {
			status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
		} else if m.successMessage == "" && m.mode == ModeNormal {
			status += " | ? for help | q to quit"
		}
	}
	if m.width > 0 {
		status = xansi.Truncate(status, m.width, "…")
	}
	return status
}
