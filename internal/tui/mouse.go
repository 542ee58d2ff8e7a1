package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"liteedit/internal/interaction"
)

// canvasCells is the size of the canvas grid inside its border.
func (m Model) canvasCells() (cols, rows int) {
	b := m.editor.Document().Bounds()
	cols, rows = m.scale.Cells(b.Width, b.Height)
	return max(cols, 1), max(rows, 1)
}

func (m Model) sideLeft() int {
	cols, _ := m.canvasCells()
	return cols + 2 + sideGap
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || m.mode == ModeConfirm {
		return m, nil
	}

	cols, rows := m.canvasCells()
	col, row := msg.X-canvasLeft, msg.Y-canvasTop
	inCanvas := col >= 0 && row >= 0 && col < cols && row < rows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if inCanvas {
			return m.handleCanvasPress(col, row)
		}
		return m.handleSidePress(msg.X, msg.Y)
	case tea.MouseActionMotion:
		// Pointer positions outside the canvas still count so a drag
		// clamps against the edge.
		if m.editor.Interaction() != interaction.Idle {
			m.editor.PointerMove(m.scale.ToCanvas(col, row))
		}
	case tea.MouseActionRelease:
		m.editor.PointerUp()
	}
	return m, nil
}

// handleCanvasPress treats a second press on the same text element within
// the double-click window as a double activation.
func (m Model) handleCanvasPress(col, row int) (tea.Model, tea.Cmd) {
	p := m.scale.ToCanvas(col, row)
	if m.mode == ModeProperty {
		m.blurField()
	}

	now := m.now()
	hit, ok := interaction.HitTest(m.editor.Document(), p)
	if ok && hit.IsText() && hit.ID == m.lastPressID && now.Sub(m.lastPress) <= m.cfg.DoubleClick() {
		m.lastPressID = ""
		cmd := m.beginEdit(hit.ID)
		return m, cmd
	}

	m.lastPress = now
	m.lastPressID = ""
	if ok {
		m.lastPressID = hit.ID
	}
	m.editor.PointerDown(p)
	m.syncMode()
	return m, nil
}

func (m Model) handleSidePress(x, y int) (tea.Model, tea.Cmd) {
	if x < m.sideLeft() {
		return m, nil
	}
	rows := m.sideRows()
	i := y - sideTop
	if i < 0 || i >= len(rows) {
		return m, nil
	}

	switch r := rows[i]; r.kind {
	case rowField:
		cmd := m.focusField(r.field)
		return m, cmd
	case rowLayer:
		if m.mode == ModeProperty {
			m.blurField()
		}
		m.editor.Select(r.layer)
		m.syncMode()
	}
	return m, nil
}
