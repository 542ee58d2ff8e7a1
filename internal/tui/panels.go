package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"liteedit/internal/document"
	"liteedit/internal/editor"
)

type rowKind int

const (
	rowPlain rowKind = iota
	rowHeader
	rowField
	rowLayer
)

// sideRow is one line of the side panel. Mouse presses map to rows by
// index, so View and handleSidePress must both go through sideRows.
type sideRow struct {
	kind   rowKind
	text   string
	field  editor.Field
	layer  document.ID
	active bool
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0d9aff"))
	activeStyle = lipgloss.NewStyle().Reverse(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
)

func (m Model) sideRows() []sideRow {
	snap := m.editor.Snapshot()
	p := snap.Panel

	rows := []sideRow{{kind: rowHeader, text: "Properties"}}
	if !p.Visible {
		rows = append(rows, sideRow{text: "Nothing selected"})
	} else {
		rows = append(rows, sideRow{text: document.Element{Kind: p.Kind}.Label()})
		for _, f := range visibleFields(p.ShowText) {
			rows = append(rows, sideRow{
				kind:   rowField,
				field:  f,
				text:   strings.ReplaceAll(fieldValue(p, f), "\n", "↵"),
				active: m.mode == ModeProperty && m.field == f,
			})
		}
	}

	rows = append(rows, sideRow{}, sideRow{kind: rowHeader, text: "Layers"})
	if len(snap.Layers) == 0 {
		rows = append(rows, sideRow{text: "No elements"})
	}
	for _, l := range snap.Layers {
		rows = append(rows, sideRow{kind: rowLayer, layer: l.ID, text: l.Label, active: l.Selected})
	}
	return rows
}

func (m Model) sideView() string {
	var lines []string
	for _, r := range m.sideRows() {
		lines = append(lines, m.renderRow(r))
	}
	switch {
	case m.mode == ModeEditing:
		lines = append(lines, "", headerStyle.Render("Editing text"), m.text.View())
	case m.mode == ModeProperty && m.field == editor.FieldText:
		lines = append(lines, "", headerStyle.Render("Text property"), m.textField.View())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(r sideRow) string {
	switch r.kind {
	case rowHeader:
		return headerStyle.Render(r.text)
	case rowField:
		label := labelStyle.Render(fmt.Sprintf("%-7s", r.field.String()))
		switch {
		case r.active && r.field == editor.FieldText:
			return label + " " + activeStyle.Render(xansi.Truncate(r.text, sideWidth-8, "…"))
		case r.active:
			return label + " " + m.input.View()
		}
		return label + " " + xansi.Truncate(r.text, sideWidth-8, "…")
	case rowLayer:
		text := xansi.Truncate(r.text, sideWidth, "…")
		if r.active {
			return activeStyle.Render(text)
		}
		return text
	}
	return xansi.Truncate(r.text, sideWidth, "…")
}
