package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"liteedit/internal/document"
	"liteedit/internal/render"
)

var (
	canvasBackground, _ = colorful.Hex("#1e1e1e")

	canvasStyle  = lipgloss.NewStyle().Background(lipgloss.Color(canvasBackground.Hex()))
	canvasBorder = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#555555"))
)

// displayTree is the engine's tree with the in-progress edit text shown on
// the edited node. The engine itself holds off until the edit is committed.
func (m Model) displayTree() render.Tree {
	tree := m.editor.Engine().Tree()
	id, editing := m.editor.Editing()
	if !editing {
		return tree
	}
	for i := range tree.Nodes {
		if tree.Nodes[i].ID == id {
			tree.Nodes[i].Text = m.editor.EditText()
		}
	}
	return tree
}

func (m Model) canvasView() string {
	tree := m.displayTree()
	r := render.Rasterize(tree, m.scale)

	styles := make([]lipgloss.Style, len(tree.Nodes))
	for i, n := range tree.Nodes {
		styles[i] = nodeStyle(n)
	}

	lines := make([]string, r.Rows)
	for y := range r.Rows {
		var b strings.Builder
		start := 0
		for x := 1; x <= r.Cols; x++ {
			if x < r.Cols && r.Owner[y][x] == r.Owner[y][start] {
				continue
			}
			st := canvasStyle
			if owner := r.Owner[y][start]; owner >= 0 {
				st = styles[owner]
			}
			b.WriteString(st.Render(string(r.Cells[y][start:x])))
			start = x
		}
		lines[y] = b.String()
	}
	return canvasBorder.Render(strings.Join(lines, "\n"))
}

// nodeStyle fills rectangles with their color and draws text in its color,
// both blended over the canvas background. Fully transparent colors keep
// the terminal defaults so the element stays visible.
func nodeStyle(n render.Node) lipgloss.Style {
	st := canvasStyle
	if paint, ok := render.ParseColor(n.Color); ok && paint.Visible() {
		c := paint.Over(canvasBackground)
		if n.Kind == document.KindText {
			st = st.Foreground(lipgloss.Color(c.Hex()))
		} else {
			st = st.Background(lipgloss.Color(c.Hex())).Foreground(contrast(c))
		}
	}
	if n.Selected {
		st = st.Bold(true)
	}
	return st
}

func contrast(c colorful.Color) lipgloss.Color {
	if l, _, _ := c.Lab(); l > 0.6 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}
