package tui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

const helpMarkdown = `# liteedit

## Mouse

| Action | Effect |
|--------|--------|
| Click an element | Select it and start dragging |
| Drag a corner handle | Resize the selection |
| Click empty canvas | Deselect |
| Double-click text | Edit the text in place |
| Click a layer | Select that element |
| Click a property | Edit that property |

## Keys

| Key | Effect |
|-----|--------|
| r / t | Add a rectangle / text |
| d, Del, Backspace | Delete the selection |
| e | Edit the selected text |
| Tab, Enter | Edit the selection's properties |
| h j k l, arrows | Nudge one cell |
| H J K L, Shift+arrows | Nudge five cells |
| ] / [ | Raise / lower one step |
| } / { | Bring to front / send to back |
| y / p | Copy / paste elements as JSON |
| E W P T | Export JSON, HTML, PNG, text |
| Esc | Deselect, or finish editing |
| ? | This help |
| q, Ctrl+C | Quit |

Changes are saved after every edit.
`

var (
	helpMu    sync.Mutex
	helpCache = make(map[int]string)
)

// renderHelp renders the help page for a terminal width. Renders are
// cached per width.
func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}

	helpMu.Lock()
	defer helpMu.Unlock()
	if out, ok := helpCache[width]; ok {
		return out
	}

	out := helpMarkdown
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.DarkStyle),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := r.Render(helpMarkdown); err == nil {
			out = rendered
		}
	}
	out = strings.Trim(out, "\n")
	helpCache[width] = out
	return out
}

func (m Model) helpLines() []string {
	return strings.Split(m.helpRendered, "\n")
}

func (m Model) helpHeight() int {
	return max(m.height-1, 1)
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := max(len(m.helpLines())-m.helpHeight(), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m Model) helpView() string {
	lines := m.helpLines()
	start := min(m.helpScroll, len(lines))
	end := min(start+m.helpHeight(), len(lines))

	var b strings.Builder
	b.WriteString(strings.Join(lines[start:end], "\n"))
	fmt.Fprintf(&b, "\nHelp (%d-%d of %d lines) | j/k to scroll, any other key to close",
		start+1, end, len(lines))
	return b.String()
}
