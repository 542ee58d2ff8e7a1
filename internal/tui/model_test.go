package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liteedit/internal/config"
	"liteedit/internal/document"
	"liteedit/internal/editor"
	"liteedit/internal/export"
	"liteedit/internal/interaction"
	"liteedit/internal/store"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type harness struct {
	m     Model
	ed    *editor.Editor
	mem   *store.Memory
	clip  *fakeClipboard
	clock *fakeClock
	cfg   *config.Config
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	n := 0
	doc := document.New(document.DefaultBounds(), document.WithIDFunc(func() document.ID {
		n++
		return document.ID(fmt.Sprintf("el_%d", n))
	}))
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.ExportDir = t.TempDir()

	mem := store.NewMemory()
	ed := editor.New(doc, mem, editor.WithHandleReach(cfg.HandleReach()))

	h := &harness{
		ed:    ed,
		mem:   mem,
		clip:  &fakeClipboard{},
		clock: &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		cfg:   &cfg,
	}
	h.m = New(ed, &cfg, WithClipboard(h.clip), WithClock(h.clock.Now))
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) keys(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) key(t tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: t})
}

// press, move and release send mouse events at a canvas cell.
func (h *harness) press(col, row int) {
	h.send(tea.MouseMsg{X: col + canvasLeft, Y: row + canvasTop, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func (h *harness) move(col, row int) {
	h.send(tea.MouseMsg{X: col + canvasLeft, Y: row + canvasTop, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func (h *harness) release(col, row int) {
	h.send(tea.MouseMsg{X: col + canvasLeft, Y: row + canvasTop, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
}

func (h *harness) selected(t *testing.T) document.Element {
	t.Helper()
	el, ok := h.ed.Document().Selected()
	require.True(t, ok, "expected a selection")
	return el
}

func (h *harness) sideRowIndex(t *testing.T, match func(sideRow) bool) int {
	t.Helper()
	for i, r := range h.m.sideRows() {
		if match(r) {
			return i
		}
	}
	t.Fatal("side row not found")
	return -1
}

func TestAddAndDeleteKeys(t *testing.T) {
	h := newHarness(t)

	h.keys("r")
	require.Equal(t, 1, h.ed.Document().Len())
	assert.Equal(t, document.KindRectangle, h.selected(t).Kind)

	h.keys("t")
	require.Equal(t, 2, h.ed.Document().Len())
	assert.Equal(t, document.KindText, h.selected(t).Kind)

	h.keys("d")
	assert.Equal(t, 1, h.ed.Document().Len())

	h.key(tea.KeyBackspace)
	assert.Equal(t, 1, h.ed.Document().Len(), "nothing selected after delete")
	assert.Equal(t, 3, h.mem.Saves())
}

func TestMouseDragClampsToCanvas(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	id := h.selected(t).ID

	// Cell (10,5) is the canvas point (105,110), inside the rectangle and
	// away from its corners.
	h.press(10, 5)
	h.move(60, 30)
	h.move(110, 55)
	assert.Equal(t, 1, h.mem.Saves(), "drag frames are not persisted")
	h.release(110, 55)

	el, ok := h.ed.Document().Get(id)
	require.True(t, ok)
	assert.Equal(t, 650.0, el.X)
	assert.Equal(t, 450.0, el.Y)
	assert.Equal(t, 2, h.mem.Saves())
}

func TestMouseResizeFromHandle(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	id := h.selected(t).ID

	// Cell (19,9) holds the bottom-right corner (200,200).
	h.press(19, 9)
	h.move(29, 14)
	h.release(29, 14)

	el, _ := h.ed.Document().Get(id)
	assert.Equal(t, 50.0, el.X)
	assert.Equal(t, 50.0, el.Y)
	assert.Equal(t, 250.0, el.W)
	assert.Equal(t, 250.0, el.H)
}

func TestPressBesideHandleDrags(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	id := h.selected(t).ID

	// Cell (6,3) is the canvas point (65,70): the body of the 150x50 text
	// box, one cell right of and below the top-left handle cell (5,2).
	h.press(6, 3)
	assert.Equal(t, interaction.Dragging, h.ed.Interaction())
	h.move(8, 3)
	h.release(8, 3)

	el, _ := h.ed.Document().Get(id)
	assert.Equal(t, 70.0, el.X)
	assert.Equal(t, 50.0, el.Y)
	assert.Equal(t, 150.0, el.W)
	assert.Equal(t, 50.0, el.H)

	// The drawn handle cell itself still resizes.
	h.press(7, 2)
	assert.Equal(t, interaction.Resizing, h.ed.Interaction())
	h.release(7, 2)
}

func TestPressOnEmptyCanvasDeselects(t *testing.T) {
	h := newHarness(t)
	h.keys("r")

	h.press(70, 25)
	h.release(70, 25)

	assert.Empty(t, h.ed.Document().SelectedID())
}

func TestDoubleClickEditsText(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	id := h.selected(t).ID

	h.press(10, 3)
	h.release(10, 3)
	assert.Equal(t, ModeNormal, h.m.Mode())

	h.clock.Advance(100 * time.Millisecond)
	h.press(10, 3)
	require.Equal(t, ModeEditing, h.m.Mode())
	editing, ok := h.ed.Editing()
	require.True(t, ok)
	assert.Equal(t, id, editing)

	saves := h.mem.Saves()
	h.keys("!")
	assert.Equal(t, document.DefaultText+"!", h.ed.EditText())
	assert.Equal(t, saves, h.mem.Saves(), "typing is not persisted")

	// d and backspace belong to the text while editing.
	h.keys("d")
	h.key(tea.KeyBackspace)
	assert.Equal(t, 1, h.ed.Document().Len())

	h.key(tea.KeyEsc)
	assert.Equal(t, ModeNormal, h.m.Mode())
	el, _ := h.ed.Document().Get(id)
	assert.Equal(t, document.DefaultText+"!", el.Text)
	assert.Equal(t, saves+1, h.mem.Saves())
}

func TestSlowSecondPressDoesNotEdit(t *testing.T) {
	h := newHarness(t)
	h.keys("t")

	h.press(10, 3)
	h.release(10, 3)
	h.clock.Advance(time.Second)
	h.press(10, 3)
	h.release(10, 3)

	assert.Equal(t, ModeNormal, h.m.Mode())
	_, editing := h.ed.Editing()
	assert.False(t, editing)
}

func TestPressOutsideEditCommits(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	h.keys("e")
	require.Equal(t, ModeEditing, h.m.Mode())
	h.keys("?")

	h.press(70, 25)
	h.release(70, 25)

	assert.Equal(t, ModeNormal, h.m.Mode())
	assert.False(t, h.m.help, "? went to the text, not the help page")
	el := h.ed.Document().Elements()[0]
	assert.Equal(t, document.DefaultText+"?", el.Text)
}

func TestEditKeyIgnoresRectangles(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	h.keys("e")
	assert.Equal(t, ModeNormal, h.m.Mode())
}

func TestPropertyFieldEditing(t *testing.T) {
	h := newHarness(t)
	h.keys("r")

	h.key(tea.KeyTab)
	require.Equal(t, ModeProperty, h.m.Mode())
	assert.Equal(t, editor.FieldX, h.m.field)
	assert.Equal(t, "50", h.m.input.Value())

	h.key(tea.KeyBackspace)
	h.key(tea.KeyBackspace)
	assert.Equal(t, 0.0, h.selected(t).X)
	h.keys("7")
	assert.Equal(t, 7.0, h.selected(t).X)

	h.key(tea.KeyDelete)
	assert.Equal(t, 1, h.ed.Document().Len(), "delete belongs to the field")

	h.key(tea.KeyTab)
	assert.Equal(t, editor.FieldY, h.m.field)

	h.key(tea.KeyEnter)
	assert.Equal(t, ModeNormal, h.m.Mode())
	h.key(tea.KeyDelete)
	assert.Equal(t, 0, h.ed.Document().Len(), "delete works again once the field is released")
}

func TestTextPropertyKeepsLongMultilineText(t *testing.T) {
	h := newHarness(t)
	h.keys("t")

	long := strings.Repeat("abcdefghij", 4) + "\n" + strings.Repeat("klmnopqrst", 5) + "z"
	require.Len(t, []rune(long), 92)
	require.True(t, h.ed.SetProperty(editor.FieldText, long))

	row := h.sideRowIndex(t, func(r sideRow) bool { return r.kind == rowField && r.field == editor.FieldText })
	h.send(tea.MouseMsg{X: h.m.sideLeft() + 2, Y: sideTop + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	require.Equal(t, ModeProperty, h.m.Mode())
	require.Equal(t, editor.FieldText, h.m.field)
	assert.Equal(t, long, h.m.textField.Value())

	h.key(tea.KeyBackspace)
	trimmed := long[:len(long)-1]
	assert.Equal(t, trimmed, h.selected(t).Text)
	assert.Contains(t, h.selected(t).Text, "\n")

	h.key(tea.KeyEnter)
	assert.Equal(t, ModeProperty, h.m.Mode(), "enter starts a new line")
	h.keys("end")
	assert.Equal(t, trimmed+"\nend", h.selected(t).Text)
	assert.Contains(t, xansi.Strip(h.m.View()), "Text property")

	h.key(tea.KeyEsc)
	assert.Equal(t, ModeNormal, h.m.Mode())
	assert.Equal(t, trimmed+"\nend", h.selected(t).Text)
}

func TestPropertyTabSkipsTextForRectangles(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	h.key(tea.KeyTab)
	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, editor.FieldColor, h.m.field)

	h.key(tea.KeyEsc)
	h.keys("t")
	h.key(tea.KeyTab)
	h.send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, editor.FieldText, h.m.field)
}

func TestLayerClickSelects(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	first := h.selected(t).ID
	h.keys("r")
	require.NotEqual(t, first, h.selected(t).ID)

	row := h.sideRowIndex(t, func(r sideRow) bool { return r.kind == rowLayer && r.layer == first })
	h.send(tea.MouseMsg{X: h.m.sideLeft(), Y: sideTop + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, first, h.selected(t).ID)
}

func TestPropertyRowClickFocuses(t *testing.T) {
	h := newHarness(t)
	h.keys("r")

	row := h.sideRowIndex(t, func(r sideRow) bool { return r.kind == rowField && r.field == editor.FieldW })
	h.send(tea.MouseMsg{X: h.m.sideLeft() + 2, Y: sideTop + row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	assert.Equal(t, ModeProperty, h.m.Mode())
	assert.Equal(t, editor.FieldW, h.m.field)
	assert.Equal(t, "150", h.m.input.Value())
}

func TestNudge(t *testing.T) {
	h := newHarness(t)
	h.keys("r")

	h.keys("l")
	assert.Equal(t, 60.0, h.selected(t).X)
	h.keys("J")
	assert.Equal(t, 150.0, h.selected(t).Y)
	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 50.0, h.selected(t).X)
}

func TestReorderKeys(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	first := h.selected(t).ID
	h.keys("r")

	h.keys("[")
	order := h.ed.Document().PaintOrder()
	assert.Equal(t, first, order[1].ID)

	h.keys("}")
	order = h.ed.Document().PaintOrder()
	assert.NotEqual(t, first, order[1].ID)
}

func TestQuitConfirm(t *testing.T) {
	h := newHarness(t)

	h.keys("q")
	assert.Equal(t, ModeConfirm, h.m.Mode())
	h.keys("n")
	assert.Equal(t, ModeNormal, h.m.Mode())

	h.keys("q")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestQuitWithoutConfirmations(t *testing.T) {
	h := newHarness(t)
	off := false
	h.cfg.Confirmations = &off

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestCopyPaste(t *testing.T) {
	h := newHarness(t)
	h.keys("r")

	h.keys("y")
	var copied []document.Element
	require.NoError(t, json.Unmarshal([]byte(h.clip.text), &copied))
	require.Len(t, copied, 1)

	h.keys("p")
	require.Equal(t, 2, h.ed.Document().Len())
	pasted := h.selected(t)
	assert.NotEqual(t, copied[0].ID, pasted.ID)
	assert.Equal(t, 60.0, pasted.X)
	assert.Equal(t, 70.0, pasted.Y)
	assert.Contains(t, h.m.successMessage, "Pasted 1")
}

func TestPasteRejectsForeignText(t *testing.T) {
	h := newHarness(t)
	h.clip.text = "hello"

	h.keys("p")
	assert.Equal(t, 0, h.ed.Document().Len())
	assert.Equal(t, "Clipboard holds no elements", h.m.errorMessage)
}

func TestClipboardUnavailable(t *testing.T) {
	h := newHarness(t)
	h.keys("r")
	h.clip.err = errors.New("no clipboard utility")

	h.keys("y")
	assert.Equal(t, "Clipboard unavailable", h.m.errorMessage)
}

func TestExportKeys(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 400, Height: 40})

	h.keys("E")
	assert.Equal(t, "No elements to export!", h.m.errorMessage)

	h.keys("r")
	h.keys("E")
	path := filepath.Join(h.cfg.ExportDir, export.FormatJSON.DefaultName())
	assert.FileExists(t, path)
	assert.Equal(t, "Exported to "+path, h.m.successMessage)

	h.keys("E")
	require.Equal(t, ModeConfirm, h.m.Mode())
	assert.Contains(t, xansi.Strip(h.m.View()), "already exists. Overwrite?")
	h.keys("y")
	assert.Equal(t, ModeNormal, h.m.Mode())
	assert.Equal(t, "Exported to "+path, h.m.successMessage)

	for _, k := range []string{"W", "P", "T"} {
		h.keys(k)
	}
	for _, f := range []export.Format{export.FormatHTML, export.FormatPNG, export.FormatText} {
		_, err := os.Stat(filepath.Join(h.cfg.ExportDir, f.DefaultName()))
		assert.NoError(t, err, f)
	}
}

func TestViewShowsCanvasAndPanels(t *testing.T) {
	h := newHarness(t)
	out := xansi.Strip(h.m.View())
	assert.Contains(t, out, "Nothing selected")
	assert.Contains(t, out, "No elements")
	assert.Contains(t, out, "? for help")

	h.keys("t")
	out = xansi.Strip(h.m.View())
	assert.Contains(t, out, "Properties")
	assert.Contains(t, out, "Layers")
	assert.Contains(t, out, "T text")
	assert.Contains(t, out, document.DefaultText)
	assert.Contains(t, out, "Selected: T text (50,50 150x50)")
}

func TestViewShowsTextWhileEditing(t *testing.T) {
	h := newHarness(t)
	h.keys("t")
	h.keys("e")
	h.keys("XY")

	out := xansi.Strip(h.m.canvasView())
	assert.Contains(t, out, document.DefaultText+"XY")
	assert.Equal(t, document.DefaultText, h.ed.Document().Elements()[0].Text)
}

func TestHelpScreen(t *testing.T) {
	h := newHarness(t)
	h.send(tea.WindowSizeMsg{Width: 80, Height: 10})

	h.keys("?")
	require.True(t, h.m.help)
	assert.Contains(t, xansi.Strip(h.m.View()), "j/k to scroll")

	h.keys("j")
	assert.Equal(t, 1, h.m.helpScroll)
	h.keys("k")
	assert.Equal(t, 0, h.m.helpScroll)

	h.keys("x")
	assert.False(t, h.m.help)
	assert.Equal(t, 0, h.ed.Document().Len())
}

func TestDecodeElements(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{name: "array", text: `[{"id":"a","type":"text"},{"id":"b","type":"rectangle"}]`, want: 2},
		{name: "single", text: `{"id":"a","type":"rectangle"}`, want: 1},
		{name: "plain text", text: "hello", wantErr: true},
		{name: "broken json", text: "[{", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, err := decodeElements(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, elems, tt.want)
		})
	}
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "[1,\n2]", cleanClipboardText("\ufeff  [1,\r\n2]\r\n"))
}

func TestGetMoveSpeed(t *testing.T) {
	assert.Equal(t, 1, getMoveSpeed("h"))
	assert.Equal(t, 1, getMoveSpeed("left"))
	assert.Equal(t, 5, getMoveSpeed("L"))
	assert.Equal(t, 5, getMoveSpeed("shift+up"))
}
