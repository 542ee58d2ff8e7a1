package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"liteedit/internal/document"
)

// Clipboard is the system clipboard. Tests swap in their own.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func (systemClipboard) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil && runtime.GOOS == "darwin" {
		if out, perr := exec.Command("pbpaste").Output(); perr == nil {
			return string(out), nil
		}
	}
	return text, err
}

func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimPrefix(text, "\ufeff")
	return strings.TrimSpace(text)
}

var errNoElements = errors.New("clipboard holds no elements")

// decodeElements reads either a JSON array of elements or a single element.
func decodeElements(text string) ([]document.Element, error) {
	switch {
	case strings.HasPrefix(text, "["):
		var elems []document.Element
		if err := json.Unmarshal([]byte(text), &elems); err != nil {
			return nil, fmt.Errorf("decode elements: %w", err)
		}
		return elems, nil
	case strings.HasPrefix(text, "{"):
		var el document.Element
		if err := json.Unmarshal([]byte(text), &el); err != nil {
			return nil, fmt.Errorf("decode element: %w", err)
		}
		return []document.Element{el}, nil
	}
	return nil, errNoElements
}

// copySelection puts the selected element, or the whole document when
// nothing is selected, on the clipboard as JSON.
func (m *Model) copySelection() {
	doc := m.editor.Document()
	elems := doc.Elements()
	if el, ok := doc.Selected(); ok {
		elems = []document.Element{el}
	}
	if len(elems) == 0 {
		m.errorMessage = "Nothing to copy"
		return
	}

	data, err := json.Marshal(elems)
	if err != nil {
		m.errorMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	if err := m.clip.WriteAll(string(data)); err != nil {
		m.log.Warn().Err(err).Msg("clipboard write failed")
		m.errorMessage = "Clipboard unavailable"
		return
	}
	m.successMessage = fmt.Sprintf("Copied %d element(s)", len(elems))
}

// paste adds the clipboard's elements one cell down and to the right of
// where they were copied from.
func (m *Model) paste() {
	text, err := m.clip.ReadAll()
	if err != nil {
		m.log.Warn().Err(err).Msg("clipboard read failed")
		m.errorMessage = "Clipboard unavailable"
		return
	}

	elems, err := decodeElements(cleanClipboardText(text))
	if err != nil {
		m.log.Debug().Err(err).Msg("paste rejected")
		m.errorMessage = "Clipboard holds no elements"
		return
	}

	ids := m.editor.Paste(elems, m.scale.CellW, m.scale.CellH)
	if len(ids) == 0 {
		m.errorMessage = "Clipboard holds no elements"
		return
	}
	m.successMessage = fmt.Sprintf("Pasted %d element(s)", len(ids))
}
