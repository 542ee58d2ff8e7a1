// Package export writes a document out as JSON, a standalone HTML page, a
// PNG image or a plain-text snapshot of the terminal painting.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"liteedit/internal/document"
	"liteedit/internal/render"
)

// ErrEmptyDocument is returned by every exporter when there is nothing to
// write. No output is produced in that case.
var ErrEmptyDocument = errors.New("nothing to export")

type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatText Format = "txt"
)

var Formats = []Format{FormatJSON, FormatHTML, FormatPNG, FormatText}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	case "png":
		return FormatPNG, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// DefaultName is the file name used when no output path is given.
func (f Format) DefaultName() string {
	switch f {
	case FormatJSON:
		return "liteedit_project.json"
	case FormatHTML:
		return "liteedit_design.html"
	}
	return "liteedit_design." + string(f)
}

// Options carries what the raster formats need beyond the document.
type Options struct {
	// Scale is the cell size for the text snapshot.
	Scale render.Scale
}

// Write renders doc in format f to w.
func Write(w io.Writer, f Format, doc *document.Document, opts Options) error {
	switch f {
	case FormatJSON:
		data, err := JSON(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatHTML:
		data, err := HTML(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case FormatPNG:
		return PNG(w, doc)
	case FormatText:
		return Text(w, doc, opts.Scale)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteFile renders fully in memory before touching path, so a rejected
// export leaves no file behind.
func WriteFile(path string, f Format, doc *document.Document, opts Options) error {
	var buf bytes.Buffer
	if err := Write(&buf, f, doc, opts); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// plainTree is doc's visual tree without selection marks.
func plainTree(doc *document.Document) render.Tree {
	eng := render.NewEngine(nil)
	eng.Reconcile(document.FromElements(doc.Bounds(), doc.Elements()))
	return eng.Tree()
}
