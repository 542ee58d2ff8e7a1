package export

import (
	"bufio"
	"fmt"
	"io"

	"liteedit/internal/document"
	"liteedit/internal/render"
)

// Text writes the canvas as the terminal paints it, one line per cell row,
// without selection marks.
func Text(w io.Writer, doc *document.Document, scale render.Scale) error {
	if doc.Len() == 0 {
		return ErrEmptyDocument
	}
	if scale.CellW <= 0 || scale.CellH <= 0 {
		return fmt.Errorf("invalid cell size %gx%g", scale.CellW, scale.CellH)
	}

	bw := bufio.NewWriter(w)
	for _, line := range render.Rasterize(plainTree(doc), scale).Lines() {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}
