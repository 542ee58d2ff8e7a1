package export

import (
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"liteedit/internal/document"
	"liteedit/internal/render"
)

const (
	pngFontSize    = 14.0
	pngLineSpacing = 1.4
)

// canvasBackground matches the HTML export page.
var canvasBackground = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

func monoFace() (font.Face, error) {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", monoErr)
	}
	return truetype.NewFace(monoFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// PNG rasterizes doc at one pixel per canvas unit. Elements are drawn in
// paint order, rotated about their centers. Rectangles are filled with their
// color; text is centered in its box and drawn in its color. Colors that do
// not parse are skipped.
func PNG(w io.Writer, doc *document.Document) error {
	if doc.Len() == 0 {
		return ErrEmptyDocument
	}

	b := doc.Bounds()
	dc := gg.NewContext(int(b.Width), int(b.Height))
	dc.SetColor(canvasBackground)
	dc.Clear()

	face, err := monoFace()
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	for _, el := range doc.PaintOrder() {
		drawElementPNG(dc, el)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func drawElementPNG(dc *gg.Context, el document.Element) {
	paint, ok := render.ParseColor(el.Color)
	if !ok || !paint.Visible() {
		return
	}

	cx, cy := el.X+el.W/2, el.Y+el.H/2
	dc.Push()
	defer dc.Pop()
	dc.RotateAbout(gg.Radians(el.Rotation), cx, cy)
	dc.SetColor(paint.NRGBA())

	if el.IsText() {
		dc.DrawStringWrapped(el.Text, cx, cy, 0.5, 0.5, el.W, pngLineSpacing, gg.AlignCenter)
		return
	}
	dc.DrawRectangle(el.X, el.Y, el.W, el.H)
	dc.Fill()
}
