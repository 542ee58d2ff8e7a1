package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID identifies an element for its whole lifetime. The zero value means
// "no element".
type ID string

// NewID returns a fresh element identifier.
func NewID() ID {
	return ID("el_" + uuid.NewString())
}

type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindText      Kind = "text"
)

func (k Kind) Valid() bool {
	return k == KindRectangle || k == KindText
}

// ParseKind accepts the wire names plus the short forms used on the command line.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rectangle", "rect", "r":
		return KindRectangle, nil
	case "text", "t":
		return KindText, nil
	}
	return "", fmt.Errorf("unknown element kind %q", s)
}

const (
	DefaultColor = "#0d9aff00"
	DefaultText  = "Type here"
)

// Element is a single shape on the canvas. The JSON form is flat so saved
// documents and JSON exports share one layout.
type Element struct {
	ID   ID   `json:"id"`
	Kind Kind `json:"type"`
	Geometry
	// Color is the fill of a rectangle or the text color of a text element.
	Color  string `json:"color"`
	Text   string `json:"text"`
	ZIndex int    `json:"zIndex"`
}

func (e Element) IsText() bool { return e.Kind == KindText }

// Label is the short name shown in the layer list.
func (e Element) Label() string {
	if e.IsText() {
		return "T " + string(e.Kind)
	}
	return "▢ " + string(e.Kind)
}

func newElement(id ID, kind Kind, z int) Element {
	el := Element{
		ID:   id,
		Kind: kind,
		Geometry: Geometry{
			X: 50,
			Y: 50,
			W: 150,
			H: 150,
		},
		Color:  DefaultColor,
		ZIndex: z,
	}
	if kind == KindText {
		el.H = 50
		el.Text = DefaultText
	}
	return el
}
