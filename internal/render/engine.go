// Package render projects the document onto the visual tree, the property
// panel and the layer list.
//
// Reconcile is the authoritative full pass. Patch is the cheap path used
// while a pointer session runs: it rewrites one node's geometry and the
// panel and nothing else. The next Reconcile always replaces whatever Patch
// wrote.
package render

import (
	"math"

	"liteedit/internal/document"
)

// EditState reports the element under in-place text edit, if any.
type EditState interface {
	Editing() (document.ID, bool)
}

type Engine struct {
	edit   EditState
	tree   Tree
	panel  Panel
	layers []Layer
	// index maps element id to its position in tree.Nodes for Patch.
	index      map[document.ID]int
	generation int
}

func NewEngine(edit EditState) *Engine {
	return &Engine{
		edit:  edit,
		index: make(map[document.ID]int),
	}
}

func (e *Engine) editing() bool {
	if e.edit == nil {
		return false
	}
	_, ok := e.edit.Editing()
	return ok
}

// Reconcile rebuilds the visual tree and both side panels from doc. It does
// nothing while a text edit is open, so the edited node keeps its focus and
// cursor. The result depends only on doc, so two calls in a row agree.
func (e *Engine) Reconcile(doc *document.Document) bool {
	if e.editing() {
		return false
	}

	bounds := doc.Bounds()
	selected := doc.SelectedID()
	order := doc.PaintOrder()

	tree := Tree{
		Width:  bounds.Width,
		Height: bounds.Height,
		Nodes:  make([]Node, 0, len(order)),
	}
	index := make(map[document.ID]int, len(order))
	for i, el := range order {
		n := Node{
			ID:       el.ID,
			Kind:     el.Kind,
			Geometry: el.Geometry,
			Color:    el.Color,
			Text:     el.Text,
			ZIndex:   el.ZIndex,
			Selected: el.ID == selected,
		}
		if n.Selected {
			n.Handles = handleMarks(el.Geometry)
		}
		tree.Nodes = append(tree.Nodes, n)
		index[el.ID] = i
	}

	elems := doc.Elements()
	layers := make([]Layer, 0, len(elems))
	for i := len(elems) - 1; i >= 0; i-- {
		layers = append(layers, Layer{
			ID:       elems[i].ID,
			Label:    elems[i].Label(),
			Selected: elems[i].ID == selected,
		})
	}

	e.tree = tree
	e.index = index
	e.layers = layers
	e.panel = panelFor(doc)
	e.generation++
	return true
}

// Patch copies the current geometry of id into its node and refreshes the
// property panel. It is O(1) and does not touch any other node.
func (e *Engine) Patch(doc *document.Document, id document.ID) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	el, ok := doc.Get(id)
	if !ok {
		return false
	}

	n := &e.tree.Nodes[i]
	n.Geometry = el.Geometry
	if n.Handles != nil {
		n.Handles = handleMarks(el.Geometry)
	}
	e.RefreshPanel(doc)
	return true
}

// RefreshPanel repopulates the property panel alone. Suspended while a text
// edit is open.
func (e *Engine) RefreshPanel(doc *document.Document) {
	if e.editing() {
		return
	}
	e.panel = panelFor(doc)
}

func (e *Engine) Tree() Tree { return e.tree.clone() }
func (e *Engine) Panel() Panel { return e.panel }
func (e *Engine) Layers() []Layer { return append([]Layer(nil), e.layers...) }
func (e *Engine) Generation() int { return e.generation }

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tree:   e.Tree(),
		Panel:  e.Panel(),
		Layers: e.Layers(),
	}
}

func panelFor(doc *document.Document) Panel {
	el, ok := doc.Selected()
	if !ok {
		return Panel{}
	}
	p := Panel{
		Visible:  true,
		ID:       el.ID,
		Kind:     el.Kind,
		X:        round(el.X),
		Y:        round(el.Y),
		W:        round(el.W),
		H:        round(el.H),
		Rotation: el.Rotation,
		Color:    el.Color,
	}
	if el.IsText() {
		p.ShowText = true
		p.Text = el.Text
	}
	return p
}

func round(v float64) int {
	return int(math.Round(v))
}
