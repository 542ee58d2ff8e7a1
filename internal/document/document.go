// Package document holds the canvas document: the ordered element list, the
// current selection and the mutators that keep both within their invariants.
//
// Every mutator is synchronous and leaves the document valid on return. A
// mutation that names an unknown element is a no-op reported through the
// boolean result, never an error.
package document

import (
	"slices"
)

type Document struct {
	bounds   Bounds
	elements []Element
	index    map[ID]int
	selected ID
	newID    func() ID
}

type Option func(*Document)

// WithIDFunc replaces the element ID generator.
func WithIDFunc(fn func() ID) Option {
	return func(d *Document) { d.newID = fn }
}

func New(bounds Bounds, opts ...Option) *Document {
	d := &Document{
		bounds: bounds,
		index:  make(map[ID]int),
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromElements rebuilds a document from persisted elements. Geometry is
// re-clamped, elements without an ID or with a repeated ID are dropped and
// the result starts deselected.
func FromElements(bounds Bounds, elems []Element, opts ...Option) *Document {
	d := New(bounds, opts...)
	for _, el := range elems {
		if el.ID == "" {
			continue
		}
		if _, dup := d.index[el.ID]; dup {
			continue
		}
		if !el.Kind.Valid() {
			el.Kind = KindRectangle
		}
		el.Geometry = bounds.Clamp(el.Geometry)
		d.index[el.ID] = len(d.elements)
		d.elements = append(d.elements, el)
	}
	return d
}

func (d *Document) Bounds() Bounds { return d.bounds }
func (d *Document) Len() int { return len(d.elements) }

// Add appends a new element with default geometry and selects it. The
// z-index is the element count at insert time. Unknown kinds add nothing
// and return the zero ID.
func (d *Document) Add(kind Kind) ID {
	if !kind.Valid() {
		return ""
	}
	id := d.newID()
	for d.Has(id) {
		id = d.newID()
	}

	el := newElement(id, kind, len(d.elements))
	el.Geometry = d.bounds.Clamp(el.Geometry)

	d.index[id] = len(d.elements)
	d.elements = append(d.elements, el)
	d.selected = id
	return id
}

// Delete removes the element and clears the selection if it pointed at it.
func (d *Document) Delete(id ID) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.elements = slices.Delete(d.elements, i, i+1)
	d.reindex()
	if d.selected == id {
		d.selected = ""
	}
	return true
}

func (d *Document) UpdateGeometry(id ID, patch GeometryPatch) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.elements[i].Geometry = d.bounds.Clamp(patch.apply(d.elements[i].Geometry))
	return true
}

func (d *Document) UpdateColor(id ID, color string) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.elements[i].Color = color
	return true
}

func (d *Document) UpdateText(id ID, text string) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	d.elements[i].Text = text
	return true
}

// Select points the selection at id. An unknown id deselects.
func (d *Document) Select(id ID) {
	if _, ok := d.index[id]; !ok {
		d.selected = ""
		return
	}
	d.selected = id
}

func (d *Document) Deselect() { d.selected = "" }

func (d *Document) SelectedID() ID { return d.selected }

func (d *Document) Selected() (Element, bool) {
	return d.Get(d.selected)
}

func (d *Document) Get(id ID) (Element, bool) {
	i, ok := d.index[id]
	if !ok {
		return Element{}, false
	}
	return d.elements[i], true
}

func (d *Document) Has(id ID) bool {
	_, ok := d.index[id]
	return ok
}

// Elements returns a copy of the elements in document (insertion) order.
func (d *Document) Elements() []Element {
	return slices.Clone(d.elements)
}

// PaintOrder returns a copy of the elements sorted by ascending z-index,
// ties kept in insertion order.
func (d *Document) PaintOrder() []Element {
	out := slices.Clone(d.elements)
	slices.SortStableFunc(out, func(a, b Element) int {
		return a.ZIndex - b.ZIndex
	})
	return out
}

func (d *Document) reindex() {
	clear(d.index)
	for i, el := range d.elements {
		d.index[el.ID] = i
	}
}
