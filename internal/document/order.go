package document

import "slices"

// Raise moves the element one step up in paint order.
func (d *Document) Raise(id ID) bool {
	return d.step(id, 1)
}

// Lower moves the element one step down in paint order.
func (d *Document) Lower(id ID) bool {
	return d.step(id, -1)
}

// BringToFront puts the element above every other element.
func (d *Document) BringToFront(id ID) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	top := d.elements[i].ZIndex
	for j, el := range d.elements {
		if j != i && el.ZIndex >= top {
			top = el.ZIndex + 1
		}
	}
	d.elements[i].ZIndex = top
	return true
}

// SendToBack puts the element below every other element.
func (d *Document) SendToBack(id ID) bool {
	i, ok := d.index[id]
	if !ok {
		return false
	}
	bottom := d.elements[i].ZIndex
	for j, el := range d.elements {
		if j != i && el.ZIndex <= bottom {
			bottom = el.ZIndex - 1
		}
	}
	d.elements[i].ZIndex = bottom
	return true
}

func (d *Document) step(id ID, dir int) bool {
	if !d.Has(id) {
		return false
	}
	order := d.paintOrderIDs()
	pos := slices.Index(order, id)
	next := pos + dir
	if next < 0 || next >= len(order) {
		return true
	}

	a, b := d.index[id], d.index[order[next]]
	if d.elements[a].ZIndex == d.elements[b].ZIndex {
		// Tied z-indexes cannot be swapped into a new order; spread them
		// out first, keeping the current paint order.
		d.renumber(order)
	}
	d.elements[a].ZIndex, d.elements[b].ZIndex = d.elements[b].ZIndex, d.elements[a].ZIndex
	return true
}

func (d *Document) paintOrderIDs() []ID {
	order := d.PaintOrder()
	ids := make([]ID, len(order))
	for i, el := range order {
		ids[i] = el.ID
	}
	return ids
}

func (d *Document) renumber(order []ID) {
	for z, id := range order {
		d.elements[d.index[id]].ZIndex = z
	}
}
