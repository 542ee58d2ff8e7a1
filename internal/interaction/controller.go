// Package interaction implements the pointer state machine that drags and
// resizes elements: Idle, Dragging(id) and Resizing(id, handle).
//
// Input is routed through a single dispatcher that hit-tests the pointer
// against the document, so callers never need to know which visual node was
// under the pointer.
package interaction

import (
	"liteedit/internal/document"
)

type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return "idle"
}

// Outcome reports what a pointer-down did.
type Outcome int

const (
	// OutcomeIgnored means a session was already running.
	OutcomeIgnored Outcome = iota
	OutcomeDeselected
	OutcomeDragging
	OutcomeResizing
)

// session is the state of one drag or resize. It is created on pointer-down
// and dropped on pointer-up.
type session struct {
	id        document.ID
	state     State
	handle    Handle
	start     Point
	startGeom document.Geometry
}

type Controller struct {
	reach   Reach
	session *session
}

// NewController returns an idle controller that grabs a handle when a
// pointer-down lands within handleReach of its corner.
func NewController(handleReach Reach) *Controller {
	return &Controller{reach: handleReach}
}

func (c *Controller) State() State {
	if c.session == nil {
		return Idle
	}
	return c.session.state
}

func (c *Controller) Active() bool { return c.session != nil }

// Session returns the element and handle of the running session. The handle
// is only meaningful while resizing.
func (c *Controller) Session() (document.ID, Handle, bool) {
	if c.session == nil {
		return "", TopLeft, false
	}
	return c.session.id, c.session.handle, true
}

// PointerDown starts a session. Handles of the selected element are tested
// first, then element bodies from the top of the paint order down. A press
// on empty canvas clears the selection. Input is only accepted while Idle.
func (c *Controller) PointerDown(doc *document.Document, p Point) Outcome {
	if c.session != nil {
		return OutcomeIgnored
	}

	if sel, ok := doc.Selected(); ok {
		if h, hit := HandleAt(sel.Geometry, p, c.reach); hit {
			c.session = &session{
				id:        sel.ID,
				state:     Resizing,
				handle:    h,
				start:     p,
				startGeom: sel.Geometry,
			}
			return OutcomeResizing
		}
	}

	el, ok := HitTest(doc, p)
	if !ok {
		doc.Deselect()
		return OutcomeDeselected
	}

	doc.Select(el.ID)
	c.session = &session{
		id:        el.ID,
		state:     Dragging,
		start:     p,
		startGeom: el.Geometry,
	}
	return OutcomeDragging
}

// PointerMove applies the pointer delta to the session's element and commits
// it to the document. It returns the element to patch; false means there is
// nothing to redraw.
func (c *Controller) PointerMove(doc *document.Document, p Point) (document.ID, bool) {
	s := c.session
	if s == nil {
		return "", false
	}

	d := p.Sub(s.start)
	var g document.Geometry
	if s.state == Resizing {
		g = Resize(s.handle, s.startGeom, d.X, d.Y, doc.Bounds())
	} else {
		g = Drag(s.startGeom, d.X, d.Y, doc.Bounds())
	}

	if !doc.UpdateGeometry(s.id, document.PatchFrom(g)) {
		return "", false
	}
	return s.id, true
}

// PointerUp ends the session and returns to Idle.
func (c *Controller) PointerUp() (document.ID, bool) {
	s := c.session
	c.session = nil
	if s == nil {
		return "", false
	}
	return s.id, true
}

// HitTest returns the top-most element under p.
func HitTest(doc *document.Document, p Point) (document.Element, bool) {
	order := doc.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].Contains(p.X, p.Y) {
			return order[i], true
		}
	}
	return document.Element{}, false
}
