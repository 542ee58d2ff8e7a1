// Package editor runs one editing session over a document. It routes input
// events to the interaction controller and the text-edit coordinator,
// persists after every committed mutation and decides when the render engine
// takes the cheap path and when it does a full pass.
//
// An Editor is not safe for concurrent use; every method is one event
// handling turn.
package editor

import (
	"context"

	"github.com/rs/zerolog"

	"liteedit/internal/document"
	"liteedit/internal/interaction"
	"liteedit/internal/render"
	"liteedit/internal/store"
	"liteedit/internal/textedit"
)

// DefaultHandleReach is how close, in canvas units, a press must land to a
// corner of the selection to grab the resize handle.
var DefaultHandleReach = interaction.Reach{X: 10, Y: 10}

type Editor struct {
	doc    *document.Document
	ctrl   *interaction.Controller
	text   *textedit.Coordinator
	engine *render.Engine
	store  store.Store
	log    zerolog.Logger

	// inputFocused is set while a property field has keyboard focus.
	inputFocused bool
}

type Option func(*Editor)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

func WithHandleReach(reach interaction.Reach) Option {
	return func(e *Editor) { e.ctrl = interaction.NewController(reach) }
}

// New wires a session around doc and runs the first reconciliation.
func New(doc *document.Document, st store.Store, opts ...Option) *Editor {
	text := textedit.New()
	e := &Editor{
		doc:    doc,
		ctrl:   interaction.NewController(DefaultHandleReach),
		text:   text,
		engine: render.NewEngine(text),
		store:  st,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.engine.Reconcile(doc)
	return e
}

// Document is the live document. Callers must mutate it only through the
// editor so persistence and rendering stay in step.
func (e *Editor) Document() *document.Document { return e.doc }

func (e *Editor) Engine() *render.Engine { return e.engine }

func (e *Editor) Snapshot() render.Snapshot { return e.engine.Snapshot() }

func (e *Editor) Interaction() interaction.State { return e.ctrl.State() }

// Editing reports the element under text edit.
func (e *Editor) Editing() (document.ID, bool) { return e.text.Editing() }

// EditText is the in-progress text of the open edit session.
func (e *Editor) EditText() string { return e.text.Text() }

// AddElement appends a new element, selects it and persists.
func (e *Editor) AddElement(kind document.Kind) document.ID {
	e.commitEdit()
	id := e.doc.Add(kind)
	if id == "" {
		return ""
	}
	e.log.Debug().Str("id", string(id)).Str("kind", string(kind)).Msg("element added")
	e.persist()
	e.reconcile()
	return id
}

// Delete removes id if present and persists.
func (e *Editor) Delete(id document.ID) bool {
	e.commitEdit()
	if !e.doc.Delete(id) {
		return false
	}
	e.log.Debug().Str("id", string(id)).Msg("element deleted")
	e.persist()
	e.reconcile()
	return true
}

func (e *Editor) DeleteSelected() bool {
	id := e.doc.SelectedID()
	if id == "" {
		return false
	}
	return e.Delete(id)
}

// Select moves the selection, closing any open text edit first.
func (e *Editor) Select(id document.ID) {
	e.commitEdit()
	e.doc.Select(id)
	e.reconcile()
}

func (e *Editor) Deselect() {
	e.Select("")
}

// FocusInput marks whether a property field holds keyboard focus.
func (e *Editor) FocusInput(focused bool) {
	e.inputFocused = focused
}

// KeyDown handles the global shortcuts. Keys are ignored while a text edit
// or a property field has focus, so Delete and Backspace reach the text.
func (e *Editor) KeyDown(key string) bool {
	if _, editing := e.text.Editing(); editing || e.inputFocused {
		return false
	}
	switch key {
	case "delete", "backspace":
		return e.DeleteSelected()
	}
	return false
}

// PointerDown dispatches a press. A press inside the element being edited
// belongs to the text; any other press first ends the edit session.
func (e *Editor) PointerDown(p interaction.Point) interaction.Outcome {
	if e.ctrl.Active() {
		return interaction.OutcomeIgnored
	}
	if id, editing := e.text.Editing(); editing {
		if el, ok := e.doc.Get(id); ok && el.Contains(p.X, p.Y) {
			return interaction.OutcomeIgnored
		}
		e.commitEdit()
	}

	out := e.ctrl.PointerDown(e.doc, p)
	if out != interaction.OutcomeIgnored {
		e.reconcile()
	}
	return out
}

// PointerMove commits one frame of the running session and patches only the
// moved node and the property panel.
func (e *Editor) PointerMove(p interaction.Point) bool {
	id, ok := e.ctrl.PointerMove(e.doc, p)
	if !ok {
		return false
	}
	return e.engine.Patch(e.doc, id)
}

// PointerUp ends the session, persists and runs a full pass.
func (e *Editor) PointerUp() bool {
	id, ok := e.ctrl.PointerUp()
	if !ok {
		return false
	}
	if el, found := e.doc.Get(id); found {
		e.log.Debug().
			Str("id", string(id)).
			Float64("x", el.X).Float64("y", el.Y).
			Float64("w", el.W).Float64("h", el.H).
			Msg("interaction committed")
	}
	e.persist()
	e.reconcile()
	return true
}

// DoubleActivate opens a text edit on a text element. An edit open on
// another element is committed first.
func (e *Editor) DoubleActivate(id document.ID) bool {
	el, ok := e.doc.Get(id)
	if !ok || !el.IsText() {
		return false
	}
	if cur, editing := e.text.Editing(); editing {
		if cur == id {
			return true
		}
		e.commitEdit()
	}
	if e.ctrl.Active() {
		e.ctrl.PointerUp()
		e.persist()
	}
	if e.doc.SelectedID() != id {
		e.doc.Select(id)
	}
	e.reconcile()
	return e.text.Begin(id, el.Text)
}

// EditInput records the current content of the edited node.
func (e *Editor) EditInput(text string) {
	e.text.Input(text)
}

// Blur ends the text edit: the text is written to the document, persisted
// and rendered.
func (e *Editor) Blur() (textedit.Commit, bool) {
	return e.commitEdit()
}

func (e *Editor) commitEdit() (textedit.Commit, bool) {
	commit, ok := e.text.End()
	if !ok {
		return commit, false
	}
	if e.doc.UpdateText(commit.ID, commit.Text) {
		e.log.Debug().Str("id", string(commit.ID)).Msg("text committed")
		e.persist()
	}
	e.engine.RefreshPanel(e.doc)
	e.reconcile()
	return commit, true
}

// SetProperty applies a property panel edit to the selected element.
// Numeric fields take the leading integer of value, 0 when there is none.
func (e *Editor) SetProperty(field Field, value string) bool {
	e.commitEdit()
	id := e.doc.SelectedID()
	if id == "" {
		return false
	}

	var ok bool
	switch field {
	case FieldColor:
		ok = e.doc.UpdateColor(id, value)
	case FieldText:
		ok = e.doc.UpdateText(id, value)
	default:
		v := float64(parseLeadingInt(value))
		patch := document.GeometryPatch{}
		switch field {
		case FieldX:
			patch.X = &v
		case FieldY:
			patch.Y = &v
		case FieldW:
			patch.W = &v
		case FieldH:
			patch.H = &v
		case FieldRotation:
			patch.Rotation = &v
		}
		ok = e.doc.UpdateGeometry(id, patch)
	}
	if !ok {
		return false
	}

	e.persist()
	e.reconcile()
	return true
}

// Nudge moves the selection by a canvas-unit offset, clamped like any other
// geometry change.
func (e *Editor) Nudge(dx, dy float64) bool {
	el, ok := e.doc.Selected()
	if !ok || e.ctrl.Active() {
		return false
	}
	x, y := el.X+dx, el.Y+dy
	if !e.doc.UpdateGeometry(el.ID, document.GeometryPatch{X: &x, Y: &y}) {
		return false
	}
	e.persist()
	e.reconcile()
	return true
}

// Paste adds a copy of each element offset by (dx, dy), with fresh ids and
// z-indexes, and selects the last one. Elements of unknown kind are skipped.
func (e *Editor) Paste(elems []document.Element, dx, dy float64) []document.ID {
	e.commitEdit()
	var ids []document.ID
	for _, el := range elems {
		id := e.doc.Add(el.Kind)
		if id == "" {
			continue
		}
		g := el.Geometry
		g.X += dx
		g.Y += dy
		e.doc.UpdateGeometry(id, document.PatchFrom(g))
		e.doc.UpdateColor(id, el.Color)
		e.doc.UpdateText(id, el.Text)
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	e.log.Debug().Int("count", len(ids)).Msg("elements pasted")
	e.persist()
	e.reconcile()
	return ids
}

func (e *Editor) Raise() bool { return e.reorder(e.doc.Raise) }
func (e *Editor) Lower() bool { return e.reorder(e.doc.Lower) }
func (e *Editor) BringToFront() bool { return e.reorder(e.doc.BringToFront) }
func (e *Editor) SendToBack() bool { return e.reorder(e.doc.SendToBack) }

func (e *Editor) reorder(op func(document.ID) bool) bool {
	id := e.doc.SelectedID()
	if id == "" || !op(id) {
		return false
	}
	e.persist()
	e.reconcile()
	return true
}

// persist saves the document. A failing store is logged and otherwise
// ignored; the in-memory document stays authoritative.
func (e *Editor) persist() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(context.Background(), e.doc.Elements()); err != nil {
		e.log.Error().Err(err).Msg("failed to save document")
	}
}

func (e *Editor) reconcile() {
	e.engine.Reconcile(e.doc)
}
