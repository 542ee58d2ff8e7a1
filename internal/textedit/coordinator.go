// Package textedit tracks the single in-place text editing session.
//
// The state is explicit so the render engine can hold off reconciliation and
// the key handler can leave Delete/Backspace to the edited text while a
// session is open.
package textedit

import "liteedit/internal/document"

// Commit is the result of closing a session: the element and the text it
// held when focus left it.
type Commit struct {
	ID   document.ID
	Text string
}

type Coordinator struct {
	editing bool
	id      document.ID
	text    string
}

func New() *Coordinator {
	return &Coordinator{}
}

// Begin opens a session on id with the element's current text. It refuses
// while another session is open; the caller ends that one first.
func (c *Coordinator) Begin(id document.ID, text string) bool {
	if c.editing || id == "" {
		return false
	}
	c.editing = true
	c.id = id
	c.text = text
	return true
}

// Editing reports the element under edit.
func (c *Coordinator) Editing() (document.ID, bool) {
	return c.id, c.editing
}

// Input replaces the in-progress text. Ignored when no session is open.
func (c *Coordinator) Input(text string) {
	if !c.editing {
		return
	}
	c.text = text
}

func (c *Coordinator) Text() string { return c.text }

// End closes the session and hands back the text to commit.
func (c *Coordinator) End() (Commit, bool) {
	if !c.editing {
		return Commit{}, false
	}
	commit := Commit{ID: c.id, Text: c.text}
	c.editing = false
	c.id = ""
	c.text = ""
	return commit, true
}
