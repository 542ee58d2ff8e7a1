// Package store defines the persistence contract for the canvas document and
// the wire encoding shared by its backends.
//
// Only the element list is persisted. Selection is session state and every
// loaded document starts deselected.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"liteedit/internal/document"
)

// Key is the storage key under which key/value backends keep the document.
const Key = "liteedit_v4"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved document")

type Store interface {
	// Load returns the saved elements in document order.
	Load(ctx context.Context) ([]document.Element, error)
	// Save replaces the saved elements.
	Save(ctx context.Context, elems []document.Element) error
}

// Encode renders elements in the wire form: a JSON array in document order.
func Encode(elems []document.Element) ([]byte, error) {
	if elems == nil {
		elems = []document.Element{}
	}
	return json.Marshal(elems)
}

func Decode(data []byte) ([]document.Element, error) {
	var elems []document.Element
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return elems, nil
}

// Restore loads from s into a document with the given bounds. A store with
// nothing saved yields an empty document.
func Restore(ctx context.Context, s Store, bounds document.Bounds, opts ...document.Option) (*document.Document, error) {
	elems, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return document.New(bounds, opts...), nil
	}
	if err != nil {
		return nil, err
	}
	return document.FromElements(bounds, elems, opts...), nil
}
