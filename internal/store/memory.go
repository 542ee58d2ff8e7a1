package store

import (
	"context"
	"encoding/json"
	"sync"

	"liteedit/internal/document"
)

// Memory is an in-process Store. It keeps the encoded form so a Load never
// aliases what was saved.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) ([]document.Element, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return Decode(m.data)
}

func (m *Memory) Save(ctx context.Context, elems []document.Element) error {
	data, err := Encode(elems)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.saves++
	return nil
}

// Saves counts successful Save calls.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Raw returns the last saved payload, or nil.
func (m *Memory) Raw() json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append(json.RawMessage(nil), m.data...)
}
