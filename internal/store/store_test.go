package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liteedit/internal/document"
	"liteedit/internal/store"
	"liteedit/internal/store/jsonfile"
	"liteedit/internal/store/sqlite"
)

func sampleElements() []document.Element {
	return []document.Element{
		{
			ID:       "el_a",
			Kind:     document.KindRectangle,
			Geometry: document.Geometry{X: 10, Y: 20, W: 30, H: 40, Rotation: 15},
			Color:    "#ff000080",
			ZIndex:   4,
		},
		{
			ID:       "el_b",
			Kind:     document.KindText,
			Geometry: document.Geometry{X: 100.5, Y: 0, W: 150, H: 50},
			Color:    "#ffffff",
			Text:     "multi\nline <b>text</b>",
			ZIndex:   1,
		},
	}
}

func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	dir := t.TempDir()

	sq, err := sqlite.Open(context.Background(), filepath.Join(dir, "doc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	return map[string]store.Store{
		"memory":   store.NewMemory(),
		"jsonfile": jsonfile.New(filepath.Join(dir, "nested", "doc.json")),
		"sqlite":   sq,
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(ctx)
			require.ErrorIs(t, err, store.ErrNotFound)

			want := sampleElements()
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			// Overwrite, not append.
			require.NoError(t, s.Save(ctx, want[:1]))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want[:1], got)
		})
	}
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()

	doc, err := store.Restore(ctx, s, document.DefaultBounds())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())

	src := document.FromElements(document.DefaultBounds(), sampleElements())
	src.Select("el_a")
	require.NoError(t, s.Save(ctx, src.Elements()))

	doc, err = store.Restore(ctx, s, document.DefaultBounds())
	require.NoError(t, err)
	assert.Equal(t, src.Elements(), doc.Elements())
	assert.Equal(t, document.ID(""), doc.SelectedID(), "selection is not persisted")
}

func TestEncode_WireShape(t *testing.T) {
	data, err := store.Encode(sampleElements()[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"el_a","type":"rectangle","x":10,"y":20,"w":30,"h":40,"rotate":15,"color":"#ff000080","text":"","zIndex":4}]`, string(data))

	data, err = store.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestJSONFile_EmptyFileIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := jsonfile.New(path).Load(context.Background())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestJSONFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := jsonfile.New(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
