package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liteedit/internal/document"
	"liteedit/internal/store"
)

func get(t *testing.T, s *Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, body
}

func TestHealth(t *testing.T) {
	s := New(store.NewMemory(), document.DefaultBounds(), zerolog.Nop())

	resp, body := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}

func TestEmptyDocumentConflict(t *testing.T) {
	s := New(store.NewMemory(), document.DefaultBounds(), zerolog.Nop())

	for _, path := range []string{"/document.json", "/document.html", "/document.png"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, s, path)
			assert.Equal(t, http.StatusConflict, resp.StatusCode)
			assert.JSONEq(t, `{"error":"nothing to export"}`, string(body))
		})
	}
}

func TestServesSavedDocument(t *testing.T) {
	mem := store.NewMemory()
	doc := document.New(document.DefaultBounds())
	id := doc.Add(document.KindText)
	require.NoError(t, mem.Save(context.Background(), doc.Elements()))

	s := New(mem, document.DefaultBounds(), zerolog.Nop())

	resp, body := get(t, s, "/document.json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	var elems []document.Element
	require.NoError(t, json.Unmarshal(body, &elems))
	require.Len(t, elems, 1)
	assert.Equal(t, id, elems[0].ID)

	resp, body = get(t, s, "/document.html")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), document.DefaultText)

	resp, body = get(t, s, "/document.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "image/png")
	assert.Equal(t, "\x89PNG", string(body[:4]))
}

type brokenStore struct{}

func (brokenStore) Load(context.Context) ([]document.Element, error) {
	return nil, io.ErrUnexpectedEOF
}

func (brokenStore) Save(context.Context, []document.Element) error { return nil }

func TestStoreFailure(t *testing.T) {
	s := New(brokenStore{}, document.DefaultBounds(), zerolog.Nop())

	resp, _ := get(t, s, "/document.json")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
