package export

import (
	"encoding/json"

	"liteedit/internal/document"
)

// JSON is the element array in document order, indented by two spaces. It
// matches the persisted form, so an export can be loaded back as a document.
func JSON(doc *document.Document) ([]byte, error) {
	if doc.Len() == 0 {
		return nil, ErrEmptyDocument
	}
	return json.MarshalIndent(doc.Elements(), "", "  ")
}
