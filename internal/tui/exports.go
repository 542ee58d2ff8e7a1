package tui

import (
	"errors"
	"fmt"
	"os"

	"liteedit/internal/export"
)

// startExport writes the document to the configured export directory,
// asking first when that would replace an existing file.
func (m *Model) startExport(f export.Format) {
	if m.editor.Document().Len() == 0 {
		m.errorMessage = "No elements to export!"
		return
	}
	path := m.cfg.ExportPath(f.DefaultName())
	if _, err := os.Stat(path); err == nil && m.cfg.Confirm() {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmOverwriteFile
		m.pendingExport = f
		m.pendingPath = path
		return
	}
	m.writeExport(f, path)
}

func (m *Model) writeExport(f export.Format, path string) {
	m.pendingPath = ""
	err := export.WriteFile(path, f, m.editor.Document(), export.Options{Scale: m.scale})
	switch {
	case errors.Is(err, export.ErrEmptyDocument):
		m.errorMessage = "No elements to export!"
	case err != nil:
		m.log.Error().Err(err).Str("path", path).Str("format", string(f)).Msg("export failed")
		m.errorMessage = fmt.Sprintf("Export failed: %v", err)
	default:
		m.log.Info().Str("path", path).Str("format", string(f)).Msg("document exported")
		m.successMessage = "Exported to " + path
	}
}
