package tui

// getMoveSpeed returns how many cells a nudge key moves the selection.
func getMoveSpeed(key string) int {
	switch key {
	case "H", "J", "K", "L", "shift+left", "shift+down", "shift+up", "shift+right":
		return 5
	}
	return 1
}

// handleNudge moves the selection by whole cells.
func (m *Model) handleNudge(key string) bool {
	speed := getMoveSpeed(key)
	dx, dy := 0, 0
	switch key {
	case "h", "H", "left", "shift+left":
		dx = -speed
	case "l", "L", "right", "shift+right":
		dx = speed
	case "k", "K", "up", "shift+up":
		dy = -speed
	case "j", "J", "down", "shift+down":
		dy = speed
	default:
		return false
	}
	return m.editor.Nudge(float64(dx)*m.scale.CellW, float64(dy)*m.scale.CellH)
}
