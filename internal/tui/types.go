package tui

type Mode int

const (
	ModeNormal Mode = iota
	// ModeEditing: a text element is being edited in place.
	ModeEditing
	// ModeProperty: a property panel field holds keyboard focus.
	ModeProperty
	ModeConfirm
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeEditing:
		return "EDIT"
	case ModeProperty:
		return "PROPERTY"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOverwriteFile
)

// Screen layout. The canvas sits in a one-cell border at the top left and
// the side panel starts one column right of it.
const (
	canvasLeft = 1
	canvasTop  = 1
	sideGap    = 1
	sideWidth  = 30
	sideTop    = 0
)
