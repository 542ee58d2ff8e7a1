package render

import (
	"slices"

	"liteedit/internal/document"
	"liteedit/internal/interaction"
)

// Node is the visual projection of one element.
type Node struct {
	ID       document.ID
	Kind     document.Kind
	Geometry document.Geometry
	Color    string
	Text     string
	ZIndex   int
	Selected bool
	// Handles is set only on the selected node.
	Handles []HandleMark
}

// HandleMark is a resize affordance drawn at a corner of the selected node.
type HandleMark struct {
	Handle interaction.Handle
	At     interaction.Point
}

// Tree is the visual tree: nodes in paint order on a canvas of fixed size.
type Tree struct {
	Width  float64
	Height float64
	Nodes  []Node
}

// Panel is the property panel content for the selected element.
type Panel struct {
	Visible  bool
	ID       document.ID
	Kind     document.Kind
	X        int
	Y        int
	W        int
	H        int
	Rotation float64
	Color    string
	// Text and ShowText apply to text elements only.
	Text     string
	ShowText bool
}

// Layer is one row of the layer list.
type Layer struct {
	ID       document.ID
	Label    string
	Selected bool
}

// Snapshot is a deep copy of everything the engine currently displays.
type Snapshot struct {
	Tree   Tree
	Panel  Panel
	Layers []Layer
}

func (t Tree) clone() Tree {
	out := t
	out.Nodes = slices.Clone(t.Nodes)
	for i := range out.Nodes {
		out.Nodes[i].Handles = slices.Clone(out.Nodes[i].Handles)
	}
	return out
}

// Node returns the node for id.
func (t Tree) Node(id document.ID) (Node, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func handleMarks(g document.Geometry) []HandleMark {
	marks := make([]HandleMark, 0, len(interaction.Handles))
	for _, h := range interaction.Handles {
		marks = append(marks, HandleMark{Handle: h, At: h.Corner(g)})
	}
	return marks
}
