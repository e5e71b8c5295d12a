// Package ogimage draws social preview images from a small layout tree.
//
// Building the tree (what to draw) is separate from Rasterize (how to draw
// it): callers assemble Nodes, a Renderer lays them out and paints them.
package ogimage

// Kind is the type of a layout node.
type Kind int

const (
	KindBox Kind = iota
	KindText
)

// Direction is the main axis along which a box stacks its children.
type Direction int

const (
	Column Direction = iota
	Row
)

// Align positions children on the cross axis.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Weight is a font weight. Only regular and bold faces are loaded.
type Weight int

const (
	Regular Weight = 400
	Bold    Weight = 700
)

// Edges holds top, right, bottom and left sizes in pixels.
type Edges struct {
	Top, Right, Bottom, Left int
}

// All returns Edges with n on every side.
func All(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns Edges with n on the left and right.
func Horizontal(n int) Edges {
	return Edges{Right: n, Left: n}
}

// Style controls layout and painting of a Node. Text properties left at
// their zero value are inherited from the parent.
type Style struct {
	Direction  Direction
	AlignItems Align
	Gap        int
	Padding    Edges
	Margin     Edges
	Width      int // 0 means fit content
	Height     int // 0 means fit content
	Background Fill

	// Absolute removes the node from the flow and anchors it to its
	// parent's bottom-right corner, offset by Right and Bottom.
	Absolute bool
	Right    int
	Bottom   int

	FontSize   float64
	FontWeight Weight
	LineHeight float64 // multiple of FontSize
	Color      Fill
	MaxLines   int // text only; 0 means unlimited
}

// Node is one element of the layout tree.
type Node struct {
	Kind     Kind
	Style    Style
	Text     string
	Children []*Node
}

// Box returns a container node.
func Box(style Style, children ...*Node) *Node {
	return &Node{Kind: KindBox, Style: style, Children: children}
}

// Text returns a text node.
func Text(style Style, text string) *Node {
	return &Node{Kind: KindText, Style: style, Text: text}
}
