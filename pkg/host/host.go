// Package host defines the painting application's scripting surface as
// consumed by the plugin. The real application provides documents, layer
// nodes and selections; this package only describes that object model and
// ships an in-memory stand-in for detached runs and tests.
package host

// App is the entry point into the running painting application.
type App interface {
	// ActiveDocument returns the currently focused document, or nil when
	// no document is open.
	ActiveDocument() Document
	Version() string
}

// Document is an open image document with a tree of layer nodes.
type Document interface {
	Name() string
	Width() int
	Height() int
	Resolution() int
	ColorDepth() string
	ColorModel() string

	RootNode() Node
	ActiveNode() Node
	SetActiveNode(Node)
	NodeByName(name string) Node
	CreateNode(name, nodeType string) (Node, error)

	Selection() *Selection
	SetSelection(*Selection)

	// RefreshProjection re-renders the canvas. Scripts must call it after
	// any change; the plugin also calls it after successful execution.
	RefreshProjection()
}

// Node is a drawable element within the document tree (a layer or group).
type Node interface {
	Name() string
	SetName(string)
	Type() string
	Visible() bool
	SetVisible(bool)
	// Opacity is in the 0-255 range, not a percentage.
	Opacity() int
	SetOpacity(int)
	// RotateNode takes radians, not degrees.
	RotateNode(radians float64)
	// Move offsets the node by x,y pixels relative to its current position.
	Move(x, y int)
	Duplicate() Node
	Remove() error
	ParentNode() Node
	ChildNodes() []Node
	AddChildNode(child, above Node) error
}

// Selection is a rectangular selection within a document.
type Selection struct {
	X      int
	Y      int
	Width  int
	Height int
	// Level is the selection intensity, 0-255.
	Level int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Select sets the selection rectangle and intensity.
func (s *Selection) Select(x, y, width, height, level int) {
	s.X = x
	s.Y = y
	s.Width = width
	s.Height = height
	s.Level = level
}

// DocumentContext is a snapshot of the host state used to build prompts.
type DocumentContext struct {
	HasDocument bool
	Document    DocumentInfo
	ActiveLayer *LayerInfo
	Selection   *SelectionInfo
}

// DocumentInfo describes the active document.
type DocumentInfo struct {
	Name       string
	Width      int
	Height     int
	ColorDepth string
	ColorModel string
	Resolution int
}

// LayerInfo describes the active layer node.
type LayerInfo struct {
	Name    string
	Type    string
	Visible bool
	Opacity int
}

// SelectionInfo describes the current selection bounds.
type SelectionInfo struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Snapshot captures the current document, layer and selection state.
func Snapshot(app App) DocumentContext {
	ctx := DocumentContext{}
	if app == nil {
		return ctx
	}

	doc := app.ActiveDocument()
	if doc == nil {
		return ctx
	}

	ctx.HasDocument = true
	ctx.Document = DocumentInfo{
		Name:       doc.Name(),
		Width:      doc.Width(),
		Height:     doc.Height(),
		ColorDepth: doc.ColorDepth(),
		ColorModel: doc.ColorModel(),
		Resolution: doc.Resolution(),
	}

	if node := doc.ActiveNode(); node != nil {
		ctx.ActiveLayer = &LayerInfo{
			Name:    node.Name(),
			Type:    node.Type(),
			Visible: node.Visible(),
			Opacity: node.Opacity(),
		}
	}

	if sel := doc.Selection(); sel != nil {
		ctx.Selection = &SelectionInfo{
			X:      sel.X,
			Y:      sel.Y,
			Width:  sel.Width,
			Height: sel.Height,
		}
	}

	return ctx
}
