package host

import (
	"fmt"
	"sync"
)

// Valid node types accepted by CreateNode, mirroring the host application.
var nodeTypes = map[string]bool{
	"paintlayer":  true,
	"grouplayer":  true,
	"filelayer":   true,
	"filterlayer": true,
	"filllayer":   true,
	"clonelayer":  true,
	"vectorlayer": true,
}

// MemApp is an in-memory App used when running detached from the painting
// application, and by tests.
type MemApp struct {
	mu  sync.Mutex
	doc *MemDocument
}

// NewMemApp returns an app with no open document.
func NewMemApp() *MemApp {
	return &MemApp{}
}

// NewDocument opens a fresh document and makes it active.
func (a *MemApp) NewDocument(name string, width, height int) *MemDocument {
	a.mu.Lock()
	defer a.mu.Unlock()

	root := &MemNode{name: "root", nodeType: "grouplayer", visible: true, opacity: 255}
	background := &MemNode{name: "Background", nodeType: "paintlayer", visible: true, opacity: 255, parent: root}
	root.children = []*MemNode{background}

	a.doc = &MemDocument{
		name:       name,
		width:      width,
		height:     height,
		resolution: 300,
		colorDepth: "U8",
		colorModel: "RGBA",
		root:       root,
		active:     background,
	}
	return a.doc
}

// CloseDocument drops the active document.
func (a *MemApp) CloseDocument() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.doc = nil
}

func (a *MemApp) ActiveDocument() Document {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.doc == nil {
		return nil
	}
	return a.doc
}

func (a *MemApp) Version() string { return "5.2.0 (memory)" }

var _ App = (*MemApp)(nil)

// MemDocument implements Document over an in-memory layer tree.
type MemDocument struct {
	mu         sync.Mutex
	name       string
	width      int
	height     int
	resolution int
	colorDepth string
	colorModel string
	root       *MemNode
	active     *MemNode
	selection  *Selection
	refreshes  int
}

func (d *MemDocument) Name() string       { return d.name }
func (d *MemDocument) Width() int         { return d.width }
func (d *MemDocument) Height() int        { return d.height }
func (d *MemDocument) Resolution() int    { return d.resolution }
func (d *MemDocument) ColorDepth() string { return d.colorDepth }
func (d *MemDocument) ColorModel() string { return d.colorModel }

func (d *MemDocument) RootNode() Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.root
}

func (d *MemDocument) ActiveNode() Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return nil
	}
	return d.active
}

func (d *MemDocument) SetActiveNode(n Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if mn, ok := n.(*MemNode); ok {
		d.active = mn
	}
}

func (d *MemDocument) NodeByName(name string) Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := d.root.find(name); n != nil {
		return n
	}
	return nil
}

func (d *MemDocument) CreateNode(name, nodeType string) (Node, error) {
	if !nodeTypes[nodeType] {
		return nil, fmt.Errorf("unknown node type %q", nodeType)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n := &MemNode{name: name, nodeType: nodeType, visible: true, opacity: 255, parent: d.root}
	d.root.children = append(d.root.children, n)
	return n, nil
}

func (d *MemDocument) Selection() *Selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selection
}

func (d *MemDocument) SetSelection(s *Selection) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = s
}

func (d *MemDocument) RefreshProjection() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshes++
}

// Refreshes reports how many times the projection was refreshed.
func (d *MemDocument) Refreshes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.refreshes
}

var _ Document = (*MemDocument)(nil)

// MemNode implements Node.
type MemNode struct {
	name     string
	nodeType string
	visible  bool
	opacity  int
	offsetX  int
	offsetY  int
	rotation float64
	parent   *MemNode
	children []*MemNode
}

func (n *MemNode) Name() string        { return n.name }
func (n *MemNode) SetName(name string) { n.name = name }
func (n *MemNode) Type() string        { return n.nodeType }
func (n *MemNode) Visible() bool       { return n.visible }
func (n *MemNode) SetVisible(v bool)   { n.visible = v }
func (n *MemNode) Opacity() int        { return n.opacity }

func (n *MemNode) SetOpacity(value int) {
	if value < 0 {
		value = 0
	}
	if value > 255 {
		value = 255
	}
	n.opacity = value
}

func (n *MemNode) RotateNode(radians float64) { n.rotation += radians }

// Rotation reports the accumulated rotation in radians.
func (n *MemNode) Rotation() float64 { return n.rotation }

func (n *MemNode) Move(x, y int) {
	n.offsetX += x
	n.offsetY += y
}

// Offset reports the accumulated position offset.
func (n *MemNode) Offset() (int, int) { return n.offsetX, n.offsetY }

func (n *MemNode) Duplicate() Node {
	clone := n.clone()
	clone.parent = nil
	return clone
}

func (n *MemNode) clone() *MemNode {
	c := &MemNode{
		name:     n.name + " copy",
		nodeType: n.nodeType,
		visible:  n.visible,
		opacity:  n.opacity,
		offsetX:  n.offsetX,
		offsetY:  n.offsetY,
		rotation: n.rotation,
	}
	for _, child := range n.children {
		cc := child.clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func (n *MemNode) Remove() error {
	if n.parent == nil {
		return fmt.Errorf("cannot remove node %q: no parent", n.name)
	}
	siblings := n.parent.children
	for i, sib := range siblings {
		if sib == n {
			n.parent.children = append(siblings[:i], siblings[i+1:]...)
			n.parent = nil
			return nil
		}
	}
	return fmt.Errorf("node %q not found under its parent", n.name)
}

func (n *MemNode) ParentNode() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *MemNode) ChildNodes() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *MemNode) AddChildNode(child, above Node) error {
	mc, ok := child.(*MemNode)
	if !ok {
		return fmt.Errorf("unsupported child node")
	}
	mc.parent = n
	if above == nil {
		n.children = append(n.children, mc)
		return nil
	}
	for i, c := range n.children {
		if Node(c) == above {
			n.children = append(n.children[:i+1], append([]*MemNode{mc}, n.children[i+1:]...)...)
			return nil
		}
	}
	n.children = append(n.children, mc)
	return nil
}

func (n *MemNode) find(name string) *MemNode {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.find(name); found != nil {
			return found
		}
	}
	return nil
}

var _ Node = (*MemNode)(nil)
