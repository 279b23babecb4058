package host

import "testing"

func TestNewDocument(t *testing.T) {
	app := NewMemApp()

	if app.ActiveDocument() != nil {
		t.Fatal("fresh app has an active document")
	}

	doc := app.NewDocument("Painting", 1920, 1080)

	if app.ActiveDocument() == nil {
		t.Fatal("document not active after NewDocument")
	}
	if doc.Name() != "Painting" || doc.Width() != 1920 || doc.Height() != 1080 {
		t.Errorf("document = %s %dx%d", doc.Name(), doc.Width(), doc.Height())
	}

	// A fresh document has a root group with a background paint layer,
	// and the background is active.
	root := doc.RootNode()
	children := root.ChildNodes()
	if len(children) != 1 || children[0].Name() != "Background" {
		t.Fatalf("root children = %v", children)
	}
	if doc.ActiveNode().Name() != "Background" {
		t.Errorf("active node = %q, want Background", doc.ActiveNode().Name())
	}
}

func TestCloseDocument(t *testing.T) {
	app := NewMemApp()
	app.NewDocument("Painting", 100, 100)
	app.CloseDocument()
	if app.ActiveDocument() != nil {
		t.Error("document still active after CloseDocument")
	}
}

func TestCreateNode(t *testing.T) {
	app := NewMemApp()
	doc := app.NewDocument("Painting", 100, 100)

	n, err := doc.CreateNode("Sketch", "paintlayer")
	if err != nil {
		t.Fatalf("CreateNode() error = %v", err)
	}
	if !n.Visible() || n.Opacity() != 255 {
		t.Errorf("new node: visible=%v opacity=%d", n.Visible(), n.Opacity())
	}
	if doc.NodeByName("Sketch") == nil {
		t.Error("NodeByName cannot find the new layer")
	}

	if _, err := doc.CreateNode("Bad", "nosuchtype"); err == nil {
		t.Error("CreateNode accepted an unknown node type")
	}
}

func TestNodeByNameSearchesTree(t *testing.T) {
	app := NewMemApp()
	doc := app.NewDocument("Painting", 100, 100)

	group, _ := doc.CreateNode("Group", "grouplayer")
	inner := &MemNode{name: "Inner", nodeType: "paintlayer", visible: true, opacity: 255}
	if err := group.AddChildNode(inner, nil); err != nil {
		t.Fatal(err)
	}

	if doc.NodeByName("Inner") == nil {
		t.Error("nested node not found")
	}
	if doc.NodeByName("Missing") != nil {
		t.Error("found a node that does not exist")
	}
}

func TestSetActiveNode(t *testing.T) {
	app := NewMemApp()
	doc := app.NewDocument("Painting", 100, 100)

	n, _ := doc.CreateNode("Sketch", "paintlayer")
	doc.SetActiveNode(n)
	if doc.ActiveNode().Name() != "Sketch" {
		t.Errorf("active node = %q, want Sketch", doc.ActiveNode().Name())
	}
}

func TestOpacityClamped(t *testing.T) {
	n := &MemNode{opacity: 128}

	n.SetOpacity(300)
	if n.Opacity() != 255 {
		t.Errorf("Opacity() = %d, want 255", n.Opacity())
	}
	n.SetOpacity(-5)
	if n.Opacity() != 0 {
		t.Errorf("Opacity() = %d, want 0", n.Opacity())
	}
}

func TestMoveAccumulates(t *testing.T) {
	n := &MemNode{}
	n.Move(10, 5)
	n.Move(-3, 2)
	x, y := n.Offset()
	if x != 7 || y != 7 {
		t.Errorf("Offset() = (%d, %d), want (7, 7)", x, y)
	}
}

func TestDuplicate(t *testing.T) {
	app := NewMemApp()
	doc := app.NewDocument("Painting", 100, 100)
	n, _ := doc.CreateNode("Sketch", "paintlayer")
	n.SetOpacity(100)

	dup := n.Duplicate()
	if dup.Name() != "Sketch copy" {
		t.Errorf("duplicate name = %q, want Sketch copy", dup.Name())
	}
	if dup.Opacity() != 100 {
		t.Errorf("duplicate opacity = %d, want 100", dup.Opacity())
	}
	if dup.ParentNode() != nil {
		t.Error("duplicate already has a parent")
	}
}

func TestRemove(t *testing.T) {
	app := NewMemApp()
	doc := app.NewDocument("Painting", 100, 100)
	n, _ := doc.CreateNode("Sketch", "paintlayer")

	if err := n.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if doc.NodeByName("Sketch") != nil {
		t.Error("node still in tree after Remove")
	}

	// The root has no parent and cannot be removed.
	if err := doc.RootNode().Remove(); err == nil {
		t.Error("Remove() on root succeeded")
	}
}

func TestAddChildNodeAbove(t *testing.T) {
	root := &MemNode{name: "root", nodeType: "grouplayer"}
	a := &MemNode{name: "a"}
	b := &MemNode{name: "b"}
	c := &MemNode{name: "c"}

	root.AddChildNode(a, nil)
	root.AddChildNode(b, nil)
	root.AddChildNode(c, a)

	children := root.ChildNodes()
	want := []string{"a", "c", "b"}
	if len(children) != 3 {
		t.Fatalf("got %d children", len(children))
	}
	for i, name := range want {
		if children[i].Name() != name {
			t.Errorf("children[%d] = %q, want %q", i, children[i].Name(), name)
		}
	}
	if c.ParentNode() != Node(root) {
		t.Error("inserted child has wrong parent")
	}
}

func TestSnapshot(t *testing.T) {
	app := NewMemApp()

	ctx := Snapshot(app)
	if ctx.HasDocument {
		t.Error("HasDocument = true with no document")
	}

	doc := app.NewDocument("Painting", 640, 480)
	sel := NewSelection()
	sel.Select(1, 2, 3, 4, 255)
	doc.SetSelection(sel)

	ctx = Snapshot(app)
	if !ctx.HasDocument {
		t.Fatal("HasDocument = false")
	}
	if ctx.Document.Name != "Painting" || ctx.Document.Width != 640 || ctx.Document.Height != 480 {
		t.Errorf("Document = %+v", ctx.Document)
	}
	if ctx.ActiveLayer == nil || ctx.ActiveLayer.Name != "Background" {
		t.Errorf("ActiveLayer = %+v", ctx.ActiveLayer)
	}
	if ctx.Selection == nil || ctx.Selection.Width != 3 || ctx.Selection.Height != 4 {
		t.Errorf("Selection = %+v", ctx.Selection)
	}
}

func TestSnapshotNilApp(t *testing.T) {
	ctx := Snapshot(nil)
	if ctx.HasDocument {
		t.Error("HasDocument = true for nil app")
	}
}
