package asset

// ComponentKind identifies the host component attached to a scene node.
type ComponentKind string

const (
	ComponentNone            ComponentKind = ""
	ComponentNavBall         ComponentKind = "NavBall"
	ComponentInternalNavBall ComponentKind = "InternalNavBall"
)

// Node is one object in the scene graph.
type Node struct {
	Name     string
	Kind     ComponentKind
	Renderer *Renderer
	Children []*Node
}

// NewNode creates a node with the given children.
func NewNode(name string, children ...*Node) *Node {
	return &Node{Name: name, Children: children}
}

// Find returns the first node (pre-order, including n) carrying kind.
func (n *Node) Find(kind ComponentKind) *Node {
	if n == nil {
		return nil
	}
	if kind != ComponentNone && n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// FindNamed returns the first node (pre-order, including n) called name.
func (n *Node) FindNamed(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindNamed(name); found != nil {
			return found
		}
	}
	return nil
}

// Scene is the live object graph.
type Scene struct {
	Root *Node
}

// NewScene creates a scene whose root holds nodes.
func NewScene(nodes ...*Node) *Scene {
	return &Scene{Root: NewNode("", nodes...)}
}

// Find returns the first node carrying kind anywhere in the scene.
func (s *Scene) Find(kind ComponentKind) *Node {
	if s == nil {
		return nil
	}
	return s.Root.Find(kind)
}

// FindIn returns the first node carrying kind inside the subtree rooted at
// the node called space. A missing space yields nil.
func (s *Scene) FindIn(space string, kind ComponentKind) *Node {
	if s == nil {
		return nil
	}
	return s.Root.FindNamed(space).Find(kind)
}
