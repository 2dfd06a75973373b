// Package model holds the goal/characteristic tree of the quality model.
// Nodes live in a flat arena indexed by NodeID; parent links are plain
// indices, never owning references, so the tree has a single ownership root
// and upward navigation stays a lookup.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielpatrickdp/quality-assessor/internal/metric"
)

// #region kinds

// Kind tags a goal node as leaf or composite. Fixed at construction, never
// mixed: composites hold sub-goals, leaves hold directly attached metrics.
type Kind int

const (
	KindLeaf Kind = iota
	KindComposite
)

func (k Kind) String() string {
	if k == KindComposite {
		return "composite"
	}
	return "leaf"
}

// #endregion kinds

// #region node

// NodeID indexes a goal inside the tree arena.
type NodeID int

// None is the absent-node id, used for detached nodes and root parents.
const None NodeID = -1

// Outcome is one past assessment result attached to a goal.
type Outcome struct {
	RunID     string
	Score     float64
	CreatedAt time.Time
}

// Goal is one quality concern in the model tree.
type Goal struct {
	Name        string
	Description string
	Weight      float64
	Kind        Kind
	Parent      NodeID
	Children    []NodeID
	Metrics     *metric.Set
	Results     []Outcome
}

// IsLeaf reports whether the goal is a leaf node.
func (g *Goal) IsLeaf() bool { return g.Kind == KindLeaf }

// #endregion node

// #region tree

// Tree is the arena-backed goal hierarchy.
type Tree struct {
	nodes []*Goal
	roots []NodeID
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes in the arena, detached ones included.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the goal stored under id, or nil for an invalid id.
func (t *Tree) Node(id NodeID) *Goal {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Roots returns the top-level characteristic ids in insertion order.
func (t *Tree) Roots() []NodeID { return t.roots }

func (t *Tree) alloc(name, description string, weight float64, kind Kind) NodeID {
	if weight == 0 {
		weight = 1
	}
	t.nodes = append(t.nodes, &Goal{
		Name:        name,
		Description: description,
		Weight:      weight,
		Kind:        kind,
		Parent:      None,
		Metrics:     metric.NewSet(),
	})
	return NodeID(len(t.nodes) - 1)
}

// AddRoot appends a top-level characteristic. Root names are unique.
func (t *Tree) AddRoot(name, description string, weight float64, kind Kind) (NodeID, error) {
	for _, id := range t.roots {
		if t.nodes[id].Name == name {
			return None, fmt.Errorf("root goal %q already exists", name)
		}
	}
	id := t.alloc(name, description, weight, kind)
	t.roots = append(t.roots, id)
	return id, nil
}

// AddChild appends a sub-goal to a composite parent and sets the child's
// parent back-reference. Adding to a leaf or duplicating a sibling name is
// an error.
func (t *Tree) AddChild(parent NodeID, name, description string, weight float64, kind Kind) (NodeID, error) {
	p := t.Node(parent)
	if p == nil {
		return None, fmt.Errorf("invalid parent node %d", parent)
	}
	if p.IsLeaf() {
		return None, fmt.Errorf("leaf goal %q cannot have children", p.Name)
	}
	for _, cid := range p.Children {
		if t.nodes[cid].Name == name {
			return None, fmt.Errorf("goal %q already has a child %q", p.Name, name)
		}
	}
	id := t.alloc(name, description, weight, kind)
	t.nodes[id].Parent = parent
	p.Children = append(p.Children, id)
	return id, nil
}

// #endregion tree

// #region child-ops

// Child looks up a direct child by name. Recursive search is Find.
func (t *Tree) Child(parent NodeID, name string) (NodeID, bool) {
	p := t.Node(parent)
	if p == nil {
		return None, false
	}
	for _, cid := range p.Children {
		if t.nodes[cid].Name == name {
			return cid, true
		}
	}
	return None, false
}

// Has reports whether a direct child with the name exists.
func (t *Tree) Has(parent NodeID, name string) bool {
	_, ok := t.Child(parent, name)
	return ok
}

// RemoveChild detaches the named direct child, clearing its parent
// back-reference. Reports false when no such child exists.
func (t *Tree) RemoveChild(parent NodeID, name string) bool {
	p := t.Node(parent)
	if p == nil {
		return false
	}
	for i, cid := range p.Children {
		if t.nodes[cid].Name == name {
			t.nodes[cid].Parent = None
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Clear detaches all children of the node, clearing their parent
// back-references.
func (t *Tree) Clear(parent NodeID) error {
	p := t.Node(parent)
	if p == nil {
		return fmt.Errorf("invalid node %d", parent)
	}
	for _, cid := range p.Children {
		t.nodes[cid].Parent = None
	}
	p.Children = nil
	return nil
}

// #endregion child-ops

// #region traversal

// Walk visits every attached node children-first (post-order), so a
// composite sees its children's state already settled when visited.
func (t *Tree) Walk(fn func(NodeID, *Goal)) {
	for _, root := range t.roots {
		t.WalkFrom(root, fn)
	}
}

// WalkFrom runs the children-first walk over one subtree.
func (t *Tree) WalkFrom(id NodeID, fn func(NodeID, *Goal)) {
	n := t.Node(id)
	if n == nil {
		return
	}
	for _, cid := range n.Children {
		t.WalkFrom(cid, fn)
	}
	fn(id, n)
}

// Find searches the attached tree recursively for a goal name,
// case-insensitively. First match in walk order wins.
func (t *Tree) Find(name string) (NodeID, bool) {
	var found NodeID = None
	t.Walk(func(id NodeID, g *Goal) {
		if found == None && strings.EqualFold(g.Name, name) {
			found = id
		}
	})
	return found, found != None
}

// Leaves returns the attached leaf goal ids in walk order.
func (t *Tree) Leaves() []NodeID {
	var out []NodeID
	t.Walk(func(id NodeID, g *Goal) {
		if g.IsLeaf() {
			out = append(out, id)
		}
	})
	return out
}

// Path returns the slash-joined node path from root, for reporting.
func (t *Tree) Path(id NodeID) string {
	var parts []string
	for cur := id; cur != None; {
		n := t.Node(cur)
		if n == nil {
			break
		}
		parts = append([]string{n.Name}, parts...)
		cur = n.Parent
	}
	return strings.Join(parts, "/")
}

// #endregion traversal

// #region results

// AddResult appends an assessment outcome to the goal's history.
func (t *Tree) AddResult(id NodeID, outcome Outcome) {
	if n := t.Node(id); n != nil {
		n.Results = append(n.Results, outcome)
	}
}

// #endregion results
