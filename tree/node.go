package tree

import (
	"fmt"

	"github.com/signadot/confsync/schema"
)

type Kind uint8

const (
	LeafKind Kind = iota
	ContainerKind
	ElementKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case ContainerKind:
		return "container"
	case ElementKind:
		return "element"
	}
	return fmt.Sprintf("<Kind %d>", int(k))
}

// ID addresses a node record within a Tree.
type ID int32

const NoID ID = -1

type record struct {
	kind     Kind
	ns, name string
	value    Value
	key      bool
	op       Op
	typ      *schema.Container
	parent   ID
	children []ID
}

type Tree struct {
	recs []record
	root ID
	// dense is true while every record is reachable from root, which lets
	// whole tree clones copy the arena instead of walking it.
	dense bool
}

func newTree(capHint int) *Tree {
	return &Tree{recs: make([]record, 0, capHint), root: NoID, dense: true}
}

// NewContainer returns the root of a new tree holding an empty container of
// type ct.
func NewContainer(ct *schema.Container) Node {
	t := newTree(8)
	id := t.alloc(record{kind: ContainerKind, ns: ct.Namespace, name: ct.Name, typ: ct, parent: NoID})
	t.root = id
	return Node{t: t, id: id}
}

// NewElement returns the root of a new tree holding an untyped element.
func NewElement(ns, name string, v Value) Node {
	t := newTree(8)
	id := t.alloc(record{kind: ElementKind, ns: ns, name: name, value: v, parent: NoID})
	t.root = id
	return Node{t: t, id: id}
}

// NewLeaf returns the root of a new tree holding a single leaf.
func NewLeaf(ns, name string, v Value) Node {
	t := newTree(1)
	id := t.alloc(record{kind: LeafKind, ns: ns, name: name, value: v, parent: NoID})
	t.root = id
	return Node{t: t, id: id}
}

func (t *Tree) alloc(r record) ID {
	t.recs = append(t.recs, r)
	return ID(len(t.recs) - 1)
}

func (t *Tree) Root() Node {
	if t == nil || t.root == NoID {
		return Node{}
	}
	return Node{t: t, id: t.root}
}

// Size returns the number of records in the arena, including detached ones.
func (t *Tree) Size() int { return len(t.recs) }

// Node is a handle to a node record in a Tree.  The zero Node refers to
// nothing.
type Node struct {
	t  *Tree
	id ID
}

func (n Node) IsZero() bool { return n.t == nil }
func (n Node) Tree() *Tree { return n.t }
func (n Node) ID() ID { return n.id }

func (n Node) rec() *record { return &n.t.recs[n.id] }

func (n Node) Kind() Kind { return n.rec().kind }
func (n Node) Namespace() string { return n.rec().ns }
func (n Node) Name() string { return n.rec().name }
func (n Node) Value() Value { return n.rec().value }
func (n Node) Op() Op { return n.rec().op }

// IsKey reports whether n is a key leaf of its list entry.
func (n Node) IsKey() bool { return n.rec().key }

// Type returns the schema type of a container, or nil.
func (n Node) Type() *schema.Container { return n.rec().typ }

func (n Node) IsLeaf() bool { return n.rec().kind == LeafKind }
func (n Node) IsContainer() bool { return n.rec().kind == ContainerKind }
func (n Node) IsElement() bool { return n.rec().kind == ElementKind }

// KeyNames returns the key names of a list entry, or nil.
func (n Node) KeyNames() []string {
	if typ := n.rec().typ; typ != nil {
		return typ.KeyNames()
	}
	return nil
}

// ChildrenNames returns the schema children names of a container, or nil.
func (n Node) ChildrenNames() []string {
	if typ := n.rec().typ; typ != nil {
		return typ.ChildrenNames()
	}
	return nil
}

// IsListEntry reports whether n is a container with key names.
func (n Node) IsListEntry() bool {
	typ := n.rec().typ
	return typ != nil && typ.IsList()
}

func (n Node) Len() int { return len(n.rec().children) }

func (n Node) ChildAt(i int) Node {
	return Node{t: n.t, id: n.rec().children[i]}
}

// Children returns the children of n in order.  The result is a snapshot:
// later additions to n are not reflected.
func (n Node) Children() NodeSet {
	ids := n.rec().children
	res := make(NodeSet, len(ids))
	for i, id := range ids {
		res[i] = Node{t: n.t, id: id}
	}
	return res
}

// ChildrenNamed returns the children of n with the given name.
func (n Node) ChildrenNamed(name string) NodeSet {
	var res NodeSet
	for _, id := range n.rec().children {
		if n.t.recs[id].name == name {
			res = append(res, Node{t: n.t, id: id})
		}
	}
	return res
}

// Child returns the first child of n with the given name.
func (n Node) Child(name string) (Node, bool) {
	for _, id := range n.rec().children {
		if n.t.recs[id].name == name {
			return Node{t: n.t, id: id}, true
		}
	}
	return Node{}, false
}

func (n Node) Parent() (Node, bool) {
	p := n.rec().parent
	if p == NoID {
		return Node{}, false
	}
	return Node{t: n.t, id: p}, true
}

// Ancestors returns the ancestors of n from the root down to n's parent.
func (n Node) Ancestors() []Node {
	var res []Node
	for p, ok := n.Parent(); ok; p, ok = p.Parent() {
		res = append(res, p)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// Depth returns the number of ancestors of n.
func (n Node) Depth() int {
	d := 0
	for p, ok := n.Parent(); ok; p, ok = p.Parent() {
		d++
	}
	return d
}

func (n Node) IsRoot() bool { return n.rec().parent == NoID }

// Root returns the root of the tree holding n.
func (n Node) Root() Node { return n.t.Root() }

// Mark sets the edit operation of n.
func (n Node) Mark(op Op) Node {
	n.rec().op = op
	return n
}

// SetValue sets the value of a leaf or element.
func (n Node) SetValue(v Value) error {
	r := n.rec()
	if r.kind == ContainerKind {
		return fmt.Errorf("%w: cannot set value of container %s", ErrKind, n.Path())
	}
	r.value = v
	return nil
}

func (n Node) String() string {
	if n.IsZero() {
		return "<nil>"
	}
	return n.Path()
}
