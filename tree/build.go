package tree

import (
	"fmt"
	"slices"

	"github.com/signadot/confsync/schema"
)

func (n Node) field(name string) (*schema.Field, error) {
	r := n.rec()
	if r.kind != ContainerKind {
		return nil, fmt.Errorf("%w: %s is a %s", ErrKind, n.Path(), r.kind)
	}
	f, ok := r.typ.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownChild, name, n.Path())
	}
	return f, nil
}

// AddContainer adds an empty container child of the schema type registered
// for name.  For list fields the result is a new list entry whose keys the
// caller is expected to add next.
func (n Node) AddContainer(name string) (Node, error) {
	f, err := n.field(name)
	if err != nil {
		return Node{}, err
	}
	if f.Type == nil {
		return Node{}, fmt.Errorf("%w: %s in %s is a %s", ErrKind, name, n.Path(), f.Kind)
	}
	id := n.t.alloc(record{kind: ContainerKind, ns: f.Type.Namespace, name: name, typ: f.Type, parent: NoID})
	n.t.insert(n.id, id)
	return Node{t: n.t, id: id}, nil
}

// AddLeaf adds a leaf child.  The key flag comes from the schema.
func (n Node) AddLeaf(name string, v Value) (Node, error) {
	f, err := n.field(name)
	if err != nil {
		return Node{}, err
	}
	if !f.Kind.IsLeaf() {
		return Node{}, fmt.Errorf("%w: %s in %s is a %s", ErrKind, name, n.Path(), f.Kind)
	}
	r := n.rec()
	id := n.t.alloc(record{kind: LeafKind, ns: r.typ.Namespace, name: name, value: v, key: f.Key, parent: NoID})
	n.t.insert(n.id, id)
	return Node{t: n.t, id: id}, nil
}

// AddElement adds an untyped child.  Elements may be added under any node
// except leaves.
func (n Node) AddElement(ns, name string, v Value) (Node, error) {
	if n.rec().kind == LeafKind {
		return Node{}, fmt.Errorf("%w: cannot add %s under leaf %s", ErrKind, name, n.Path())
	}
	id := n.t.alloc(record{kind: ElementKind, ns: ns, name: name, value: v, parent: NoID})
	n.t.insert(n.id, id)
	return Node{t: n.t, id: id}, nil
}

// AddChild deep copies c, which may belong to any tree, under n in schema
// order and returns the copy.
func (n Node) AddChild(c Node) Node {
	id := copyInto(n.t, c)
	n.t.insert(n.id, id)
	return Node{t: n.t, id: id}
}

// AppendChild deep copies c after the last child of n.
func (n Node) AppendChild(c Node) Node {
	id := copyInto(n.t, c)
	n.t.link(n.id, id, len(n.rec().children))
	return Node{t: n.t, id: id}
}

// Replace deep copies c into the position of n under n's parent and
// detaches n.  Replacing a root yields c's copy as the root of a new tree.
func (n Node) Replace(c Node) Node {
	parent := n.rec().parent
	if parent == NoID {
		return c.Clone()
	}
	pos := slices.Index(n.t.recs[parent].children, n.id)
	id := copyInto(n.t, c)
	n.Detach()
	n.t.link(parent, id, pos)
	return Node{t: n.t, id: id}
}

// insert links child under parent after the last sibling that does not
// come later in the parent's schema order.  Children unknown to the schema
// go last.
func (t *Tree) insert(parent, child ID) {
	p := &t.recs[parent]
	pos := len(p.children)
	if p.typ != nil {
		idx := p.typ.Index(t.recs[child].name)
		if idx >= 0 {
			for pos > 0 {
				si := p.typ.Index(t.recs[p.children[pos-1]].name)
				if si >= 0 && si <= idx {
					break
				}
				pos--
			}
		}
	}
	t.link(parent, child, pos)
}

func (t *Tree) link(parent, child ID, pos int) {
	p := &t.recs[parent]
	p.children = slices.Insert(p.children, pos, child)
	t.recs[child].parent = parent
}

// Detach unlinks n from its parent.  Detaching a root does nothing.
func (n Node) Detach() {
	r := n.rec()
	if r.parent == NoID {
		return
	}
	p := &n.t.recs[r.parent]
	if i := slices.Index(p.children, n.id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	r.parent = NoID
	n.t.dense = false
}

// Compact rebuilds the arena so that it holds exactly the records reachable
// from the root, in depth first order.  Handles obtained before Compact must
// not be used afterwards, except through Root.
func (t *Tree) Compact() {
	if t.dense || t.root == NoID {
		return
	}
	nt := newTree(len(t.recs))
	nt.root = copyInto(nt, Node{t: t, id: t.root})
	*t = *nt
}
