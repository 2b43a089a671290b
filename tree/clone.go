package tree

import "slices"

// copyInto deep copies src into dst and returns the unlinked copy's ID.
func copyInto(dst *Tree, src Node) ID {
	sr := src.rec()
	r := *sr
	r.parent = NoID
	r.children = nil
	id := dst.alloc(r)
	kids := src.rec().children
	if len(kids) == 0 {
		return id
	}
	ids := make([]ID, len(kids))
	for i, k := range kids {
		ids[i] = copyInto(dst, Node{t: src.t, id: k})
		dst.recs[ids[i]].parent = id
	}
	dst.recs[id].children = ids
	return id
}

// Clone returns a deep copy of n as the root of a new tree.
func (n Node) Clone() Node {
	if n.t.dense && n.id == n.t.root {
		return n.t.clone()
	}
	t := newTree(8)
	t.root = copyInto(t, n)
	return Node{t: t, id: t.root}
}

// clone copies the whole arena.  IDs are preserved, so no remapping is
// needed.
func (t *Tree) clone() Node {
	nt := &Tree{recs: slices.Clone(t.recs), root: t.root, dense: true}
	for i := range nt.recs {
		nt.recs[i].children = slices.Clone(nt.recs[i].children)
	}
	return Node{t: nt, id: nt.root}
}

// CloneShallow returns a copy of n as the root of a new tree carrying only
// n's identity and, for list entries, its key leaves.  Leaves are copied
// whole and elements keep their value but not their children.
func (n Node) CloneShallow() Node {
	r := *n.rec()
	r.parent = NoID
	r.children = nil
	t := newTree(1 + len(n.KeyNames()))
	t.root = t.alloc(r)
	res := Node{t: t, id: t.root}
	for _, k := range n.KeyNames() {
		if kc, ok := n.Child(k); ok {
			res.AppendChild(kc)
		}
	}
	return res
}
