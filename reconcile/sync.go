package reconcile

import (
	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/tree"
)

// Sync returns a replace style edit tree taking a to b, or the zero Node if
// a and b are in sync.
//
// Nodes unique to a are tagged delete, nodes unique to b create and the b
// side of changed nodes replace.  Each tagged node is placed, with all its
// content, under untagged copies of its ancestors carrying only their
// identity, and ancestors shared by several tagged nodes appear once.  When
// a and b do not have the same identity, the result is a synthetic root
// holding a deleted copy of a and a created copy of b.
func Sync(a, b tree.Node, opts ...Option) tree.Node {
	c := newConfig(opts)
	if c.compare(a, b) == tree.KeyMismatch {
		res := tree.NewSynthetic()
		res.AppendChild(a).Mark(tree.OpDelete)
		res.AppendChild(b).Mark(tree.OpCreate)
		c.log.Debug("sync roots differ", "a", a.Path(), "b", b.Path())
		return res
	}
	in := &Inspection{}
	c.inspect(a, b, in)
	p := &planner{}
	for _, x := range in.UniqueA {
		p.add(a, x, tree.OpDelete)
	}
	for _, x := range in.UniqueB {
		p.add(b, x, tree.OpCreate)
	}
	for _, x := range in.ChangedB {
		p.add(b, x, tree.OpReplace)
	}
	c.log.Debug("sync plan",
		"root", a.Path(),
		"delete", len(in.UniqueA),
		"create", len(in.UniqueB),
		"replace", len(in.ChangedB))
	if debug.Sync() {
		debug.Logf("sync %s:\n%v", a.Path(), p.result)
	}
	return p.result
}

// SyncSet is Sync for node sets.  The returned nodes are roots of their own
// trees, and the result is empty if the sets are in sync.
func SyncSet(a, b tree.NodeSet, opts ...Option) tree.NodeSet {
	res := Sync(tree.Wrap(a), tree.Wrap(b), opts...)
	if res.IsZero() {
		return nil
	}
	return detachAll(res)
}

func detachAll(root tree.Node) tree.NodeSet {
	kids := root.Children()
	out := make(tree.NodeSet, len(kids))
	for i, k := range kids {
		out[i] = k.Clone()
	}
	return out
}

// planner accumulates tagged copies of nodes into a single result tree.
type planner struct {
	result tree.Node
}

// add merges a copy of x tagged op into the result at x's position
// relative to base, which is x or one of its ancestors.
func (p *planner) add(base, x tree.Node, op tree.Op) {
	anc := x.Ancestors()[base.Depth():]
	if len(anc) == 0 {
		p.result = x.Clone().Mark(op)
		return
	}
	if p.result.IsZero() {
		p.result = anc[0].CloneShallow()
	}
	cur := p.result
	for _, a := range anc[1:] {
		cur = skeleton(cur, a)
	}
	cur.AddChild(x).Mark(op)
}

// skeleton returns the untagged child of parent with the identity of a,
// adding one if there is none.
func skeleton(parent, a tree.Node) tree.Node {
	for _, c := range parent.ChildrenNamed(a.Name()) {
		if c.Op() != tree.OpNone || c.Kind() != a.Kind() || !tree.NameIdentical(c, a) {
			continue
		}
		if a.IsListEntry() && !tree.KeyEqual(c, a) {
			continue
		}
		return c
	}
	return parent.AddChild(a.CloneShallow())
}
