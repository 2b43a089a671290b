package reconcile

import (
	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/tree"
)

// Inspection holds the differences between a current tree a and a desired
// tree b.  Nodes are handles into the inspected trees.
type Inspection struct {
	// UniqueA holds nodes of a without a counterpart in b.
	UniqueA tree.NodeSet
	// UniqueB holds nodes of b without a counterpart in a.
	UniqueB tree.NodeSet
	// ChangedA and ChangedB hold, pairwise, nodes with the same identity
	// on both sides and different content.
	ChangedA tree.NodeSet
	ChangedB tree.NodeSet
}

// Empty reports whether no differences were found.
func (in *Inspection) Empty() bool {
	return len(in.UniqueA) == 0 && len(in.UniqueB) == 0 &&
		len(in.ChangedA) == 0 && len(in.ChangedB) == 0
}

// Inspect classifies the differences between a and b.
//
// If a and b do not have the same identity they are reported whole as
// unique to their sides.  If they are list entries, leaves or elements with
// different content they are reported whole as changed.  Otherwise each
// child of a is paired with the first unpaired child of b having the same
// identity.  Pairs with different content are reported whole as changed and
// equal container pairs are inspected the same way below.  Children left
// without a pair are unique.  The children of a synthetic root are
// inspected as a and b are.
func Inspect(a, b tree.Node, opts ...Option) *Inspection {
	c := newConfig(opts)
	in := &Inspection{}
	c.inspect(a, b, in)
	if debug.Inspect() {
		debug.Logf("inspect %s: uniqueA %v uniqueB %v changedA %v changedB %v\n",
			a.Path(), in.UniqueA, in.UniqueB, in.ChangedA, in.ChangedB)
	}
	return in
}

func (c *config) inspect(a, b tree.Node, in *Inspection) {
	switch res := c.compare(a, b); {
	case res == tree.KeyMismatch:
		in.UniqueA.Append(a)
		in.UniqueB.Append(b)
	case res == tree.ContentDiff && !recursable(a, b):
		in.ChangedA.Append(a)
		in.ChangedB.Append(b)
	default:
		c.inspectChildren(a, b, in)
	}
}

// recursable reports whether a content difference between roots a and b
// is reported below them rather than on them.
func recursable(a, b tree.Node) bool {
	return a.IsContainer() && b.IsContainer() && !a.IsListEntry()
}

func (c *config) inspectChildren(a, b tree.Node, in *Inspection) {
	if !a.IsContainer() || !b.IsContainer() {
		return
	}
	pool := b.Children()
	for _, ac := range a.Children() {
		bc, res, ok := c.takeMatch(ac, &pool)
		if !ok {
			in.UniqueA.Append(ac)
			continue
		}
		if tree.IsSynthetic(a) {
			c.inspect(ac, bc, in)
			continue
		}
		switch {
		case res == tree.ContentDiff:
			in.ChangedA.Append(ac)
			in.ChangedB.Append(bc)
		case ac.IsContainer() && bc.IsContainer():
			c.inspectChildren(ac, bc, in)
		}
	}
	in.UniqueB.Append(pool...)
}

// takeMatch removes from pool the first node with the same identity as n.
func (c *config) takeMatch(n tree.Node, pool *tree.NodeSet) (tree.Node, tree.Result, bool) {
	for i, p := range *pool {
		if res := c.compare(n, p); res.Matched() {
			pool.Remove(i)
			return p, res, true
		}
	}
	return tree.Node{}, tree.KeyMismatch, false
}

// CheckSync reports whether a and b are equivalent: they compare Equal, and
// so do all their children, each paired with exactly one counterpart.
func CheckSync(a, b tree.Node, opts ...Option) bool {
	return newConfig(opts).checkSync(a, b)
}

// CheckSyncSet is CheckSync for node sets.
func CheckSyncSet(a, b tree.NodeSet, opts ...Option) bool {
	return CheckSync(tree.Wrap(a), tree.Wrap(b), opts...)
}

func (c *config) checkSync(a, b tree.Node) bool {
	if c.compare(a, b) != tree.Equal {
		return false
	}
	if !a.IsContainer() || !b.IsContainer() {
		return true
	}
	pool := b.Children()
	for _, ac := range a.Children() {
		bc, res, ok := c.takeMatch(ac, &pool)
		if !ok || res != tree.Equal {
			return false
		}
		if ac.IsContainer() && !c.checkSync(ac, bc) {
			return false
		}
	}
	return len(pool) == 0
}
