package reconcile

import (
	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/tree"
)

// MergePlan is a merge style edit together with what went into it.
type MergePlan struct {
	// Edit is a copy of the desired tree with its unchanged content removed
	// and content found only in the current tree added tagged delete.
	Edit tree.Node
	// Diffs counts the differences found.
	Diffs int
	// Pruned holds the paths, within the desired tree, of the nodes removed
	// from Edit because they were identical on both sides.
	Pruned []string
}

// SyncMerge returns the edit of PlanMerge(a, b).
func SyncMerge(a, b tree.Node, opts ...Option) tree.Node {
	return PlanMerge(a, b, opts...).Edit
}

// SyncMergeSet is SyncMerge for node sets.  The returned nodes are roots of
// their own trees.
func SyncMergeSet(a, b tree.NodeSet, opts ...Option) tree.NodeSet {
	return detachAll(SyncMerge(tree.Wrap(a), tree.Wrap(b), opts...))
}

// PlanMerge plans a merge style edit taking a to b.
//
// Children of b are paired with children of a: leaves by name, containers by
// name, list entries by key and elements by identity.  Leaves equal on both
// sides and containers whose content has no difference are pruned from the
// edit.  Key leaves of paired list entries are left alone.  Leaves of a
// without a pair are added to the edit tagged delete, and so are copies of
// unpaired containers and elements of a carrying only their identity and
// keys.  Content of b without a pair is kept untagged.
//
// When a and b do not have the same identity, the edit is a synthetic root
// holding an identity only copy of a tagged delete and a copy of b.
func PlanMerge(a, b tree.Node, opts ...Option) *MergePlan {
	c := newConfig(opts)
	if c.compare(a, b) == tree.KeyMismatch {
		edit := tree.NewSynthetic()
		edit.AppendChild(a.CloneShallow()).Mark(tree.OpDelete)
		edit.AppendChild(b)
		c.log.Debug("merge roots differ", "a", a.Path(), "b", b.Path())
		return &MergePlan{Edit: edit, Diffs: 1}
	}
	cp := b.Clone()
	aw := a.Clone()
	m := &merger{config: c}
	diffs := m.reconcile(aw, cp, cp.IsListEntry())
	plan := &MergePlan{Diffs: diffs}
	for _, n := range m.toDel {
		plan.Pruned = append(plan.Pruned, n.DocPath())
	}
	for _, n := range m.toDel {
		n.Detach()
	}
	t := cp.Tree()
	t.Compact()
	plan.Edit = t.Root()
	c.log.Debug("merge plan", "root", b.Path(), "diffs", plan.Diffs, "pruned", len(plan.Pruned))
	if debug.Merge() {
		debug.Logf("merge %s: %d diffs, pruned %v\n%v", b.Path(), plan.Diffs, plan.Pruned, plan.Edit)
	}
	return plan
}

type merger struct {
	*config
	toDel []tree.Node
}

// reconcile pairs the children of b with those of a, marks what can be
// pruned, adds delete markers to b and returns the number of differences.
func (m *merger) reconcile(a, b tree.Node, listEntry bool) int {
	diffs := 0
	pool := a.Children()
	for _, bc := range b.Children() {
		if listEntry && bc.IsLeaf() && bc.IsKey() {
			continue
		}
		ac, ok := m.findAndRemoveMatch(bc, &pool)
		if !ok {
			diffs++
			continue
		}
		switch {
		case ac.IsContainer() && bc.IsContainer():
			d := m.reconcile(ac, bc, ac.IsListEntry())
			diffs += d
			if d == 0 {
				m.toDel = append(m.toDel, bc)
			}
		case ac.IsLeaf() && bc.IsLeaf():
			if tree.Equals(ac, bc) {
				m.toDel = append(m.toDel, bc)
			} else {
				diffs++
			}
		default:
			if m.compare(ac, bc) == tree.Equal {
				m.toDel = append(m.toDel, bc)
			} else {
				diffs++
			}
		}
	}
	for _, x := range pool {
		switch {
		case x.IsLeaf():
			if x.IsKey() {
				continue
			}
			b.AppendChild(x).Mark(tree.OpDelete)
		default:
			b.AppendChild(x.CloneShallow()).Mark(tree.OpDelete)
		}
		diffs++
	}
	return diffs
}

// findAndRemoveMatch removes from pool and returns the node pairing with
// target: for a leaf, the first leaf with the same identity; for a list
// entry, the first list entry with equal keys; for another container, the
// first container with the same name; for an element, the first node with
// the same identity.
func (m *merger) findAndRemoveMatch(target tree.Node, pool *tree.NodeSet) (tree.Node, bool) {
	var match func(tree.Node) bool
	switch {
	case target.IsLeaf():
		match = func(x tree.Node) bool {
			return x.IsLeaf() && m.compare(x, target).Matched()
		}
	case target.IsListEntry():
		match = func(x tree.Node) bool {
			return x.IsContainer() && tree.KeyEqual(target, x)
		}
	case target.IsContainer():
		match = func(x tree.Node) bool {
			return x.IsContainer() && tree.Equals(target, x)
		}
	default:
		match = func(x tree.Node) bool {
			return m.compare(x, target).Matched()
		}
	}
	return pool.RemoveFirst(match)
}
