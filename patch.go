package confsync

import (
	"errors"
	"fmt"

	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"
)

var (
	ErrDataExists  = errors.New("data exists")
	ErrDataMissing = errors.New("data missing")
)

// Patch applies edit to a copy of doc and returns the copy.  Neither input
// is modified and the result carries no operations.  A zero edit yields a
// copy of doc.
//
// Each node of edit addresses the node of doc with the same identity: list
// entries by key, other containers and leaves by name.  Leaf-list members
// and elements may share a name, so they are addressed by value or, for
// replace, by position among the members the edit has not yet addressed.
//
// A create node is added and must not exist.  A delete node is removed and
// must exist.  A replace node is substituted for what it addresses, or
// added.  Untagged nodes are merged: leaves are set, containers are merged
// into and missing nodes are added.
//
// A synthetic root in edit addresses the roots of doc.  Unless doc is itself
// a synthetic root, the result is the single root left, the zero Node if
// doc was deleted, or a synthetic root if the edit added roots.
func Patch(doc, edit tree.Node) (tree.Node, error) {
	if debug.Patch() {
		debug.Logf("patch %s with\n%v", docPath(doc), edit)
	}
	set := !doc.IsZero() && tree.IsSynthetic(doc)
	var dst tree.Node
	switch {
	case doc.IsZero():
		dst = tree.NewSynthetic()
	case set:
		dst = doc.Clone()
	default:
		dst = tree.Wrap(tree.NodeSet{doc})
	}
	if !edit.IsZero() {
		e := edit
		if !tree.IsSynthetic(e) {
			e = tree.Wrap(tree.NodeSet{edit})
		}
		p := &patcher{touched: map[tree.Node]bool{}}
		if err := p.merge(dst, e); err != nil {
			return tree.Node{}, err
		}
	}
	t := dst.Tree()
	t.Compact()
	dst = t.Root()
	if set {
		return dst, nil
	}
	switch kids := dst.Children(); len(kids) {
	case 0:
		return tree.Node{}, nil
	case 1:
		return kids[0].Clone(), nil
	}
	return dst, nil
}

// PatchSet is Patch for node sets.  The returned nodes are roots of their own
// trees.
func PatchSet(docs, edits tree.NodeSet) (tree.NodeSet, error) {
	res, err := Patch(tree.Wrap(docs), tree.Wrap(edits))
	if err != nil {
		return nil, err
	}
	kids := res.Children()
	out := make(tree.NodeSet, len(kids))
	for i, k := range kids {
		out[i] = k.Clone()
	}
	return out, nil
}

type patcher struct {
	// touched holds the multi valued nodes put in place by the edit.
	touched map[tree.Node]bool
}

func (p *patcher) merge(dst, e tree.Node) error {
	for _, ec := range e.Children() {
		if debug.Patch() {
			debug.Logf("patch %q %s\n", ec.Op(), editPath(dst, ec))
		}
		var err error
		if multiValued(dst, ec) {
			err = p.applyMulti(dst, ec)
		} else {
			err = p.apply(dst, ec)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *patcher) apply(dst, ec tree.Node) error {
	dc, found := find(dst, ec)
	switch ec.Op() {
	case tree.OpCreate:
		if found {
			return fmt.Errorf("%w: %s", ErrDataExists, docPath(dc))
		}
		add(dst, ec)
	case tree.OpDelete:
		if !found {
			return fmt.Errorf("%w: %s", ErrDataMissing, editPath(dst, ec))
		}
		dc.Detach()
	case tree.OpReplace:
		if !found {
			add(dst, ec)
			return nil
		}
		_, err := replace(dc, ec)
		return err
	default:
		switch {
		case !found && ec.IsContainer():
			c := dst.AddChild(ec.CloneShallow())
			clearOps(c)
			return p.merge(c, ec)
		case !found:
			add(dst, ec)
		case ec.IsLeaf():
			return dc.SetValue(ec.Value())
		default:
			return p.merge(dc, ec)
		}
	}
	return nil
}

// applyMulti applies a leaf-list member or an element.
func (p *patcher) applyMulti(dst, ec tree.Node) error {
	switch ec.Op() {
	case tree.OpCreate:
		p.touched[add(dst, ec)] = true
	case tree.OpDelete:
		dc, ok := p.findEqual(dst, ec)
		if !ok && ec.IsElement() {
			dc, ok = p.findNext(dst, ec)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrDataMissing, editPath(dst, ec))
		}
		dc.Detach()
	case tree.OpReplace:
		dc, ok := p.findNext(dst, ec)
		if !ok {
			p.touched[add(dst, ec)] = true
			return nil
		}
		r, err := replace(dc, ec)
		if err != nil {
			return err
		}
		p.touched[r] = true
	default:
		if dc, ok := p.findEqual(dst, ec); ok {
			p.touched[dc] = true
			return nil
		}
		if dc, ok := p.findNext(dst, ec); ok && ec.IsElement() {
			r, err := replace(dc, ec)
			if err != nil {
				return err
			}
			p.touched[r] = true
			return nil
		}
		p.touched[add(dst, ec)] = true
	}
	return nil
}

// findEqual returns a node under parent comparing Equal to e, preferring
// nodes the edit has not put in place.
func (p *patcher) findEqual(parent, e tree.Node) (tree.Node, bool) {
	var fallback tree.Node
	for _, c := range candidates(parent, e) {
		if tree.Compare(c, e) != tree.Equal {
			continue
		}
		if !p.touched[c] {
			return c, true
		}
		if fallback.IsZero() {
			fallback = c
		}
	}
	return fallback, !fallback.IsZero()
}

// findNext returns the first node under parent with e's identity that the
// edit has not put in place.
func (p *patcher) findNext(parent, e tree.Node) (tree.Node, bool) {
	for _, c := range candidates(parent, e) {
		if !p.touched[c] {
			return c, true
		}
	}
	return tree.Node{}, false
}

func candidates(parent, e tree.Node) tree.NodeSet {
	var res tree.NodeSet
	for _, c := range parent.ChildrenNamed(e.Name()) {
		if tree.NameIdentical(c, e) && c.Kind() == e.Kind() {
			res = append(res, c)
		}
	}
	return res
}

// find returns the node under parent addressed by e, which is neither a
// leaf-list member nor an element.
func find(parent, e tree.Node) (tree.Node, bool) {
	for _, c := range candidates(parent, e) {
		if e.IsListEntry() && !tree.KeyEqual(c, e) {
			continue
		}
		return c, true
	}
	return tree.Node{}, false
}

// multiValued reports whether e may share its name with siblings that are
// told apart by value.
func multiValued(parent, e tree.Node) bool {
	if e.IsElement() {
		return true
	}
	if !e.IsLeaf() || parent.Type() == nil {
		return false
	}
	f, ok := parent.Type().Field(e.Name())
	return ok && f.Kind == schema.LeafListField
}

func add(dst, e tree.Node) tree.Node {
	c := dst.AddChild(e)
	clearOps(c)
	return c
}

func replace(dc, e tree.Node) (tree.Node, error) {
	if dc.IsLeaf() {
		return dc, dc.SetValue(e.Value())
	}
	r := dc.Replace(e)
	clearOps(r)
	return r, nil
}

func clearOps(n tree.Node) {
	n.Mark(tree.OpNone)
	for _, c := range n.Children() {
		clearOps(c)
	}
}

// docPath is DocPath with "<nil>" for the zero Node.
func docPath(n tree.Node) string {
	if n.IsZero() {
		return "<nil>"
	}
	return n.DocPath()
}

func editPath(parent, e tree.Node) string {
	p := docPath(parent)
	if p == "/" {
		return p + e.Segment()
	}
	return p + "/" + e.Segment()
}
