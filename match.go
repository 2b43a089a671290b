package confsync

import (
	"errors"
	"fmt"

	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/tree"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrBadExpr = errors.New("bad expression")

// Env is what a selection expression sees of a node.
type Env struct {
	Name      string
	Namespace string
	// Path is the node's path without any synthetic root.
	Path string
	// Kind is "leaf", "container" or "element".
	Kind string
	// Key is set on key leaves of list entries.
	Key bool
	// Value is nil for containers and null values, and otherwise a bool,
	// int64, float64, string or, for empty values, struct{}.
	Value any
	// Depth counts the ancestors between the node and the selection root.
	Depth int
	// Op is the edit operation of the node, or "".
	Op string
}

func newEnv(root, n tree.Node) Env {
	return Env{
		Name:      n.Name(),
		Namespace: n.Namespace(),
		Path:      docPath(n),
		Kind:      n.Kind().String(),
		Key:       n.IsKey(),
		Value:     n.Value().Any(),
		Depth:     n.Depth() - root.Depth(),
		Op:        n.Op().String(),
	}
}

func compile(expression string) (*vm.Program, error) {
	prg, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadExpr, err)
	}
	return prg, nil
}

// Select returns the nodes of the subtree at root, root included, for which
// expression holds, in depth first order.
//
// Expressions use the expr language over the fields of Env, for example
//
//	Name == "mtu" && Value > 1500
func Select(root tree.Node, expression string) (tree.NodeSet, error) {
	prg, err := compile(expression)
	if err != nil {
		return nil, err
	}
	var res tree.NodeSet
	if err := walk(root, func(n tree.Node) error {
		out, err := expr.Run(prg, newEnv(root, n))
		if err != nil {
			return fmt.Errorf("%w: at %s: %w", ErrBadExpr, docPath(n), err)
		}
		if out.(bool) {
			res = append(res, n)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if debug.Select() {
		debug.Logf("select %q at %s: %v\n", expression, docPath(root), res)
	}
	return res, nil
}

func walk(n tree.Node, f func(tree.Node) error) error {
	if err := f(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := walk(c, f); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns a copy of root restricted to the nodes selected by
// expression, each with its whole content, and the identity of their
// ancestors.  It returns the zero Node if nothing is selected.
func Filter(root tree.Node, expression string) (tree.Node, error) {
	sel, err := Select(root, expression)
	if err != nil {
		return tree.Node{}, err
	}
	if len(sel) == 0 {
		return tree.Node{}, nil
	}
	if sel[0] == root {
		return root.Clone(), nil
	}
	picked := make(map[tree.Node]bool, len(sel))
	res := root.CloneShallow()
outer:
	for _, n := range sel {
		picked[n] = true
		anc := n.Ancestors()[root.Depth()+1:]
		for _, a := range anc {
			if picked[a] {
				continue outer
			}
		}
		cur := res
		for _, a := range anc {
			cur = scaffold(cur, a)
		}
		if n.IsKey() {
			if _, ok := cur.Child(n.Name()); ok {
				continue
			}
		}
		cur.AddChild(n)
	}
	return res, nil
}

// scaffold returns the child of parent with the identity of a, adding an
// identity only copy of a if there is none.
func scaffold(parent, a tree.Node) tree.Node {
	for _, c := range parent.ChildrenNamed(a.Name()) {
		if c.Kind() != a.Kind() || !tree.NameIdentical(c, a) {
			continue
		}
		if a.IsListEntry() && !tree.KeyEqual(c, a) {
			continue
		}
		return c
	}
	return parent.AddChild(a.CloneShallow())
}
