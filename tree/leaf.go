package tree

import "fmt"

// MarkLeaf sets the operation of the first leaf child with the given name.
func (n Node) MarkLeaf(name string, op Op) error {
	c, ok := n.Child(name)
	if !ok || c.Kind() != LeafKind {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, n.Path(), name)
	}
	c.Mark(op)
	return nil
}

// ListEntry returns the first list entry child with the given name.
func (n Node) ListEntry(name string) (Node, error) {
	for _, c := range n.ChildrenNamed(name) {
		if c.IsListEntry() {
			return c, nil
		}
	}
	return Node{}, fmt.Errorf("%w: %s/%s", ErrNotFound, n.Path(), name)
}

// SetLeafValue sets the value of the first leaf child with the given name,
// adding the leaf if it is absent.
func (n Node) SetLeafValue(name string, v Value) error {
	if c, ok := n.Child(name); ok {
		if c.Kind() == ContainerKind {
			return fmt.Errorf("%w: %s/%s is a container", ErrKind, n.Path(), name)
		}
		return c.SetValue(v)
	}
	_, err := n.AddLeaf(name, v)
	return err
}

// IsLeafDefault reports whether the named leaf is absent, meaning the
// device default applies.
func (n Node) IsLeafDefault(name string) bool {
	_, ok := n.Child(name)
	return !ok
}

// LeafValues returns the values of all leaves with the given name in order,
// which for a leaf-list is its entries.
func (n Node) LeafValues(name string) []Value {
	var res []Value
	for _, c := range n.ChildrenNamed(name) {
		if c.Kind() == LeafKind {
			res = append(res, c.Value())
		}
	}
	return res
}
