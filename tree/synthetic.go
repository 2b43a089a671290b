package tree

import "github.com/signadot/confsync/schema"

const (
	SyntheticNamespace = "urn:signadot:confsync:synthetic"
	SyntheticName      = "root"
)

// syntheticType has no fields: two synthetic roots always compare Equal
// and their children are matched individually.
var syntheticType = schema.MustContainer(SyntheticNamespace, SyntheticName, nil)

// Wrap copies the nodes of s, in order, under a new synthetic root so that a
// collection can be reconciled like a single container.
func Wrap(s NodeSet) Node {
	root := NewContainer(syntheticType)
	for _, n := range s {
		root.AppendChild(n)
	}
	return root
}

// NewSynthetic returns an empty synthetic root.
func NewSynthetic() Node {
	return NewContainer(syntheticType)
}

func IsSynthetic(n Node) bool {
	return n.Namespace() == SyntheticNamespace && n.Name() == SyntheticName && n.IsRoot()
}

// Unwrap returns the children of a synthetic root, or n itself otherwise.
func Unwrap(n Node) NodeSet {
	if n.IsZero() {
		return nil
	}
	if IsSynthetic(n) {
		return n.Children()
	}
	return NodeSet{n}
}
