package tree

// NodeSet is an ordered collection of node handles.  Handles may refer to
// different trees.
type NodeSet []Node

func (s NodeSet) Len() int { return len(s) }

func (s NodeSet) At(i int) Node { return s[i] }

func (s NodeSet) First() (Node, bool) {
	if len(s) == 0 {
		return Node{}, false
	}
	return s[0], true
}

// Nodes returns a copy of s as a plain slice.
func (s NodeSet) Nodes() []Node { return append([]Node(nil), s...) }

func (s *NodeSet) Append(ns ...Node) {
	*s = append(*s, ns...)
}

// Remove removes and returns the node at index i.
func (s *NodeSet) Remove(i int) Node {
	n := (*s)[i]
	*s = append((*s)[:i], (*s)[i+1:]...)
	return n
}

// RemoveFirst removes and returns the first node for which match is true.
func (s *NodeSet) RemoveFirst(match func(Node) bool) (Node, bool) {
	for i, n := range *s {
		if match(n) {
			return s.Remove(i), true
		}
	}
	return Node{}, false
}

// Paths returns the path of each node.
func (s NodeSet) Paths() []string {
	res := make([]string, len(s))
	for i, n := range s {
		res[i] = n.Path()
	}
	return res
}
