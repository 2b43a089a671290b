package tree

import "fmt"

// Result is the outcome of comparing two nodes.  Callers rely on the
// ordering: a Result >= Equal means the nodes have the same identity.
type Result int

const (
	KeyMismatch Result = -1
	Equal       Result = 0
	ContentDiff Result = 1
)

func (r Result) String() string {
	switch r {
	case KeyMismatch:
		return "key-mismatch"
	case Equal:
		return "equal"
	case ContentDiff:
		return "content-diff"
	}
	return fmt.Sprintf("<Result %d>", int(r))
}

// Matched reports whether the compared nodes have the same identity.
func (r Result) Matched() bool { return r >= Equal }

// NameIdentical reports whether a and b have the same namespace and name.
func NameIdentical(a, b Node) bool {
	ra, rb := a.rec(), b.rec()
	return ra.ns == rb.ns && ra.name == rb.name
}

// Equals reports whether a and b have the same namespace, name and value.
// Containers carry no value, so same named containers are Equals regardless
// of their content.
func Equals(a, b Node) bool {
	return NameIdentical(a, b) && a.rec().value.Equal(b.rec().value)
}

// KeyEqual reports whether a and b are list entries with the same name and
// the same key values.  Containers that are not list entries are never key
// equal.
func KeyEqual(a, b Node) bool {
	if !NameIdentical(a, b) || a.Kind() != ContainerKind || b.Kind() != ContainerKind {
		return false
	}
	keys := a.KeyNames()
	if len(keys) == 0 {
		return false
	}
	return keysEqual(a, b, keys)
}

func keysEqual(a, b Node, keys []string) bool {
	for _, k := range keys {
		x, xok := a.Child(k)
		bx, bok := b.Child(k)
		if xok != bok {
			return false
		}
		if xok && !Equals(x, bx) {
			return false
		}
	}
	return true
}

// Compare compares two nodes one level deep.
//
// Nodes that are not name identical, or list entries whose keys differ,
// yield KeyMismatch.  Otherwise, for each non key child name of a's type,
// the same named children of both sides are compared as groups: every
// member of a's group must Equals some member of b's group and the groups
// must have the same size, or the result is ContentDiff.  Members of b's
// group are scanned from the start for every member of a's group and are
// not consumed, so a duplicate in a may match the same member of b twice.
//
// Leaves compare by value.  A node without schema type on either side is
// compared structurally, positionally and in depth.  A leaf and a
// container with the same identity yield KeyMismatch.
func Compare(a, b Node) Result {
	return compare(a, b, false)
}

// CompareStrict is like Compare, but compares child groups as multisets:
// each member of b's group may match at most one member of a's.
func CompareStrict(a, b Node) Result {
	return compare(a, b, true)
}

func compare(a, b Node, strict bool) Result {
	if !NameIdentical(a, b) {
		return KeyMismatch
	}
	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == ElementKind || kb == ElementKind:
		return compareStructure(a, b)
	case ka == LeafKind && kb == LeafKind:
		if a.Value().Equal(b.Value()) {
			return Equal
		}
		return ContentDiff
	case ka != kb:
		return KeyMismatch
	}
	keys := a.KeyNames()
	if len(keys) != 0 && !keysEqual(a, b, keys) {
		return KeyMismatch
	}
	names := a.ChildrenNames()
	for _, name := range names[len(keys):] {
		ga := a.ChildrenNamed(name)
		gb := b.ChildrenNamed(name)
		if len(ga) != len(gb) {
			return ContentDiff
		}
		if strict {
			if !groupsEqualStrict(ga, gb) {
				return ContentDiff
			}
			continue
		}
		if !groupsEqual(ga, gb) {
			return ContentDiff
		}
	}
	return Equal
}

func groupsEqual(ga, gb NodeSet) bool {
	hits := 0
	for _, ca := range ga {
		for _, cb := range gb {
			if Equals(ca, cb) {
				hits++
				break
			}
		}
	}
	return hits == len(ga)
}

func groupsEqualStrict(ga, gb NodeSet) bool {
	used := make([]bool, len(gb))
	for _, ca := range ga {
		found := false
		for j, cb := range gb {
			if !used[j] && Equals(ca, cb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// compareStructure is the fallback for nodes the schema does not describe:
// identity, then value, then children in order.
func compareStructure(a, b Node) Result {
	if !a.Value().Equal(b.Value()) {
		return ContentDiff
	}
	if a.Len() != b.Len() {
		return ContentDiff
	}
	for i := range a.Len() {
		ca, cb := a.ChildAt(i), b.ChildAt(i)
		if !NameIdentical(ca, cb) || compareStructure(ca, cb) != Equal {
			return ContentDiff
		}
	}
	return Equal
}
