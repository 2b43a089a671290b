package tree

import (
	"fmt"
	"strings"
)

// Segment returns the path segment naming n within its parent: the name,
// followed by [key=value] for each key of a list entry.
func (n Node) Segment() string {
	keys := n.KeyNames()
	if len(keys) == 0 {
		return n.Name()
	}
	buf := strings.Builder{}
	buf.WriteString(n.Name())
	for _, k := range keys {
		buf.WriteByte('[')
		buf.WriteString(k)
		buf.WriteByte('=')
		if kc, ok := n.Child(k); ok {
			buf.WriteString(kc.Value().String())
		}
		buf.WriteByte(']')
	}
	return buf.String()
}

// Path returns the absolute path of n, for example
//
//	/system/interface[name=eth0]/mtu
func (n Node) Path() string {
	anc := n.Ancestors()
	buf := strings.Builder{}
	for _, a := range anc {
		buf.WriteByte('/')
		buf.WriteString(a.Segment())
	}
	buf.WriteByte('/')
	buf.WriteString(n.Segment())
	return buf.String()
}

// DocPath is Path without a leading synthetic root.  A synthetic root's own
// DocPath is "/".
func (n Node) DocPath() string {
	r := n.Root()
	if !IsSynthetic(r) {
		return n.Path()
	}
	if r == n {
		return "/"
	}
	return n.Path()[len(r.Segment())+1:]
}

type pathSeg struct {
	name string
	keys [][2]string
}

// parsePath splits a path into segments.  Values inside brackets are taken
// literally up to the closing bracket, so they may contain '/'.
func parsePath(p string) ([]pathSeg, error) {
	var (
		res []pathSeg
		cur pathSeg
		buf strings.Builder
	)
	i := 0
	for i < len(p) {
		c := p[i]
		switch c {
		case '/':
			if buf.Len() == 0 && len(cur.keys) == 0 {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrBadPath, p)
			}
			if buf.Len() != 0 {
				cur.name = buf.String()
			}
			res = append(res, cur)
			cur = pathSeg{}
			buf.Reset()
			i++
		case '[':
			if buf.Len() == 0 && cur.name == "" {
				return nil, fmt.Errorf("%w: predicate without name in %q", ErrBadPath, p)
			}
			if cur.name == "" {
				cur.name = buf.String()
				buf.Reset()
			}
			end := strings.IndexByte(p[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated predicate in %q", ErrBadPath, p)
			}
			k, v, ok := strings.Cut(p[i+1:i+end], "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("%w: predicate %q must be key=value", ErrBadPath, p[i:i+end+1])
			}
			cur.keys = append(cur.keys, [2]string{k, v})
			i += end + 1
		default:
			if cur.name != "" {
				return nil, fmt.Errorf("%w: unexpected %q after predicate in %q", ErrBadPath, c, p)
			}
			buf.WriteByte(c)
			i++
		}
	}
	if buf.Len() == 0 && cur.name == "" {
		return nil, fmt.Errorf("%w: empty segment in %q", ErrBadPath, p)
	}
	if cur.name == "" {
		cur.name = buf.String()
	}
	return append(res, cur), nil
}

func (s *pathSeg) matches(n Node) bool {
	if n.Name() != s.name {
		return false
	}
	for _, kv := range s.keys {
		kc, ok := n.Child(kv[0])
		if !ok || kc.Value().String() != kv[1] {
			return false
		}
	}
	return true
}

// Lookup finds the node at path p.  Absolute paths start with '/' and name
// the root; relative paths start at n's children.  Segments may select list
// entries with [key=value] predicates.  A path that selects nothing yields
// an error wrapping ErrNotFound.
func (n Node) Lookup(p string) (Node, error) {
	if p == "" {
		return Node{}, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	cur := n
	if p[0] == '/' {
		cur = n.t.Root()
		segs, err := parsePath(p[1:])
		if err != nil {
			return Node{}, err
		}
		if !segs[0].matches(cur) {
			return Node{}, fmt.Errorf("%w: %s: root is %s", ErrNotFound, p, cur.Segment())
		}
		return cur.lookup(p, segs[1:])
	}
	segs, err := parsePath(p)
	if err != nil {
		return Node{}, err
	}
	return cur.lookup(p, segs)
}

func (n Node) lookup(p string, segs []pathSeg) (Node, error) {
	cur := n
	for i := range segs {
		seg := &segs[i]
		found := false
		for _, c := range cur.Children() {
			if seg.matches(c) {
				cur = c
				found = true
				break
			}
		}
		if !found {
			return Node{}, fmt.Errorf("%w: %s (at %s)", ErrNotFound, p, cur.Path())
		}
	}
	return cur, nil
}
