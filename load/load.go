package load

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"

	"github.com/goccy/go-yaml"
)

type loader struct {
	reg          *schema.Registry
	allowUnknown bool
}

// Parse builds the tree of a document holding exactly one root.
func Parse(reg *schema.Registry, d []byte, opts ...Option) (tree.Node, error) {
	s, err := ParseSet(reg, d, opts...)
	if err != nil {
		return tree.Node{}, err
	}
	if len(s) != 1 {
		return tree.Node{}, fmt.Errorf("%w: expected one root, got %d", ErrBadDocument, len(s))
	}
	return s[0], nil
}

// ParseSet builds one tree per root of a document.  An empty document
// yields an empty set.
func ParseSet(reg *schema.Registry, d []byte, opts ...Option) (tree.NodeSet, error) {
	l := &loader{reg: reg}
	for _, opt := range opts {
		opt(l)
	}
	var doc any
	if err := yaml.UnmarshalWithOptions(d, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	if doc == nil {
		return nil, nil
	}
	top, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping, got %T", ErrBadDocument, doc)
	}
	var res tree.NodeSet
	for _, item := range top {
		roots, err := l.root(keyString(item.Key), item.Value)
		if err != nil {
			return nil, err
		}
		res = append(res, roots...)
	}
	if debug.Load() {
		debug.Logf("loaded %d roots: %v\n", len(res), res.Paths())
	}
	return res, nil
}

func ParseFile(reg *schema.Registry, path string, opts ...Option) (tree.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return tree.Node{}, err
	}
	n, err := Parse(reg, d, opts...)
	if err != nil {
		return tree.Node{}, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

func ParseFileSet(reg *schema.Registry, path string, opts ...Option) (tree.NodeSet, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSet(reg, d, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// localName strips a module prefix from a qualified name.
func localName(qname string) string {
	if _, name, ok := strings.Cut(qname, ":"); ok {
		return name
	}
	return qname
}

func (l *loader) root(qname string, v any) (tree.NodeSet, error) {
	ct, err := l.reg.Root(qname)
	if err != nil {
		if !l.allowUnknown {
			return nil, fmt.Errorf("%w: root %q: %w", ErrUnknownElement, qname, err)
		}
		return l.unknownRoots(qname, v)
	}
	var entries []any
	if seq, ok := v.([]any); ok && ct.IsList() {
		entries = seq
	} else {
		entries = []any{v}
	}
	var res tree.NodeSet
	for _, e := range entries {
		n := tree.NewContainer(ct)
		if err := l.members(n, e); err != nil {
			return nil, err
		}
		if err := checkKeys(n); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (l *loader) unknownRoots(qname string, v any) (tree.NodeSet, error) {
	w := tree.NewSynthetic()
	if err := l.element(w, "", localName(qname), v); err != nil {
		return nil, err
	}
	res := w.Children()
	for i, c := range res {
		res[i] = c.Clone()
	}
	return res, nil
}

// members adds the members of mapping v to container n.
func (l *loader) members(n tree.Node, v any) error {
	if v == nil {
		return nil
	}
	m, ok := v.(yaml.MapSlice)
	if !ok {
		return fmt.Errorf("%w: %s must be a mapping, got %s", ErrBadDocument, n.Path(), describe(v))
	}
	for _, item := range m {
		if err := l.member(n, keyString(item.Key), item.Value); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) member(n tree.Node, qname string, v any) error {
	name := localName(qname)
	f, ok := n.Type().Field(name)
	if !ok {
		if !l.allowUnknown {
			return fmt.Errorf("%w: %q in %s", ErrUnknownElement, qname, n.Path())
		}
		return l.element(n, n.Namespace(), name, v)
	}
	switch f.Kind {
	case schema.LeafField:
		val, err := coerce(f.ValueType, v)
		if err != nil {
			return fmt.Errorf("%s/%s: %w", n.Path(), name, err)
		}
		_, err = n.AddLeaf(name, val)
		return err
	case schema.LeafListField:
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		for _, it := range items {
			val, err := coerce(f.ValueType, it)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", n.Path(), name, err)
			}
			if _, err := n.AddLeaf(name, val); err != nil {
				return err
			}
		}
		return nil
	case schema.ContainerField:
		c, err := n.AddContainer(name)
		if err != nil {
			return err
		}
		return l.members(c, v)
	case schema.ListField:
		items, ok := v.([]any)
		if !ok {
			items = []any{v}
		}
		for _, it := range items {
			e, err := n.AddContainer(name)
			if err != nil {
				return err
			}
			if err := l.members(e, it); err != nil {
				return err
			}
			if err := checkKeys(e); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %s/%s has field kind %s", ErrBadDocument, n.Path(), name, f.Kind)
}

func checkKeys(e tree.Node) error {
	for _, k := range e.KeyNames() {
		if _, ok := e.Child(k); !ok {
			return fmt.Errorf("%w: %s entry in %s has no key %q", ErrBadDocument, e.Name(), parentPath(e), k)
		}
	}
	return nil
}

func parentPath(n tree.Node) string {
	if p, ok := n.Parent(); ok {
		return p.Path()
	}
	return "/"
}

// element adds the untyped rendering of v under n.  Sequences produce one
// element per item.
func (l *loader) element(n tree.Node, ns, name string, v any) error {
	if isEmptyMarker(v) {
		_, err := n.AddElement(ns, name, tree.Empty())
		return err
	}
	switch x := v.(type) {
	case []any:
		for _, it := range x {
			if err := l.element(n, ns, name, it); err != nil {
				return err
			}
		}
		return nil
	case yaml.MapSlice:
		e, err := n.AddElement(ns, name, tree.Null())
		if err != nil {
			return err
		}
		for _, item := range x {
			k := keyString(item.Key)
			if k == "@value" {
				val, err := coerce(schema.AnyValue, item.Value)
				if err != nil {
					return fmt.Errorf("%s: %w", e.Path(), err)
				}
				if err := e.SetValue(val); err != nil {
					return err
				}
				continue
			}
			if err := l.element(e, ns, localName(k), item.Value); err != nil {
				return err
			}
		}
		return nil
	}
	val, err := coerce(schema.AnyValue, v)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", n.Path(), name, err)
	}
	_, err = n.AddElement(ns, name, val)
	return err
}

func describe(v any) string {
	switch v.(type) {
	case yaml.MapSlice:
		return "a mapping"
	case []any:
		return "a sequence"
	}
	return fmt.Sprintf("scalar %v", v)
}

func isEmptyMarker(v any) bool {
	seq, ok := v.([]any)
	return ok && len(seq) == 1 && seq[0] == nil
}

// coerce converts a decoded scalar to a leaf value of type vt.
func coerce(vt schema.ValueType, v any) (tree.Value, error) {
	if isEmptyMarker(v) {
		return tree.Empty(), nil
	}
	if v == nil {
		if vt == schema.EmptyValue {
			return tree.Empty(), nil
		}
		return tree.Null(), nil
	}
	switch v.(type) {
	case yaml.MapSlice, []any:
		return tree.Value{}, fmt.Errorf("%w: expected a scalar, got %s", ErrBadDocument, describe(v))
	}
	switch vt {
	case schema.StringValue:
		if s, ok := v.(string); ok {
			return tree.FromString(s), nil
		}
		return tree.FromString(fmt.Sprint(v)), nil
	case schema.IntValue:
		if i, ok := asInt(v); ok {
			return tree.FromInt(i), nil
		}
		if s, ok := v.(string); ok {
			if i, err := strconv.ParseInt(s, 0, 64); err == nil {
				return tree.FromInt(i), nil
			}
		}
	case schema.FloatValue:
		if i, ok := asInt(v); ok {
			return tree.FromFloat(float64(i)), nil
		}
		switch x := v.(type) {
		case float64:
			return tree.FromFloat(x), nil
		case float32:
			return tree.FromFloat(float64(x)), nil
		case string:
			if f, err := strconv.ParseFloat(x, 64); err == nil {
				return tree.FromFloat(f), nil
			}
		}
	case schema.BoolValue:
		switch x := v.(type) {
		case bool:
			return tree.FromBool(x), nil
		case string:
			if b, err := strconv.ParseBool(x); err == nil {
				return tree.FromBool(b), nil
			}
		}
	case schema.EmptyValue:
	default:
		return natural(v)
	}
	return tree.Value{}, fmt.Errorf("%w: %v is not a valid %s", ErrBadDocument, v, vt)
}

func natural(v any) (tree.Value, error) {
	if i, ok := asInt(v); ok {
		return tree.FromInt(i), nil
	}
	switch x := v.(type) {
	case string:
		return tree.FromString(x), nil
	case bool:
		return tree.FromBool(x), nil
	case float64:
		return tree.FromFloat(x), nil
	case float32:
		return tree.FromFloat(float64(x)), nil
	case uint64:
		return tree.FromFloat(float64(x)), nil
	}
	return tree.FromString(fmt.Sprint(v)), nil
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), uint64(x) <= math.MaxInt64
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), x <= math.MaxInt64
	}
	return 0, false
}
