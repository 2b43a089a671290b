package schema

import (
	"fmt"
	"slices"
)

type FieldKind int

const (
	LeafField FieldKind = iota
	LeafListField
	ContainerField
	ListField
)

func (k FieldKind) String() string {
	switch k {
	case LeafField:
		return "leaf"
	case LeafListField:
		return "leaf-list"
	case ContainerField:
		return "container"
	case ListField:
		return "list"
	default:
		return fmt.Sprintf("<FieldKind %d>", int(k))
	}
}

// IsLeaf reports whether fields of this kind hold scalar values.
func (k FieldKind) IsLeaf() bool { return k == LeafField || k == LeafListField }

// ValueType is a hint for coercing scalar input.  It is not validation.
type ValueType int

const (
	AnyValue ValueType = iota
	StringValue
	IntValue
	FloatValue
	BoolValue
	EmptyValue
)

func ParseValueType(v string) (ValueType, error) {
	t, ok := map[string]ValueType{
		"":       AnyValue,
		"any":    AnyValue,
		"string": StringValue,
		"int":    IntValue,
		"float":  FloatValue,
		"bool":   BoolValue,
		"empty":  EmptyValue,
	}[v]
	if !ok {
		return AnyValue, fmt.Errorf("%w: unknown value type %q", ErrBadSchema, v)
	}
	return t, nil
}

func (t ValueType) String() string {
	switch t {
	case StringValue:
		return "string"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case BoolValue:
		return "bool"
	case EmptyValue:
		return "empty"
	default:
		return "any"
	}
}

type Field struct {
	Name      string
	Kind      FieldKind
	Key       bool
	ValueType ValueType
	// Type is set for ContainerField and ListField.
	Type *Container
}

func Leaf(name string) *Field {
	return &Field{Name: name, Kind: LeafField}
}

func TypedLeaf(name string, vt ValueType) *Field {
	return &Field{Name: name, Kind: LeafField, ValueType: vt}
}

func LeafList(name string) *Field {
	return &Field{Name: name, Kind: LeafListField}
}

func Child(c *Container) *Field {
	return &Field{Name: c.Name, Kind: ContainerField, Type: c}
}

func List(c *Container) *Field {
	return &Field{Name: c.Name, Kind: ListField, Type: c}
}

// Container is a container type.  A Container with key names is a list
// entry type.
type Container struct {
	Namespace string
	Name      string
	Fields    []*Field

	names  []string
	keys   []string
	byName map[string]*Field
}

// NewContainer builds and validates a container type.  keys, if any, must
// name the first len(keys) fields in order and those fields must be leaves.
func NewContainer(ns, name string, keys []string, fields ...*Field) (*Container, error) {
	c := &Container{Namespace: ns, Name: name, Fields: fields}
	if err := c.compile(keys); err != nil {
		return nil, err
	}
	return c, nil
}

// MustContainer is like NewContainer but panics on invalid definitions.
func MustContainer(ns, name string, keys []string, fields ...*Field) *Container {
	c, err := NewContainer(ns, name, keys, fields...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Container) compile(keys []string) error {
	if c.Name == "" {
		return fmt.Errorf("%w: container without a name", ErrBadSchema)
	}
	c.byName = make(map[string]*Field, len(c.Fields))
	c.names = make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %s: field without a name", ErrBadSchema, c.Name)
		}
		if _, dup := c.byName[f.Name]; dup {
			return fmt.Errorf("%w: %s: duplicate field %q", ErrBadSchema, c.Name, f.Name)
		}
		switch f.Kind {
		case ContainerField, ListField:
			if f.Type == nil {
				return fmt.Errorf("%w: %s: %s %q has no type", ErrBadSchema, c.Name, f.Kind, f.Name)
			}
			if f.Kind == ListField && !f.Type.IsList() {
				return fmt.Errorf("%w: %s: list %q has no keys", ErrBadSchema, c.Name, f.Name)
			}
			if f.Kind == ContainerField && f.Type.IsList() {
				return fmt.Errorf("%w: %s: container %q has keys", ErrBadSchema, c.Name, f.Name)
			}
		}
		c.byName[f.Name] = f
		c.names = append(c.names, f.Name)
	}
	for i, k := range keys {
		f, ok := c.byName[k]
		if !ok {
			return fmt.Errorf("%w: %s: key %q is not a field", ErrBadSchema, c.Name, k)
		}
		if f.Kind != LeafField {
			return fmt.Errorf("%w: %s: key %q is a %s, not a leaf", ErrBadSchema, c.Name, k, f.Kind)
		}
		if slices.Index(keys, k) != i {
			return fmt.Errorf("%w: %s: duplicate key %q", ErrBadSchema, c.Name, k)
		}
		if c.names[i] != k {
			return fmt.Errorf("%w: %s: keys %v are not a prefix of children %v", ErrBadSchema, c.Name, keys, c.names)
		}
		f.Key = true
	}
	for _, f := range c.Fields[len(keys):] {
		if f.Key {
			return fmt.Errorf("%w: %s: field %q marked key but not listed in keys", ErrBadSchema, c.Name, f.Name)
		}
	}
	if len(keys) > 0 {
		c.keys = slices.Clone(keys)
	}
	return nil
}

// ChildrenNames returns the field names in schema order, keys first.
func (c *Container) ChildrenNames() []string { return c.names }

// KeyNames returns the key names of a list entry type, or nil.
func (c *Container) KeyNames() []string { return c.keys }

func (c *Container) IsList() bool { return len(c.keys) != 0 }

func (c *Container) Field(name string) (*Field, bool) {
	f, ok := c.byName[name]
	return f, ok
}

func (c *Container) IsChild(name string) bool {
	_, ok := c.byName[name]
	return ok
}

func (c *Container) IsKey(name string) bool {
	f, ok := c.byName[name]
	return ok && f.Key
}

// Index returns the schema position of the named child, or -1.
func (c *Container) Index(name string) int {
	return slices.Index(c.names, name)
}

func (c *Container) String() string {
	if c.IsList() {
		return fmt.Sprintf("%s%v", c.Name, c.keys)
	}
	return c.Name
}
