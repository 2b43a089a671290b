package schema

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

type moduleDoc struct {
	Module    string     `yaml:"module"`
	Namespace string     `yaml:"namespace"`
	Prefix    string     `yaml:"prefix"`
	Revision  string     `yaml:"revision"`
	Roots     []fieldDoc `yaml:"roots"`
}

type fieldDoc struct {
	Container string     `yaml:"container"`
	List      string     `yaml:"list"`
	Leaf      string     `yaml:"leaf"`
	LeafList  string     `yaml:"leaf-list"`
	Type      string     `yaml:"type"`
	Keys      []string   `yaml:"keys"`
	Children  []fieldDoc `yaml:"children"`
}

func (fd *fieldDoc) kindName() (FieldKind, string, error) {
	var (
		kind  FieldKind
		name  string
		count int
	)
	if fd.Leaf != "" {
		kind, name = LeafField, fd.Leaf
		count++
	}
	if fd.LeafList != "" {
		kind, name = LeafListField, fd.LeafList
		count++
	}
	if fd.Container != "" {
		kind, name = ContainerField, fd.Container
		count++
	}
	if fd.List != "" {
		kind, name = ListField, fd.List
		count++
	}
	if count != 1 {
		return 0, "", fmt.Errorf("%w: each field needs exactly one of leaf, leaf-list, container, list", ErrBadSchema)
	}
	return kind, name, nil
}

// Parse reads a YAML module document.
func Parse(d []byte) (*Module, error) {
	doc := &moduleDoc{}
	if err := yaml.UnmarshalWithOptions(d, doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSchema, err)
	}
	if doc.Namespace == "" {
		return nil, fmt.Errorf("%w: module %q has no namespace", ErrBadSchema, doc.Module)
	}
	m := &Module{
		Name:      doc.Module,
		Namespace: doc.Namespace,
		Prefix:    doc.Prefix,
		Revision:  doc.Revision,
	}
	for i := range doc.Roots {
		f, err := doc.Roots[i].build(m.Namespace)
		if err != nil {
			return nil, err
		}
		if f.Type == nil {
			return nil, fmt.Errorf("%w: root %q must be a container or list", ErrBadSchema, f.Name)
		}
		if _, dup := m.Root(f.Name); dup {
			return nil, fmt.Errorf("%w: duplicate root %q", ErrBadSchema, f.Name)
		}
		m.Roots = append(m.Roots, f.Type)
	}
	return m, nil
}

func ParseFile(path string) (*Module, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (fd *fieldDoc) build(ns string) (*Field, error) {
	kind, name, err := fd.kindName()
	if err != nil {
		return nil, err
	}
	f := &Field{Name: name, Kind: kind}
	if kind.IsLeaf() {
		if len(fd.Children) != 0 || len(fd.Keys) != 0 {
			return nil, fmt.Errorf("%w: %s %q cannot have children or keys", ErrBadSchema, kind, name)
		}
		vt, err := ParseValueType(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		f.ValueType = vt
		return f, nil
	}
	if fd.Type != "" {
		return nil, fmt.Errorf("%w: %s %q cannot have a value type", ErrBadSchema, kind, name)
	}
	if kind == ListField && len(fd.Keys) == 0 {
		return nil, fmt.Errorf("%w: list %q has no keys", ErrBadSchema, name)
	}
	if kind == ContainerField && len(fd.Keys) != 0 {
		return nil, fmt.Errorf("%w: container %q cannot have keys", ErrBadSchema, name)
	}
	fields := make([]*Field, 0, len(fd.Children))
	for i := range fd.Children {
		cf, err := fd.Children[i].build(ns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		fields = append(fields, cf)
	}
	c, err := NewContainer(ns, name, fd.Keys, fields...)
	if err != nil {
		return nil, err
	}
	f.Type = c
	return f, nil
}

// Load parses each file and adds the resulting modules to a new Registry.
func Load(paths ...string) (*Registry, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		m, err := ParseFile(p)
		if err != nil {
			return nil, err
		}
		if err := reg.Add(m); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return reg, nil
}
