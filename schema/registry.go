package schema

import (
	"fmt"
	"strings"
	"sync"
)

type Module struct {
	Name      string
	Namespace string
	Prefix    string
	Revision  string
	Roots     []*Container
}

// Root returns the top level container type with the given name.
func (m *Module) Root(name string) (*Container, bool) {
	for _, r := range m.Roots {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// Registry maps namespaces to modules.  A Registry is safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	byNS     map[string]*Module
	byPrefix map[string]*Module
	order    []string
}

func NewRegistry(mods ...*Module) (*Registry, error) {
	r := &Registry{
		byNS:     map[string]*Module{},
		byPrefix: map[string]*Module{},
	}
	for _, m := range mods {
		if err := r.Add(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a module, replacing any module with the same namespace.
func (r *Registry) Add(m *Module) error {
	if m == nil {
		return fmt.Errorf("%w: cannot register nil module", ErrBadSchema)
	}
	if m.Namespace == "" {
		return fmt.Errorf("%w: module %q has no namespace", ErrBadSchema, m.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.Prefix != "" {
		if other, ok := r.byPrefix[m.Prefix]; ok && other.Namespace != m.Namespace {
			return fmt.Errorf("%w: prefix %q already used by %s", ErrBadSchema, m.Prefix, other.Namespace)
		}
	}
	r.remove(m.Namespace)
	r.byNS[m.Namespace] = m
	if m.Prefix != "" {
		r.byPrefix[m.Prefix] = m
	}
	r.order = append(r.order, m.Namespace)
	return nil
}

func (r *Registry) Remove(ns string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(ns)
}

func (r *Registry) remove(ns string) {
	m, ok := r.byNS[ns]
	if !ok {
		return
	}
	delete(r.byNS, ns)
	if m.Prefix != "" && r.byPrefix[m.Prefix] == m {
		delete(r.byPrefix, m.Prefix)
	}
	for i, o := range r.order {
		if o == ns {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup looks up a module by namespace.
func (r *Registry) Lookup(ns string) (*Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byNS[ns]
	return m, ok
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []*Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]*Module, len(r.order))
	for i, ns := range r.order {
		res[i] = r.byNS[ns]
	}
	return res
}

// RootNS finds a root container type by namespace and name.
func (r *Registry) RootNS(ns, name string) (*Container, error) {
	m, ok := r.Lookup(ns)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, ns)
	}
	c, ok := m.Root(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownRoot, name, ns)
	}
	return c, nil
}

// Root resolves a root container type from a name of the form "prefix:name"
// or "name".  An unqualified name must be unique across modules.
func (r *Registry) Root(qname string) (*Container, error) {
	if prefix, name, ok := strings.Cut(qname, ":"); ok {
		r.mu.RLock()
		m, found := r.byPrefix[prefix]
		r.mu.RUnlock()
		if !found {
			return nil, fmt.Errorf("%w: prefix %q", ErrUnknownModule, prefix)
		}
		return r.RootNS(m.Namespace, name)
	}
	var res *Container
	for _, m := range r.Modules() {
		c, ok := m.Root(qname)
		if !ok {
			continue
		}
		if res != nil {
			return nil, fmt.Errorf("%w: %q is ambiguous between %s and %s", ErrUnknownRoot, qname, res.Namespace, c.Namespace)
		}
		res = c
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoot, qname)
	}
	return res, nil
}
