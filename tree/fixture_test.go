package tree

import (
	"testing"

	"github.com/signadot/confsync/schema"
)

const testNS = "urn:example:system"

var (
	interfaceType = schema.MustContainer(testNS, "interface", []string{"name"},
		schema.Leaf("name"),
		schema.TypedLeaf("mtu", schema.IntValue),
		schema.TypedLeaf("enabled", schema.BoolValue))
	serverType = schema.MustContainer(testNS, "server", nil,
		schema.TypedLeaf("port", schema.IntValue))
	systemType = schema.MustContainer(testNS, "system", nil,
		schema.Leaf("hostname"),
		schema.Child(serverType),
		schema.List(interfaceType),
		schema.LeafList("domain"))
)

type iface struct {
	name string
	mtu  int64
}

// newSystem builds /system with an optional hostname and the given
// interfaces.
func newSystem(t *testing.T, hostname string, ifs ...iface) Node {
	t.Helper()
	root := NewContainer(systemType)
	if hostname != "" {
		must(t)(root.AddLeaf("hostname", FromString(hostname)))
	}
	for _, i := range ifs {
		addInterface(t, root, i)
	}
	return root
}

func addInterface(t *testing.T, root Node, i iface) Node {
	t.Helper()
	e := must(t)(root.AddContainer("interface"))
	must(t)(e.AddLeaf("name", FromString(i.name)))
	if i.mtu != 0 {
		must(t)(e.AddLeaf("mtu", FromInt(i.mtu)))
	}
	return e
}

// must returns a function failing t on a non nil error, so that calls
// returning (Node, error) can be passed to it directly.
func must(t *testing.T) func(Node, error) Node {
	return func(n Node, err error) Node {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return n
	}
}

func childNames(n Node) []string {
	var res []string
	for _, c := range n.Children() {
		res = append(res, c.Name())
	}
	return res
}
