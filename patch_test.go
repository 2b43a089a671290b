package confsync

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/load"
	"github.com/signadot/confsync/reconcile"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.Load("testdata/system.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func parseDoc(t *testing.T, doc string) tree.Node {
	t.Helper()
	n, err := load.Parse(testRegistry(t), []byte(doc), load.AllowUnknown(true))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// editTree parses doc and marks the nodes at the given relative paths, ""
// naming the root.
func editTree(t *testing.T, doc string, ops map[string]tree.Op) tree.Node {
	t.Helper()
	n := parseDoc(t, doc)
	for p, op := range ops {
		if p == "" {
			n.Mark(op)
			continue
		}
		c, err := n.Lookup(p)
		if err != nil {
			t.Fatal(err)
		}
		c.Mark(op)
	}
	return n
}

func enc(n tree.Node) string {
	if n.IsZero() {
		return ""
	}
	return encode.MustString(n)
}

const patchBase = `
system:
  hostname: h1
  interface:
  - name: eth0
    mtu: 1500
  domain: [a, b]
`

type patchTest struct {
	name string
	edit string
	ops  map[string]tree.Op
	want string
	err  error
}

func TestPatch(t *testing.T) {
	tests := []patchTest{
		{
			name: "set leaf",
			edit: "system:\n  hostname: h2",
			want: "system:\n  hostname: h2\n  interface:\n  - name: eth0\n    mtu: 1500\n  domain:\n  - a\n  - b",
		},
		{
			name: "create entry",
			edit: "system:\n  interface:\n  - name: eth1\n    mtu: 9000",
			ops:  map[string]tree.Op{"interface[name=eth1]": tree.OpCreate},
			want: `
system:
  hostname: h1
  interface:
  - name: eth0
    mtu: 1500
  - name: eth1
    mtu: 9000
  domain:
  - a
  - b`,
		},
		{
			name: "create existing entry",
			edit: "system:\n  interface:\n  - name: eth0",
			ops:  map[string]tree.Op{"interface[name=eth0]": tree.OpCreate},
			err:  ErrDataExists,
		},
		{
			name: "delete entry",
			edit: "system:\n  interface:\n  - name: eth0",
			ops:  map[string]tree.Op{"interface[name=eth0]": tree.OpDelete},
			want: "system:\n  hostname: h1\n  domain:\n  - a\n  - b",
		},
		{
			name: "delete missing entry",
			edit: "system:\n  interface:\n  - name: eth9",
			ops:  map[string]tree.Op{"interface[name=eth9]": tree.OpDelete},
			err:  ErrDataMissing,
		},
		{
			name: "replace entry",
			edit: "system:\n  interface:\n  - name: eth0\n    enabled: true",
			ops:  map[string]tree.Op{"interface[name=eth0]": tree.OpReplace},
			want: "system:\n  hostname: h1\n  interface:\n  - name: eth0\n    enabled: true\n  domain:\n  - a\n  - b",
		},
		{
			name: "merge missing container",
			edit: "system:\n  server:\n    port: 8",
			want: `
system:
  hostname: h1
  server:
    port: 8
  interface:
  - name: eth0
    mtu: 1500
  domain:
  - a
  - b`,
		},
		{
			name: "delete below missing container",
			edit: "system:\n  server:\n    port: 8",
			ops:  map[string]tree.Op{"server/port": tree.OpDelete},
			err:  ErrDataMissing,
		},
		{
			name: "delete member",
			edit: "system:\n  domain: [a]",
			ops:  map[string]tree.Op{"domain": tree.OpDelete},
			want: "system:\n  hostname: h1\n  interface:\n  - name: eth0\n    mtu: 1500\n  domain:\n  - b",
		},
		{
			name: "delete missing member",
			edit: "system:\n  domain: [c]",
			ops:  map[string]tree.Op{"domain": tree.OpDelete},
			err:  ErrDataMissing,
		},
		{
			name: "create member",
			edit: "system:\n  domain: [c]",
			ops:  map[string]tree.Op{"domain": tree.OpCreate},
			want: "system:\n  hostname: h1\n  interface:\n  - name: eth0\n    mtu: 1500\n  domain:\n  - a\n  - b\n  - c",
		},
		{
			name: "present member",
			edit: "system:\n  domain: [b]",
			want: "system:\n  hostname: h1\n  interface:\n  - name: eth0\n    mtu: 1500\n  domain:\n  - a\n  - b",
		},
		{
			name: "replace member",
			edit: "system:\n  domain: [c]",
			ops:  map[string]tree.Op{"domain": tree.OpReplace},
			want: "system:\n  hostname: h1\n  interface:\n  - name: eth0\n    mtu: 1500\n  domain:\n  - c\n  - b",
		},
		{
			name: "delete root",
			edit: "system: {}",
			ops:  map[string]tree.Op{"": tree.OpDelete},
			want: "",
		},
		{
			name: "create root",
			edit: "system: {}",
			ops:  map[string]tree.Op{"": tree.OpCreate},
			err:  ErrDataExists,
		},
		{
			name: "replace root",
			edit: "system:\n  hostname: x",
			ops:  map[string]tree.Op{"": tree.OpReplace},
			want: "system:\n  hostname: x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, patchBase)
			before := enc(doc)
			res, err := Patch(doc, editTree(t, tt.edit, tt.ops))
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(strings.TrimSpace(tt.want), enc(res)); diff != "" {
				t.Errorf("patched (-want +got):\n%s", diff)
			}
			if enc(doc) != before {
				t.Errorf("document modified")
			}
			if !res.IsZero() && strings.Contains(enc(res), "!") {
				t.Errorf("result carries operations:\n%s", enc(res))
			}
		})
	}
}

func TestPatchZero(t *testing.T) {
	doc := parseDoc(t, patchBase)
	res, err := Patch(doc, tree.Node{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Tree() == doc.Tree() || !reconcile.CheckSync(res, doc) {
		t.Errorf("zero edit:\n%s", enc(res))
	}
	res, err = Patch(tree.Node{}, parseDoc(t, "system:\n  hostname: h"))
	if err != nil {
		t.Fatal(err)
	}
	if got := enc(res); got != "system:\n  hostname: h" {
		t.Errorf("patch of nothing:\n%s", got)
	}
}

type roundTrip struct {
	name  string
	a, b  string
	path  string
	merge bool
}

func TestPatchRoundTrip(t *testing.T) {
	tests := []roundTrip{
		{name: "in sync", a: patchBase, b: patchBase, merge: true},
		{
			name:  "server port",
			a:     "system:\n  server:\n    port: 22",
			b:     "system:\n  server:\n    port: 23",
			path:  "/system/server",
			merge: true,
		},
		{
			name:  "create entry",
			a:     "system:\n  interface:\n  - name: eth0\n    mtu: 1500",
			b:     "system:\n  interface:\n  - name: eth0\n    mtu: 1500\n  - name: eth1\n    mtu: 9000",
			merge: true,
		},
		{
			name:  "delete entry",
			a:     "system:\n  interface:\n  - name: eth0\n    mtu: 1500\n  - name: eth1\n    mtu: 9000",
			b:     "system:\n  interface:\n  - name: eth1\n    mtu: 9000",
			merge: true,
		},
		{
			name:  "changed entry",
			a:     "system:\n  interface:\n  - name: eth0\n    mtu: 1500\n    enabled: true",
			b:     "system:\n  interface:\n  - name: eth0\n    mtu: 9000",
			merge: true,
		},
		{
			name:  "removed container",
			a:     "system:\n  hostname: h\n  server:\n    port: 22",
			b:     "system:\n  hostname: h",
			merge: true,
		},
		{
			name:  "composite keys",
			a:     "system:\n  route:\n  - dest: 10.0.0.0/8\n    table: 1\n    gateway: 10.0.0.1",
			b:     "system:\n  route:\n  - dest: 10.0.0.0/8\n    table: 2\n    gateway: 10.0.0.1",
			merge: true,
		},
		{
			name:  "roots differ",
			a:     "system:\n  interface:\n  - name: eth0\n    mtu: 1500",
			b:     "system:\n  interface:\n  - name: eth2\n    mtu: 1500",
			path:  "/system/interface",
			merge: true,
		},
		{
			name:  "members appended",
			a:     "system:\n  domain: [a]",
			b:     "system:\n  domain: [a, b]",
			merge: true,
		},
		{
			name:  "members truncated",
			a:     "system:\n  domain: [a, b, c]",
			b:     "system:\n  domain: [a, b]",
			merge: true,
		},
		{
			name:  "plain container changed",
			a:     "system:\n  hostname: h\n  server:\n    port: 22",
			b:     "system:\n  hostname: h\n  server:\n    port: 23",
			merge: true,
		},
		{
			name: "members reordered",
			a:    "system:\n  domain: [a, b]",
			b:    "system:\n  domain: [b, a]",
		},
		{
			name: "member removed from the front",
			a:    "system:\n  domain: [a, b]",
			b:    "system:\n  domain: [b]",
		},
		{
			name:  "elements",
			a:     "system:\n  hostname: h\n  vendor:\n    x: 1",
			b:     "system:\n  hostname: h\n  vendor:\n    x: 2",
			merge: true,
		},
		{
			name: "everything",
			a: `
system:
  hostname: h1
  interface:
  - name: eth0
    mtu: 1500
  - name: eth1
  domain: [a]
`,
			b: `
system:
  hostname: h2
  server:
    port: 22
  interface:
  - name: eth0
    mtu: 9000
  - name: eth2
    enabled: true
  route:
  - dest: 10.0.0.0/8
    table: 1
  domain: [a, b]
`,
			merge: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := parseDoc(t, tt.a), parseDoc(t, tt.b)
			if tt.path != "" {
				var err error
				if a, err = a.Lookup(tt.path); err != nil {
					t.Fatal(err)
				}
				if b, err = b.Lookup(tt.path); err != nil {
					t.Fatal(err)
				}
			}
			check := func(kind string, edit tree.Node) {
				res, err := Patch(a, edit)
				if err != nil {
					t.Fatalf("%s: %v\nedit:\n%s", kind, err, enc(edit))
				}
				if !reconcile.CheckSync(res, b) {
					t.Errorf("%s: patched tree is not in sync\nedit:\n%s\npatched:\n%s", kind, enc(edit), enc(res))
				}
			}
			check("sync", reconcile.Sync(a, b))
			if tt.merge {
				check("merge", reconcile.SyncMerge(a, b))
			}
		})
	}
}

func TestPatchSet(t *testing.T) {
	reg := testRegistry(t)
	a, err := load.ParseSet(reg, []byte("user:\n- name: alice\n  uid: 1\n- name: bob\n  uid: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := load.ParseSet(reg, []byte("user:\n- name: bob\n  uid: 3\n- name: carol\n  uid: 4\n"))
	if err != nil {
		t.Fatal(err)
	}
	for name, edit := range map[string]tree.NodeSet{
		"sync":  reconcile.SyncSet(a, b),
		"merge": reconcile.SyncMergeSet(a, b),
	} {
		res, err := PatchSet(a, edit)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !reconcile.CheckSyncSet(res, b) {
			t.Errorf("%s: %v", name, res.Paths())
		}
		for _, n := range res {
			if !n.IsRoot() {
				t.Errorf("%s: %s is not a root", name, n)
			}
		}
	}
	res, err := PatchSet(a, nil)
	if err != nil || !reconcile.CheckSyncSet(res, a) {
		t.Errorf("empty edit: %v %v", res.Paths(), err)
	}
}
