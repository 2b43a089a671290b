package confsync

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/confsync/reconcile"
)

const selectDoc = `
system:
  hostname: h1
  interface:
  - name: eth0
    mtu: 1500
  - name: eth1
    mtu: 9000
`

func TestSelect(t *testing.T) {
	doc := parseDoc(t, selectDoc)
	tests := []struct {
		expr string
		want []string
	}{
		{`Name == "mtu" && Value > 1500`, []string{"/system/interface[name=eth1]/mtu"}},
		{`Key`, []string{"/system/interface[name=eth0]/name", "/system/interface[name=eth1]/name"}},
		{`Kind == "container" && Depth == 1`, []string{"/system/interface[name=eth0]", "/system/interface[name=eth1]"}},
		{`Depth == 0`, []string{"/system"}},
		{`Kind == "leaf" && Value == "h1"`, []string{"/system/hostname"}},
		{`Op != ""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Select(doc, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			var paths []string
			if len(got) != 0 {
				paths = got.Paths()
			}
			if diff := cmp.Diff(tt.want, paths); diff != "" {
				t.Errorf("selected (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectErrors(t *testing.T) {
	doc := parseDoc(t, selectDoc)
	for _, e := range []string{`Name ==`, `Name`, `Nope == 1`, `int(Name) > 0`} {
		if _, err := Select(doc, e); !errors.Is(err, ErrBadExpr) {
			t.Errorf("%q: err = %v, want ErrBadExpr", e, err)
		}
	}
}

func TestSelectSubtree(t *testing.T) {
	doc := parseDoc(t, selectDoc)
	e, err := doc.Lookup("interface[name=eth1]")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Select(e, `Depth == 1`)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"/system/interface[name=eth1]/name", "/system/interface[name=eth1]/mtu"}
	if diff := cmp.Diff(want, got.Paths()); diff != "" {
		t.Errorf("selected (-want +got):\n%s", diff)
	}
}

func TestFilter(t *testing.T) {
	doc := parseDoc(t, selectDoc)
	tests := []struct {
		expr string
		want string
	}{
		{`Name == "mtu" && Value > 1500`, "system:\n  interface:\n  - name: eth1\n    mtu: 9000"},
		{`Key`, "system:\n  interface:\n  - name: eth0\n  - name: eth1"},
		{`Name == "interface" || Name == "mtu"`, "system:\n  interface:\n  - name: eth0\n    mtu: 1500\n  - name: eth1\n    mtu: 9000"},
		{`Name == "nope"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Filter(doc, tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, enc(got)); diff != "" {
				t.Errorf("filtered (-want +got):\n%s", diff)
			}
		})
	}
	whole, err := Filter(doc, `Depth == 0`)
	if err != nil {
		t.Fatal(err)
	}
	if whole.Tree() == doc.Tree() || !reconcile.CheckSync(whole, doc) {
		t.Errorf("filter selecting the root:\n%s", enc(whole))
	}
	if _, err := Filter(doc, `Name ==`); !errors.Is(err, ErrBadExpr) {
		t.Errorf("bad expression: %v", err)
	}
}

func TestFilterScopesSync(t *testing.T) {
	a := parseDoc(t, selectDoc)
	b := parseDoc(t, "system:\n  hostname: h2\n  interface:\n  - name: eth0\n    mtu: 1500\n  - name: eth1\n    mtu: 1500\n")
	only := `Name == "interface"`
	fa, err := Filter(a, only)
	if err != nil {
		t.Fatal(err)
	}
	fb, err := Filter(b, only)
	if err != nil {
		t.Fatal(err)
	}
	want := "system:\n  interface:\n  - !replace\n    name: eth1\n    mtu: 1500"
	if got := enc(reconcile.Sync(fa, fb)); got != want {
		t.Errorf("scoped sync:\n%s\nwant:\n%s", got, want)
	}
}
