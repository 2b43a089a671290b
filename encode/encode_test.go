package encode_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/format"
	"github.com/signadot/confsync/load"
	"github.com/signadot/confsync/reconcile"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"
)

const fullDoc = `
system:
  hostname: h1
  note: "22"
  ratio: 1
  maintenance: [null]
  server:
    port: 22
  interface:
  - name: eth0
    mtu: 1500
    enabled: true
  - name: "a: b"
  domain: [a.com, b.com]
`

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
	n, err := load.Parse(testRegistry(t), []byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

// tagged returns a tree carrying one operation of each kind.
func tagged(t *testing.T) tree.Node {
	t.Helper()
	n := parseDoc(t, "system:\n  hostname: h1\n  server: {}\n  interface:\n  - name: eth0\n  domain: [a.com]\n")
	for p, op := range map[string]tree.Op{
		"hostname":             tree.OpReplace,
		"server":               tree.OpDelete,
		"interface[name=eth0]": tree.OpCreate,
		"domain":               tree.OpDelete,
	} {
		c, err := n.Lookup(p)
		if err != nil {
			t.Fatal(err)
		}
		c.Mark(op)
	}
	return n
}

func encodeString(t *testing.T, n tree.Node, opts ...encode.EncodeOption) string {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n, buf, opts...); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestYAML(t *testing.T) {
	want := strings.TrimLeft(`
system:
  hostname: h1
  note: "22"
  ratio: 1.0
  maintenance: [null]
  server:
    port: 22
  interface:
  - name: eth0
    mtu: 1500
    enabled: true
  - name: "a: b"
  domain:
  - a.com
  - b.com
`, "\n")
	if diff := cmp.Diff(want, encodeString(t, parseDoc(t, fullDoc))); diff != "" {
		t.Errorf("yaml (-want +got):\n%s", diff)
	}
}

func TestYAMLOps(t *testing.T) {
	n := tagged(t)
	want := strings.TrimSpace(`
system:
  hostname: !replace h1
  server: !delete {}
  interface:
  - !create
    name: eth0
  domain:
  - !delete a.com`)
	if diff := cmp.Diff(want, encode.MustString(n)); diff != "" {
		t.Errorf("yaml (-want +got):\n%s", diff)
	}
	want = strings.TrimSpace(`
system:
  hostname: h1
  server: {}
  interface:
  - name: eth0
  domain:
  - a.com`)
	if diff := cmp.Diff(want, encode.MustString(n, encode.EncodeOps(false))); diff != "" {
		t.Errorf("yaml without ops (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	want := strings.TrimLeft(`
{
  "system": {
    "hostname": "h1",
    "@hostname": {"operation": "replace"},
    "server": {
      "@operation": "delete"
    },
    "interface": [
      {
        "@operation": "create",
        "name": "eth0"
      }
    ],
    "domain": [
      "a.com"
    ],
    "@domain": [
      {"operation": "delete"}
    ]
  }
}
`, "\n")
	got := encodeString(t, tagged(t), encode.EncodeFormat(format.JSONFormat))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
	full := encodeString(t, parseDoc(t, fullDoc), encode.EncodeFormat(format.JSONFormat))
	if !json.Valid([]byte(full)) {
		t.Errorf("invalid json:\n%s", full)
	}
}

func TestPaths(t *testing.T) {
	want := strings.TrimLeft(`
!replace /system/hostname = "h1"
!delete /system/server
!create /system/interface[name=eth0]
/system/interface[name=eth0]/name = "eth0"
!delete /system/domain = "a.com"
`, "\n")
	got := encodeString(t, tagged(t), encode.EncodeFormat(format.PathsFormat))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}

	users, err := load.ParseSet(testRegistry(t), []byte("user:\n- name: a\n  uid: 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeSet(users, buf, encode.EncodeFormat(format.PathsFormat)); err != nil {
		t.Fatal(err)
	}
	want = "/user[name=a]/name = \"a\"\n/user[name=a]/uid = 1\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("set paths (-want +got):\n%s", diff)
	}
}

func TestEncodeSet(t *testing.T) {
	reg := testRegistry(t)
	users, err := load.ParseSet(reg, []byte("user:\n- name: a\n  uid: 1\n- name: b\n"))
	if err != nil {
		t.Fatal(err)
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.EncodeSet(users, buf); err != nil {
		t.Fatal(err)
	}
	want := "user:\n- name: a\n  uid: 1\n- name: b\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("set (-want +got):\n%s", diff)
	}
	back, err := load.ParseSet(reg, buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !reconcile.CheckSyncSet(users, back) {
		t.Errorf("set round trip differs:\n%s", buf.String())
	}

	for _, f := range []format.Format{format.YAMLFormat, format.JSONFormat} {
		buf.Reset()
		if err := encode.EncodeSet(nil, buf, encode.EncodeFormat(f)); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "null\n" {
			t.Errorf("%s empty set = %q", f, buf.String())
		}
	}
	if got := encode.MustString(tree.NewSynthetic()); got != "{}" {
		t.Errorf("empty synthetic root = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	reg := testRegistry(t)
	src := parseDoc(t, fullDoc)
	for _, f := range []format.Format{format.YAMLFormat, format.JSONFormat} {
		t.Run(f.String(), func(t *testing.T) {
			d := encodeString(t, src, encode.EncodeFormat(f))
			back, err := load.Parse(reg, []byte(d))
			if err != nil {
				t.Fatalf("%v\n%s", err, d)
			}
			if !reconcile.CheckSync(src, back) {
				t.Errorf("round trip differs:\n%s", d)
			}
		})
	}
}

func TestTextDiff(t *testing.T) {
	a := parseDoc(t, "system:\n  hostname: h1\n  server:\n    port: 22\n")
	b := parseDoc(t, "system:\n  hostname: h2\n  server:\n    port: 22\n")
	buf := bytes.NewBuffer(nil)
	changed, err := encode.TextDiff(a, b, buf)
	if err != nil {
		t.Fatal(err)
	}
	want := " system:\n-  hostname: h1\n+  hostname: h2\n   server:\n     port: 22\n"
	if !changed {
		t.Errorf("no change reported")
	}
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
	buf.Reset()
	if changed, err := encode.TextDiff(a, a.Clone(), buf); err != nil || changed {
		t.Errorf("diff of a clone: changed=%v err=%v\n%s", changed, err, buf.String())
	}
}

func TestMergePatch(t *testing.T) {
	a := parseDoc(t, "system:\n  hostname: h1\n  server:\n    port: 22\n")
	b := parseDoc(t, "system:\n  hostname: h2\n")
	patch, err := encode.MergePatch(a, b)
	if err != nil {
		t.Fatal(err)
	}
	var got any
	if err := json.Unmarshal(patch, &got); err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"system": map[string]any{"hostname": "h2", "server": nil}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patch (-want +got):\n%s", diff)
	}

	applied, err := encode.ApplyMergePatch(a, patch)
	if err != nil {
		t.Fatal(err)
	}
	back, err := load.Parse(testRegistry(t), applied)
	if err != nil {
		t.Fatal(err)
	}
	if !reconcile.CheckSync(back, b) {
		t.Errorf("applied patch:\n%s", applied)
	}
}

func TestColors(t *testing.T) {
	colors := &encode.Colors{Default: func(s string, _ ...any) string { return "<" + s + ">" }}
	got := encode.MustString(parseDoc(t, "system:\n  hostname: h1\n"), encode.EncodeColors(colors))
	if want := "<system><:>\n  <hostname><:> <h1>"; got != want {
		t.Errorf("colored = %q, want %q", got, want)
	}
	got = encode.MustString(parseDoc(t, "system:\n  hostname: h1\n"), encode.EncodeColors(colors), encode.EncodeColors(nil))
	if got != "system:\n  hostname: h1" {
		t.Errorf("colors not cleared: %q", got)
	}
	if encode.NewColors().Get(tree.StringValue, encode.ValueColor) == nil {
		t.Errorf("no string value color")
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := encode.FormatFromOpts(encode.Indent(4), encode.EncodeFormat(format.PathsFormat)); f != format.PathsFormat {
		t.Errorf("format = %s", f)
	}
	got := encode.MustString(parseDoc(t, "system:\n  server:\n    port: 1\n"), encode.Indent(4))
	if want := "system:\n    server:\n        port: 1"; got != want {
		t.Errorf("indent 4 = %q", got)
	}
}
