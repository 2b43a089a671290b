package encode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/confsync/format"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent int
	noOps  bool
	format format.Format
	Color  func(tree.ValueKind, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes n to w.  A zero Node encodes as an empty document.
func Encode(n tree.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	buf := bytes.NewBuffer(nil)
	var err error
	switch es.format {
	case format.YAMLFormat:
		err = es.yamlDoc(buf, n)
	case format.JSONFormat:
		err = es.jsonDoc(buf, n)
	case format.PathsFormat:
		err = es.pathsDoc(buf, n)
	default:
		err = fmt.Errorf("%w: unsupported format %s", ErrEncoding, es.format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// EncodeSet encodes each node of s as if it were a child of a synthetic
// root.
func EncodeSet(s tree.NodeSet, w io.Writer, opts ...EncodeOption) error {
	if len(s) == 0 {
		return Encode(tree.Node{}, w, opts...)
	}
	return Encode(tree.Wrap(s), w, opts...)
}

type group struct {
	name  string
	nodes tree.NodeSet
	seq   bool
}

// groups gathers the children of n by name in order of first appearance.
func groups(n tree.Node) []*group {
	var (
		res   []*group
		index = map[string]*group{}
	)
	typ := n.Type()
	for _, c := range n.Children() {
		key := c.Namespace() + "\x00" + c.Name()
		g := index[key]
		if g == nil {
			g = &group{name: c.Name()}
			if typ != nil {
				if f, ok := typ.Field(c.Name()); ok {
					g.seq = f.Kind == schema.ListField || f.Kind == schema.LeafListField
				}
			}
			index[key] = g
			res = append(res, g)
		}
		g.nodes = append(g.nodes, c)
	}
	for _, g := range res {
		if len(g.nodes) > 1 {
			g.seq = true
		}
	}
	return res
}

func (es *EncState) color(k tree.ValueKind, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(k, a, s)
}

func (es *EncState) tag(n tree.Node) string {
	if es.noOps || n.Op() == tree.OpNone {
		return ""
	}
	return es.color(n.Value().Kind(), TagColor, "!"+n.Op().String())
}

func (es *EncState) pad(buf *bytes.Buffer, depth int) {
	buf.WriteString(strings.Repeat(" ", es.indent*depth))
}

func (es *EncState) yamlDoc(buf *bytes.Buffer, n tree.Node) error {
	if n.IsZero() {
		buf.WriteString("null\n")
		return nil
	}
	if tree.IsSynthetic(n) {
		if n.Len() == 0 {
			buf.WriteString("{}\n")
			return nil
		}
		es.yamlMembers(buf, n, 0, false)
		return nil
	}
	es.yamlGroup(buf, &group{name: n.Name(), nodes: tree.NodeSet{n}}, 0, false)
	return nil
}

// yamlMembers writes the children of n as mapping members at depth.  When
// inline is set the first member continues the current line.
func (es *EncState) yamlMembers(buf *bytes.Buffer, n tree.Node, depth int, inline bool) {
	if n.IsElement() && !n.Value().IsNull() {
		if !inline {
			es.pad(buf, depth)
		}
		inline = false
		buf.WriteString(es.color(tree.StringValue, FieldColor, "'@value'"))
		buf.WriteString(es.color(tree.StringValue, SepColor, ":"))
		buf.WriteByte(' ')
		buf.WriteString(es.yamlScalar(n.Value()))
		buf.WriteByte('\n')
	}
	for _, g := range groups(n) {
		es.yamlGroup(buf, g, depth, inline)
		inline = false
	}
}

func (es *EncState) yamlGroup(buf *bytes.Buffer, g *group, depth int, inline bool) {
	if !inline {
		es.pad(buf, depth)
	}
	buf.WriteString(es.color(tree.StringValue, FieldColor, yamlKey(g.name)))
	buf.WriteString(es.color(tree.StringValue, SepColor, ":"))
	if !g.seq {
		es.yamlValue(buf, g.nodes[0], depth)
		return
	}
	buf.WriteByte('\n')
	for _, c := range g.nodes {
		es.pad(buf, depth)
		buf.WriteString(es.color(tree.StringValue, SepColor, "-"))
		buf.WriteByte(' ')
		es.yamlItem(buf, c, depth+1)
	}
}

// yamlValue writes the value of a mapping member after its key.
func (es *EncState) yamlValue(buf *bytes.Buffer, n tree.Node, depth int) {
	if tag := es.tag(n); tag != "" {
		buf.WriteByte(' ')
		buf.WriteString(tag)
	}
	switch {
	case n.IsLeaf() || (n.IsElement() && n.Len() == 0):
		buf.WriteByte(' ')
		buf.WriteString(es.yamlScalar(n.Value()))
		buf.WriteByte('\n')
	case n.Len() == 0:
		buf.WriteString(" {}\n")
	default:
		buf.WriteByte('\n')
		es.yamlMembers(buf, n, depth+1, false)
	}
}

// yamlItem writes a sequence item after its "- ".
func (es *EncState) yamlItem(buf *bytes.Buffer, n tree.Node, depth int) {
	tag := es.tag(n)
	if n.IsLeaf() || (n.IsElement() && n.Len() == 0) {
		if tag != "" {
			buf.WriteString(tag)
			buf.WriteByte(' ')
		}
		buf.WriteString(es.yamlScalar(n.Value()))
		buf.WriteByte('\n')
		return
	}
	if n.Len() == 0 {
		if tag != "" {
			buf.WriteString(tag)
			buf.WriteByte(' ')
		}
		buf.WriteString("{}\n")
		return
	}
	if tag != "" {
		buf.WriteString(tag)
		buf.WriteByte('\n')
		es.yamlMembers(buf, n, depth, false)
		return
	}
	es.yamlMembers(buf, n, depth, true)
}

func (es *EncState) yamlScalar(v tree.Value) string {
	var s string
	switch v.Kind() {
	case tree.NullValue:
		s = "null"
	case tree.EmptyValue:
		s = "[null]"
	case tree.StringValue:
		s = yamlKey(v.String())
	case tree.FloatValue:
		s = floatString(v)
	default:
		s = v.String()
	}
	return es.color(v.Kind(), ValueColor, s)
}

func floatString(v tree.Value) string {
	s := v.String()
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func yamlKey(s string) string {
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

// needsQuote reports whether a plain YAML scalar s would not read back as
// the same string.
func needsQuote(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return true
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off", "y", "n":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseInt(s, 0, 64); err == nil {
		return true
	}
	if strings.ContainsAny(s[:1], "-?:,[]{}#&*!|>'\"%@`") {
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return true
	}
	for _, r := range s {
		if r < ' ' || r == 0x7f {
			return true
		}
	}
	return false
}
