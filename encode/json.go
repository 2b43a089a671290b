package encode

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/signadot/confsync/tree"
)

func (es *EncState) jsonDoc(buf *bytes.Buffer, n tree.Node) error {
	if n.IsZero() {
		buf.WriteString("null\n")
		return nil
	}
	if tree.IsSynthetic(n) {
		es.jsonObject(buf, n, 0, false)
	} else {
		obj := &jsonObj{es: es, buf: buf, depth: 0}
		obj.open()
		obj.group(&group{name: n.Name(), nodes: tree.NodeSet{n}})
		obj.close()
	}
	buf.WriteByte('\n')
	return nil
}

type jsonObj struct {
	es    *EncState
	buf   *bytes.Buffer
	depth int
	n     int
}

func (o *jsonObj) open() { o.buf.WriteByte('{') }

func (o *jsonObj) close() {
	if o.n != 0 {
		o.buf.WriteByte('\n')
		o.es.pad(o.buf, o.depth)
	}
	o.buf.WriteByte('}')
}

func (o *jsonObj) key(k string) {
	if o.n != 0 {
		o.buf.WriteByte(',')
	}
	o.n++
	o.buf.WriteByte('\n')
	o.es.pad(o.buf, o.depth+1)
	o.buf.WriteString(o.es.color(tree.StringValue, FieldColor, jsonString(k)))
	o.buf.WriteString(o.es.color(tree.StringValue, SepColor, ":"))
	o.buf.WriteByte(' ')
}

func (o *jsonObj) group(g *group) {
	es := o.es
	o.key(g.name)
	if !g.seq {
		es.jsonValue(o.buf, g.nodes[0], o.depth+1)
	} else {
		es.jsonArray(o.buf, g.nodes, o.depth+1, func(c tree.Node) { es.jsonValue(o.buf, c, o.depth+2) })
	}
	if es.noOps {
		return
	}
	tagged := false
	for _, c := range g.nodes {
		if !c.IsContainer() && c.Op() != tree.OpNone {
			tagged = true
		}
	}
	if !tagged {
		return
	}
	o.key("@" + g.name)
	if !g.seq {
		es.jsonOpMeta(o.buf, g.nodes[0])
		return
	}
	es.jsonArray(o.buf, g.nodes, o.depth+1, func(c tree.Node) { es.jsonOpMeta(o.buf, c) })
}

func (es *EncState) jsonArray(buf *bytes.Buffer, ns tree.NodeSet, depth int, item func(tree.Node)) {
	buf.WriteByte('[')
	for i, c := range ns {
		if i != 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		es.pad(buf, depth+1)
		item(c)
	}
	buf.WriteByte('\n')
	es.pad(buf, depth)
	buf.WriteByte(']')
}

func (es *EncState) jsonOpMeta(buf *bytes.Buffer, n tree.Node) {
	if n.IsContainer() || n.Op() == tree.OpNone {
		buf.WriteString("null")
		return
	}
	buf.WriteString(`{"operation": `)
	buf.WriteString(es.color(tree.StringValue, TagColor, jsonString(n.Op().String())))
	buf.WriteByte('}')
}

func (es *EncState) jsonValue(buf *bytes.Buffer, n tree.Node, depth int) {
	if n.IsLeaf() || (n.IsElement() && n.Len() == 0) {
		buf.WriteString(es.jsonScalar(n.Value()))
		return
	}
	es.jsonObject(buf, n, depth, true)
}

// jsonObject writes the children of n as a JSON object.  When meta is set
// the operation of n and the value of an element are written as "@"
// members.
func (es *EncState) jsonObject(buf *bytes.Buffer, n tree.Node, depth int, meta bool) {
	obj := &jsonObj{es: es, buf: buf, depth: depth}
	obj.open()
	if meta && !es.noOps && n.Op() != tree.OpNone {
		obj.key("@operation")
		buf.WriteString(es.color(tree.StringValue, TagColor, jsonString(n.Op().String())))
	}
	if meta && n.IsElement() && !n.Value().IsNull() {
		obj.key("@value")
		buf.WriteString(es.jsonScalar(n.Value()))
	}
	for _, g := range groups(n) {
		obj.group(g)
	}
	obj.close()
}

func (es *EncState) jsonScalar(v tree.Value) string {
	var s string
	switch v.Kind() {
	case tree.NullValue:
		s = "null"
	case tree.EmptyValue:
		s = "[null]"
	case tree.StringValue:
		s = jsonString(v.String())
	case tree.FloatValue:
		f := v.Any().(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s = jsonString(v.String())
		} else {
			s = v.String()
		}
	default:
		s = v.String()
	}
	return es.color(v.Kind(), ValueColor, s)
}

func jsonString(s string) string {
	d, _ := json.Marshal(s)
	return string(d)
}
