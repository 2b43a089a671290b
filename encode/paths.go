package encode

import (
	"bytes"

	"github.com/signadot/confsync/tree"
)

// pathsDoc writes one line per leaf, per empty container and per node
// carrying an operation:
//
//	/system/hostname = "h"
//	!delete /system/interface[name=eth1]
func (es *EncState) pathsDoc(buf *bytes.Buffer, n tree.Node) error {
	if n.IsZero() {
		return nil
	}
	if tree.IsSynthetic(n) {
		for _, c := range n.Children() {
			es.paths(buf, c)
		}
		return nil
	}
	es.paths(buf, n)
	return nil
}

func (es *EncState) paths(buf *bytes.Buffer, n tree.Node) {
	tag := es.tag(n)
	if tag != "" || n.Len() == 0 {
		if tag != "" {
			buf.WriteString(tag)
			buf.WriteByte(' ')
		}
		buf.WriteString(es.color(tree.StringValue, FieldColor, n.DocPath()))
		if n.IsLeaf() || !n.Value().IsNull() {
			buf.WriteString(es.color(tree.StringValue, SepColor, " = "))
			buf.WriteString(es.jsonScalar(n.Value()))
		}
		buf.WriteByte('\n')
	}
	for _, c := range n.Children() {
		es.paths(buf, c)
	}
}
