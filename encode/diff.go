package encode

import (
	"bytes"
	"io"
	"strings"

	"github.com/signadot/confsync/format"
	"github.com/signadot/confsync/tree"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// TextDiff encodes a and b and writes a line diff of the results to w.
// Lines only in a are prefixed with "-", lines only in b with "+".  It
// reports whether the encodings differ.
func TextDiff(a, b tree.Node, w io.Writer, opts ...EncodeOption) (bool, error) {
	ta, err := encodeString(a, opts)
	if err != nil {
		return false, err
	}
	tb, err := encodeString(b, opts)
	if err != nil {
		return false, err
	}
	es := newState(opts)
	dmp := diffpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(ta, tb)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	buf := bytes.NewBuffer(nil)
	changed := false
	for _, d := range diffs {
		var (
			prefix string
			attr   ColorAttr
		)
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, attr, changed = "-", DeleteColor, true
		case diffpatch.DiffInsert:
			prefix, attr, changed = "+", InsertColor, true
		default:
			prefix, attr = " ", -1
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			ln = prefix + strings.TrimSuffix(ln, "\n")
			if attr >= 0 {
				ln = es.color(tree.StringValue, attr, ln)
			}
			buf.WriteString(ln)
			buf.WriteByte('\n')
		}
	}
	_, err = w.Write(buf.Bytes())
	return changed, err
}

func encodeString(n tree.Node, opts []EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSON returns the JSON rendering of n without operations or colors.
func JSON(n tree.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(n, buf, EncodeFormat(format.JSONFormat), EncodeOps(false)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePatch returns the RFC 7386 JSON merge patch taking the JSON
// rendering of a to that of b.
func MergePatch(a, b tree.Node) ([]byte, error) {
	ja, err := JSON(a)
	if err != nil {
		return nil, err
	}
	jb, err := JSON(b)
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(ja, jb)
}

// ApplyMergePatch applies an RFC 7386 merge patch to the JSON rendering of
// n and returns the resulting JSON document.
func ApplyMergePatch(n tree.Node, patch []byte) ([]byte, error) {
	jn, err := JSON(n)
	if err != nil {
		return nil, err
	}
	return jsonpatch.MergePatch(jn, patch)
}
