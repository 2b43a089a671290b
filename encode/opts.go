package encode

import "github.com/signadot/confsync/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EncodeOps controls whether edit operations are written.  It defaults to
// true.
func EncodeOps(v bool) EncodeOption {
	return func(es *EncState) { es.noOps = !v }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}
