package encode

import (
	"strings"

	"github.com/signadot/confsync/tree"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind tree.ValueKind
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
	InsertColor
	DeleteColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range valueKinds {
		able := Colorable{Kind: k, Attr: TagColor}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = FieldColor
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(196, 128, 128).SprintfFunc()
		able.Attr = InsertColor
		colors.Map[able] = color.GreenString
		able.Attr = DeleteColor
		colors.Map[able] = color.RedString
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = tree.NullValue
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	able.Kind = tree.EmptyValue
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = tree.BoolValue
	colors.Map[able] = color.CyanString

	able.Kind = tree.IntValue
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = tree.FloatValue
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = tree.StringValue
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

var valueKinds = []tree.ValueKind{
	tree.NullValue, tree.EmptyValue, tree.BoolValue,
	tree.IntValue, tree.FloatValue, tree.StringValue,
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k tree.ValueKind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k tree.ValueKind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
