package tree

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type ValueKind uint8

const (
	NullValue ValueKind = iota
	EmptyValue
	BoolValue
	IntValue
	FloatValue
	StringValue
)

func (k ValueKind) String() string {
	switch k {
	case NullValue:
		return "null"
	case EmptyValue:
		return "empty"
	case BoolValue:
		return "bool"
	case IntValue:
		return "int"
	case FloatValue:
		return "float"
	case StringValue:
		return "string"
	}
	return fmt.Sprintf("<ValueKind %d>", int(k))
}

// Value is a leaf payload.  The zero Value is null, which is what
// containers carry.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

func Null() Value { return Value{} }
func Empty() Value { return Value{kind: EmptyValue} }
func FromString(s string) Value { return Value{kind: StringValue, s: s} }
func FromInt(i int64) Value { return Value{kind: IntValue, i: i} }
func FromFloat(f float64) Value { return Value{kind: FloatValue, f: f} }
func FromBool(b bool) Value { return Value{kind: BoolValue, b: b} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool { return v.kind == NullValue }
func (v Value) Equal(o Value) bool { return CompareValues(v, o) == 0 }

// Any returns the value as a Go value: nil, struct{}{}, bool, int64,
// float64 or string.
func (v Value) Any() any {
	switch v.kind {
	case EmptyValue:
		return struct{}{}
	case BoolValue:
		return v.b
	case IntValue:
		return v.i
	case FloatValue:
		return v.f
	case StringValue:
		return v.s
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case NullValue:
		return "null"
	case EmptyValue:
		return ""
	case BoolValue:
		return strconv.FormatBool(v.b)
	case IntValue:
		return strconv.FormatInt(v.i, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.s
}

// CompareValues orders values by kind, then by value.
// Order: Null < Empty < Bool < Int < Float < String
func CompareValues(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case BoolValue:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case IntValue:
		return cmp.Compare(a.i, b.i)
	case FloatValue:
		return cmp.Compare(a.f, b.f)
	case StringValue:
		return strings.Compare(a.s, b.s)
	}
	return 0
}
