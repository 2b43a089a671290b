package tree

import "fmt"

// Op is an edit operation annotation.  OpNone means the node carries no
// explicit operation and is merged.
type Op uint8

const (
	OpNone Op = iota
	OpCreate
	OpDelete
	OpReplace
)

func (o Op) String() string {
	switch o {
	case OpNone:
		return ""
	case OpCreate:
		return "create"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("<Op %d>", int(o))
	}
}

func ParseOp(v string) (Op, error) {
	switch v {
	case "", "merge":
		return OpNone, nil
	case "create":
		return OpCreate, nil
	case "delete":
		return OpDelete, nil
	case "replace":
		return OpReplace, nil
	}
	return OpNone, fmt.Errorf("unknown operation %q", v)
}

func Ops() []Op {
	return []Op{OpNone, OpCreate, OpDelete, OpReplace}
}
