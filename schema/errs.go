package schema

import "errors"

var (
	ErrBadSchema     = errors.New("bad schema")
	ErrUnknownModule = errors.New("unknown module")
	ErrUnknownRoot   = errors.New("unknown root")
)
