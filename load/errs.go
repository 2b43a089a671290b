package load

import "errors"

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrBadDocument    = errors.New("bad document")
)
