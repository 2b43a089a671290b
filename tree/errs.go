package tree

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownChild = errors.New("unknown child")
	ErrKind         = errors.New("wrong node kind")
	ErrBadPath      = errors.New("bad path")
)
