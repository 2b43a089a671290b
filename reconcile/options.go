package reconcile

import (
	"log/slog"

	"github.com/signadot/confsync/debug"
	"github.com/signadot/confsync/tree"
)

type Option func(*config)

type config struct {
	strict bool
	log    *slog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StrictGroups makes comparison treat same named child groups as multisets
// instead of using scan membership, see tree.CompareStrict.
func StrictGroups(v bool) Option {
	return func(c *config) { c.strict = v }
}

// WithLogger sets the logger receiving plan summaries.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

func (c *config) compare(a, b tree.Node) tree.Result {
	var res tree.Result
	if c.strict {
		res = tree.CompareStrict(a, b)
	} else {
		res = tree.Compare(a, b)
	}
	if debug.Compare() {
		debug.Logf("compare %s %s: %s\n", a.Path(), b.Path(), res)
	}
	return res
}
