package main

import (
	"fmt"

	"github.com/signadot/confsync"
	"github.com/signadot/confsync/tree"

	"github.com/scott-cotton/cli"
)

func selectNodes(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: select requires -e", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	for _, file := range args {
		doc, err := cfg.readDoc(cc, reg, file)
		if err != nil {
			return err
		}
		for _, r := range tree.Unwrap(doc) {
			sel, err := confsync.Select(r, cfg.Expr)
			if err != nil {
				return fmt.Errorf("error selecting in %s: %w", file, err)
			}
			for _, n := range sel {
				fmt.Fprintln(cc.Out, n.DocPath())
			}
		}
	}
	return nil
}
