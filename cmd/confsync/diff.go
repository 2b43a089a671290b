package main

import (
	"github.com/signadot/confsync/encode"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	if cfg.MergePatch {
		p, err := encode.MergePatch(a, b)
		if err != nil {
			return err
		}
		p = append(p, '\n')
		_, err = cc.Out.Write(p)
		return err
	}
	_, err = encode.TextDiff(a, b, cc.Out, cfg.encOpts(cc.Out)...)
	return err
}
