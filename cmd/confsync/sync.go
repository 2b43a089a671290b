package main

import (
	"fmt"
	"io"

	"github.com/signadot/confsync"
	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/reconcile"
	"github.com/signadot/confsync/tree"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	if !reconcile.CheckSync(a, b, cfg.reconcileOpts()...) {
		fmt.Fprintln(cc.Out, "out of sync")
		return cli.ExitCodeErr(1)
	}
	fmt.Fprintln(cc.Out, "in sync")
	return nil
}

func inspect(cfg *InspectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Inspect.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	in := reconcile.Inspect(a, b, cfg.reconcileOpts()...)
	writePaths(cc.Out, "uniqueA", in.UniqueA)
	writePaths(cc.Out, "uniqueB", in.UniqueB)
	writePaths(cc.Out, "changedA", in.ChangedA)
	writePaths(cc.Out, "changedB", in.ChangedB)
	return nil
}

func writePaths(w io.Writer, title string, s tree.NodeSet) {
	fmt.Fprintf(w, "%s:\n", title)
	for _, n := range s {
		fmt.Fprintf(w, "  %s\n", n.DocPath())
	}
}

func sync(cfg *SyncConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sync.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	if cfg.Only != "" {
		if a, err = only(a, cfg.Only); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		if b, err = only(b, cfg.Only); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	edit := reconcile.Sync(a, b, cfg.reconcileOpts()...)
	return encode.Encode(edit, cc.Out, cfg.encOpts(cc.Out)...)
}

// only filters each document root of doc with expression.
func only(doc tree.Node, expression string) (tree.Node, error) {
	var res tree.NodeSet
	for _, r := range tree.Unwrap(doc) {
		f, err := confsync.Filter(r, expression)
		if err != nil {
			return tree.Node{}, err
		}
		if !f.IsZero() {
			res = append(res, f)
		}
	}
	return tree.Wrap(res), nil
}

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	plan := reconcile.PlanMerge(a, b, cfg.reconcileOpts()...)
	if err := encode.Encode(plan.Edit, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if !cfg.Stats {
		return nil
	}
	fmt.Fprintf(cc.Out, "# diffs: %d\n", plan.Diffs)
	for _, p := range plan.Pruned {
		fmt.Fprintf(cc.Out, "# pruned: %s\n", p)
	}
	return nil
}

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	a, b, err := cfg.readPair(cc, args)
	if err != nil {
		return err
	}
	ropts := cfg.reconcileOpts()
	var edit tree.Node
	if cfg.Merge {
		edit = reconcile.SyncMerge(a, b, ropts...)
	} else {
		edit = reconcile.Sync(a, b, ropts...)
	}
	res, err := confsync.Patch(a, edit)
	if err != nil {
		return fmt.Errorf("error applying edit: %w", err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if !reconcile.CheckSync(res, b, ropts...) {
		cfg.Log.Error("patched document is not in sync with desired", "desired", args[1])
		return cli.ExitCodeErr(1)
	}
	return nil
}
