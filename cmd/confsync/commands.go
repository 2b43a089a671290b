package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "schema",
			Aliases:     []string{"s"},
			Description: "schema file, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.schemaOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: yaml/y, json/j, paths/p",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "confsync").
		WithSynopsis("confsync [opts] command [opts]").
		WithDescription("confsync compares configuration trees and plans edits between them.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return confsyncMain(cfg, cc, args)
		}).
		WithSubs(
			CheckCommand(cfg),
			InspectCommand(cfg),
			SyncCommand(cfg),
			MergeCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg),
			SelectCommand(cfg),
			SchemaCommand(cfg))
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check <current> <desired>").
		WithDescription("check whether two documents are in sync, exiting 1 if not").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func InspectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InspectConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Inspect, "inspect").
		WithAliases("i").
		WithSynopsis("inspect <current> <desired>").
		WithDescription("list the paths unique to and changed between two documents").
		WithRun(func(cc *cli.Context, args []string) error {
			return inspect(cfg, cc, args)
		})
}

func SyncCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SyncConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Sync, "sync").
		WithSynopsis("sync [-only expr] <current> <desired>").
		WithDescription("print the replace style edit taking current to desired").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sync(cfg, cc, args)
		})
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m").
		WithSynopsis("merge [-stats] <current> <desired>").
		WithDescription("print the merge style edit taking current to desired").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-merge] <current> <desired>").
		WithDescription("plan an edit, apply it to current and print the result, exiting 1 if it is not in sync with desired").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-m] <current> <desired>").
		WithDescription("print a line diff of two documents, or their JSON merge patch").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func SelectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SelectConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Select, "select").
		WithAliases("sel").
		WithSynopsis("select -e expr [files]").
		WithDescription(selectDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return selectNodes(cfg, cc, args)
		})
}

const selectDescription = `select prints the paths of the nodes for which an expression holds.

Expressions are written in the expr language and see these fields of
each node:

  Name, Namespace, Path  strings
  Kind                   "leaf", "container" or "element"
  Key                    true for key leaves of list entries
  Value                  the leaf value, nil for containers
  Depth                  distance from the document root
  Op                     edit operation, empty if none

For example

  confsync -schema sys.yaml select -e 'Name == "mtu" && Value > 1500' running.yaml
`

func SchemaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Schema, "schema").
		WithSynopsis("schema <subcommand>").
		WithDescription("schema commands").
		WithSubs(
			SchemaCheckCommand(cfg.MainConfig))
}

func SchemaCheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SchemaCheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithSynopsis("check <schema-file>...").
		WithDescription("validate schema files and load them together").
		WithRun(func(cc *cli.Context, args []string) error {
			return schemaCheck(cfg, cc, args)
		})
}
