package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/format"
	"github.com/signadot/confsync/load"
	"github.com/signadot/confsync/reconcile"
	"github.com/signadot/confsync/schema"
	"github.com/signadot/confsync/tree"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	J     bool `cli:"name=j aliases=json desc='output json'"`
	Y     bool `cli:"name=y aliases=yaml desc='output yaml'"`

	Unknown bool `cli:"name=unknown desc='load names missing from the schemas as elements'"`
	Strict  bool `cli:"name=strict desc='compare sibling groups as multisets'"`
	Verbose bool `cli:"name=v desc='log plan summaries'"`
	Gops    bool `cli:"name=gops desc='start a gops agent'"`

	Schemas   []string
	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Log *slog.Logger

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) schemaOpt(_ *cli.Context, a string) (any, error) {
	cfg.Schemas = append(cfg.Schemas, a)
	return a, nil
}

func (cfg *MainConfig) registry() (*schema.Registry, error) {
	if len(cfg.Schemas) == 0 {
		return nil, fmt.Errorf("%w: at least one -schema is required", cli.ErrUsage)
	}
	return schema.Load(cfg.Schemas...)
}

func (cfg *MainConfig) loadOpts() []load.Option {
	return []load.Option{load.AllowUnknown(cfg.Unknown)}
}

func (cfg *MainConfig) reconcileOpts() []reconcile.Option {
	res := []reconcile.Option{reconcile.StrictGroups(cfg.Strict)}
	if cfg.Log != nil {
		res = append(res, reconcile.WithLogger(cfg.Log))
	}
	return res
}

// readDoc loads every root of file, "-" meaning the command input, under a
// synthetic root.
func (cfg *MainConfig) readDoc(cc *cli.Context, reg *schema.Registry, file string) (tree.Node, error) {
	var r io.Reader
	if file == "-" {
		r = cc.In
	} else {
		f, err := os.Open(file)
		if err != nil {
			return tree.Node{}, fmt.Errorf("error opening %s: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return tree.Node{}, fmt.Errorf("error reading %s: %w", file, err)
	}
	s, err := load.ParseSet(reg, d, cfg.loadOpts()...)
	if err != nil {
		return tree.Node{}, fmt.Errorf("error loading %s: %w", file, err)
	}
	return tree.Wrap(s), nil
}

// readPair loads the current and desired documents named by args.
func (cfg *MainConfig) readPair(cc *cli.Context, args []string) (a, b tree.Node, err error) {
	if len(args) != 2 {
		return a, b, fmt.Errorf("%w: expected 2 files, got %d", cli.ErrUsage, len(args))
	}
	if args[0] == "-" && args[1] == "-" {
		return a, b, fmt.Errorf("%w: at most one file may be stdin", cli.ErrUsage)
	}
	reg, err := cfg.registry()
	if err != nil {
		return a, b, err
	}
	if a, err = cfg.readDoc(cc, reg, args[0]); err != nil {
		return a, b, err
	}
	b, err = cfg.readDoc(cc, reg, args[1])
	return a, b, err
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	var fmt format.Format
	switch {
	case cfg.Y:
		fmt = format.YAMLFormat
	case cfg.J:
		fmt = format.JSONFormat
	}
	if cfg.OutFormat != nil {
		fmt = *cfg.OutFormat
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmt),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}

type InspectConfig struct {
	*MainConfig

	Inspect *cli.Command
}

type SyncConfig struct {
	*MainConfig
	Only string `cli:"name=only desc='restrict both sides to nodes matching an expression'"`

	Sync *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Stats bool `cli:"name=stats desc='print the diff count and pruned paths'"`

	Merge *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=merge desc='apply a merge style edit'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig
	MergePatch bool `cli:"name=m aliases=mergepatch desc='print an RFC 7386 merge patch'"`

	Diff *cli.Command
}

type SelectConfig struct {
	*MainConfig
	Expr string `cli:"name=e desc='selection expression'"`

	Select *cli.Command
}

type SchemaConfig struct {
	*MainConfig
	Schema *cli.Command
}

type SchemaCheckConfig struct {
	*MainConfig
	Check *cli.Command
}
