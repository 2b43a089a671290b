package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
)

func confsyncMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.J && cfg.Y {
		return fmt.Errorf("%w: -j[son] and -y[aml] are exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if err := cfg.openOut(cc); err != nil {
		return err
	}
	defer cfg.closeOut()
	defer cfg.start()()

	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// start sets up logging and the gops agent, returning a function
// stopping the agent.
func (cfg *MainConfig) start() func() {
	cfg.Log = newLogger(os.Stderr, cfg.Verbose)
	if !cfg.Gops {
		return func() {}
	}
	if err := agent.Listen(agent.Options{}); err != nil {
		cfg.Log.Warn("gops agent failed", "error", err)
		return func() {}
	}
	return agent.Close
}

func (cfg *MainConfig) outOpt(_ *cli.Context, a string) (any, error) {
	cfg.Out = a
	return nil, nil
}

// openOut points cc.Out at the -o file, if one other than "-" was given.
func (cfg *MainConfig) openOut(cc *cli.Context) error {
	if cfg.Out == "" || cfg.Out == "-" {
		return nil
	}
	f, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("could not open output: %w", err)
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut == nil {
		return
	}
	if err := cfg.CloseOut(); err != nil {
		cfg.Log.Error("closing output", "file", cfg.Out, "error", err)
	}
	cfg.CloseOut = nil
}
