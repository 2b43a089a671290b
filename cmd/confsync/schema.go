package main

import (
	"fmt"

	"github.com/signadot/confsync/schema"

	"github.com/scott-cotton/cli"
)

func schemaCheck(cfg *SchemaCheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: schema check requires at least 1 argument (schema file)", cli.ErrUsage)
	}
	reg, err := schema.NewRegistry()
	if err != nil {
		return err
	}
	for _, file := range args {
		m, err := schema.ParseFile(file)
		if err != nil {
			return fmt.Errorf("failed to load schema %s: %w", file, err)
		}
		if err := reg.Add(m); err != nil {
			return fmt.Errorf("failed to register schema %s: %w", file, err)
		}
		fmt.Fprintf(cc.Out, "%s: ok (%s, %d roots)\n", file, m.Namespace, len(m.Roots))
	}
	return nil
}
