package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/pretty"
)

func (a *app) dumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <fixture>",
		Short: "Print the units of a fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fx, err := fixture.Load(args[0], host.New(host.DefaultCoreAssembly))
			if err != nil {
				a.report(err)
				return err
			}
			for _, unit := range fx.Units {
				fmt.Fprintln(a.stdout, pretty.Unit(unit))
			}
			return nil
		},
	}
}
