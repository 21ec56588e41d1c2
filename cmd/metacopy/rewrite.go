package main

import (
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cobra"

	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutator"
	"github.com/il2js/metamodel/internal/pretty"
)

func (a *app) rewriteCommand() *cobra.Command {
	var renames []string
	cmd := &cobra.Command{
		Use:   "rewrite <fixture>",
		Short: "Rename type references in place and print the result",
		Long: `Walks every unit of the fixture with the mutating visitor. References
to the types named in rewrite.renames (or --rename From=To) are replaced;
references built on top of them are rebuilt, everything else is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := maps.Clone(a.cfg.Rewrite.Renames)
			if table == nil {
				table = make(map[string]string)
			}
			for _, r := range renames {
				from, to, ok := strings.Cut(r, "=")
				if !ok || from == "" || to == "" {
					err := fmt.Errorf("--rename wants From=To, got %q", r)
					a.report(err)
					return err
				}
				table[from] = to
			}
			if err := a.rewrite(cmd, args[0], table); err != nil {
				a.report(err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&renames, "rename", nil, "rename a type, as From=To (repeatable)")
	return cmd
}

func (a *app) rewrite(cmd *cobra.Command, file string, table map[string]string) error {
	h := host.New(host.DefaultCoreAssembly)
	fx, err := fixture.Load(file, h)
	if err != nil {
		return err
	}
	r := newRenamer(h, table)
	opts := append(a.cfg.EngineOptions(a.logger.With("fixture", file)),
		mutator.WithHooks(mutator.Hooks{RewriteTypeReference: r.rewrite}))
	v := mutator.NewMutatingVisitor(h, a.cfg.Engine.VisitImmutable, opts...)
	for _, unit := range fx.Units {
		if err := visitUnit(cmd, v, unit); err != nil {
			return fmt.Errorf("rewrite %s: %w", unit.Name(), err)
		}
		fmt.Fprintln(a.stdout, pretty.Unit(unit))
	}
	a.logger.Info("rewrite done", "fixture", file, "replaced", r.count)
	return nil
}

func visitUnit(cmd *cobra.Command, v *mutator.MutatingVisitor, unit metadata.Module) error {
	if a, ok := unit.(metadata.Assembly); ok {
		_, err := v.VisitAssembly(cmd.Context(), a)
		return err
	}
	_, err := v.VisitModule(cmd.Context(), unit)
	return err
}
