package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/il2js/metamodel/internal/fixture"
	"github.com/il2js/metamodel/internal/host"
	"github.com/il2js/metamodel/internal/metadata"
	"github.com/il2js/metamodel/internal/mutator"
	"github.com/il2js/metamodel/internal/pretty"
)

// copyResult is the outcome of deep copying the units of one fixture.
type copyResult struct {
	file  string
	units []unitCopy
	err   error
}

type unitCopy struct {
	name     string
	types    int
	original uint64
	copied   uint64
	listing  string
}

func (a *app) copyCommand() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "copy <fixture or directory>...",
		Short: "Deep copy every unit of the given fixtures and compare the copies",
		Long: `Loads each fixture, deep copies every unit with its own copier and
checks that the copy prints the same listing as the original. Fixtures are
processed concurrently, bounded by engine.workers.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := findFixtures(args)
			if err != nil {
				a.report(err)
				return err
			}
			results := a.copyAll(cmd.Context(), files)
			return a.printCopyResults(results, show)
		},
	}
	cmd.Flags().BoolVarP(&show, "print", "p", false, "print the listing of every copy")
	return cmd
}

// copyAll copies the fixtures concurrently. Every fixture gets its own
// host and copier; results keep the order of files.
func (a *app) copyAll(ctx context.Context, files []string) []copyResult {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]copyResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Engine.Workers)
	for i, file := range files {
		g.Go(func() error {
			results[i] = a.copyFixture(ctx, file)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (a *app) copyFixture(ctx context.Context, file string) copyResult {
	res := copyResult{file: file}
	h := host.New(host.DefaultCoreAssembly)
	fx, err := fixture.Load(file, h)
	if err != nil {
		res.err = err
		return res
	}
	copier := mutator.NewDeepCopier(h, a.cfg.EngineOptions(a.logger.With("fixture", file))...)
	for _, unit := range fx.Units {
		cp, err := copyUnit(ctx, copier, unit)
		if err != nil {
			res.err = fmt.Errorf("copy %s: %w", unit.Name(), err)
			return res
		}
		listing := pretty.Unit(cp)
		res.units = append(res.units, unitCopy{
			name:     unit.Name(),
			types:    len(cp.AllTypes()),
			original: pretty.Fingerprint(unit),
			copied:   pretty.Fingerprint(cp),
			listing:  listing,
		})
	}
	return res
}

func copyUnit(ctx context.Context, c *mutator.DeepCopier, unit metadata.Module) (metadata.Module, error) {
	if a, ok := unit.(metadata.Assembly); ok {
		return c.CopyAssembly(ctx, a)
	}
	return c.CopyModule(ctx, unit)
}

func (a *app) printCopyResults(results []copyResult, show bool) error {
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			fmt.Fprintf(a.stdout, "  ✗ %s\n", res.file)
			a.report(res.err)
			continue
		}
		for _, u := range res.units {
			mark := "✓"
			if u.original != u.copied {
				mark = "✗"
				failed++
			}
			fmt.Fprintf(a.stdout, "  %s %s: %s (%d types) %016x\n", mark, res.file, u.name, u.types, u.copied)
			if show {
				fmt.Fprintln(a.stdout, u.listing)
			}
		}
	}
	fmt.Fprintf(a.stdout, "\nCopy results: %d fixtures, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d copies failed", failed)
	}
	return nil
}
