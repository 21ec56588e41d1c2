// Command metacopy loads metadata fixtures and runs the copy engines over
// them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/il2js/metamodel/internal/config"
	"github.com/il2js/metamodel/internal/diag"
	"github.com/il2js/metamodel/internal/fixture"
)

// app is the state shared by all commands once flags are parsed.
type app struct {
	configPath string
	cfg        config.Config
	logger     *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

func main() {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := a.rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "metacopy",
		Short:         "Copy and rewrite metadata graphs described by YAML fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")

	root.AddCommand(a.copyCommand(), a.rewriteCommand(), a.dumpCommand())
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.report(err)
		return err
	}
	a.cfg = cfg
	a.logger = cfg.NewLogger(a.stderr)
	return nil
}

// report prints err, rendering diagnostics with their source excerpt.
func (a *app) report(err error) {
	f := diag.NewFormatter(a.stderr)
	var fe *fixture.Error
	if errors.As(err, &fe) {
		for _, d := range fe.Diagnostics {
			f.Format(d)
		}
		return
	}
	var d diag.Diagnostic
	if errors.As(err, &d) {
		f.Format(d)
		return
	}
	fmt.Fprintf(a.stderr, "error: %v\n", err)
}
