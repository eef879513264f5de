package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/odvcencio/revstore/internal/config"
	"github.com/odvcencio/revstore/internal/logging"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	dir        string

	cfg     *config.Config
	log     *zap.Logger
	closers []func() error
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		color.New(color.FgRed).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes one command line. Resources opened by the command are
// released even when it fails.
func run(args []string, stdout, stderr io.Writer) error {
	a := &app{log: zap.NewNop()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	return multierr.Append(err, a.close())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "revstore",
		Short:         "Read and write git loose objects and resolve revisions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides the config file")
	root.PersistentFlags().StringVarP(&a.dir, "dir", "C", ".", "run as if started in this directory")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCatFileCmd(a))
	root.AddCommand(newRevParseCmd(a))
	root.AddCommand(newHashObjectCmd(a))
	root.AddCommand(newUpdateRefCmd(a))
	root.AddCommand(newSymbolicRefCmd(a))
	root.AddCommand(newBranchCmd(a))
	root.AddCommand(newTagCmd(a))

	return root
}

func (a *app) setup() error {
	path := config.Path(a.configPath)
	if path == config.DefaultPath {
		path = filepath.Join(a.dir, path)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	log, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func (a *app) close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	// Sync fails on non-file stderr; nothing useful to report.
	_ = a.log.Sync()
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "revstore 0.1.0-dev")
		},
	}
}
