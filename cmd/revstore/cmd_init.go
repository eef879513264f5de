package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/internal/config"
	"github.com/odvcencio/revstore/pkg/repo"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.repoOptions()
			if err != nil {
				return err
			}

			if a.cfg.Storage.Backend == config.BackendBadger {
				if len(args) > 0 {
					return fmt.Errorf("init: the %s backend stores the repository in storage.path; no path argument is accepted", config.BackendBadger)
				}
				kv, err := a.openKV()
				if err != nil {
					return err
				}
				if _, err := repo.Init(kv, a.cfg.Repository.Dir, opts...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty repository in %s\n", a.path(a.cfg.Storage.Path))
				return nil
			}

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			r, err := repo.InitDir(a.path(path), a.cfg.Repository.Dir, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty repository in %s\n", filepath.Join(r.Worktree, r.Root)+string(filepath.Separator))
			return nil
		},
	}
}
