package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/revision"
)

func newSymbolicRefCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "symbolic-ref HEAD [refs/heads/<branch>]",
		Short: "Read or set the branch HEAD points at",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] != revision.Head {
				return fmt.Errorf("symbolic-ref: only %s is supported, got %q", revision.Head, args[0])
			}
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				head, err := r.Head()
				if err != nil {
					return err
				}
				if !strings.HasPrefix(head, "refs/") {
					return fmt.Errorf("symbolic-ref: HEAD is detached at %s", head)
				}
				fmt.Fprintln(cmd.OutOrStdout(), head)
				return nil
			}

			branch, ok := strings.CutPrefix(args[1], "refs/heads/")
			if !ok {
				return fmt.Errorf("symbolic-ref: HEAD must point under refs/heads/, got %q", args[1])
			}
			return r.SetHead(branch)
		},
	}
}
