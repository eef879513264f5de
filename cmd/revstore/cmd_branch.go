package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/revision"
)

func newBranchCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "branch [<name> [<revision>]]",
		Short: "Show the current branch or create a branch",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				current, err := r.CurrentBranch()
				if err != nil {
					return err
				}
				if current == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "* (HEAD detached)")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "* %s\n", current)
				}
				return nil
			}

			rev := revision.Head
			if len(args) == 2 {
				rev = args[1]
			}
			target, err := a.resolve(r, rev, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("cannot resolve %s: %w", rev, err)
			}
			return r.CreateBranch(args[0], target, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "move the branch if it already exists")

	return cmd
}
