package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/revision"
)

func newTagCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "tag <name> [<revision>]",
		Short: "Create a lightweight tag",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}

			rev := revision.Head
			if len(args) == 2 {
				rev = args[1]
			}
			target, err := a.resolve(r, rev, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("cannot resolve %s: %w", rev, err)
			}
			return r.CreateTag(args[0], target, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing tag")

	return cmd
}
