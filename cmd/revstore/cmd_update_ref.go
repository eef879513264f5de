package main

import (
	"github.com/spf13/cobra"
)

func newUpdateRefCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update-ref <ref> <revision>",
		Short: "Point a full ref name such as refs/heads/master at a revision",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			h, err := a.resolve(r, args[1], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return r.UpdateRef(args[0], h)
		},
	}
}
