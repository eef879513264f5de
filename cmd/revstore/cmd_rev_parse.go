package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/revision"
)

func newRevParseCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "rev-parse [--raw] <revision>...",
		Short: "Resolve revisions to object hashes",
		Long: "Resolve revisions to object hashes, following symbolic refs.\n\n" +
			"With --raw, print the lookup result for each revision's base name\n" +
			"without following symbolic refs: status, namespace and stored value.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			for _, rev := range args {
				if raw {
					spec, res, err := r.Revisions.Resolve(rev)
					if err != nil {
						return err
					}
					from := "-"
					if res.Status != revision.NotFound {
						from = res.From.String()
					}
					fmt.Fprintf(out, "%s\t%s\t%s\t%q\t%q\n", spec.Base, res.Status, from, res.Value, spec.Modifier)
					continue
				}

				h, err := a.resolve(r, rev, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, h)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the unfollowed lookup result")

	return cmd
}
