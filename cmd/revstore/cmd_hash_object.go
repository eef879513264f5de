package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/object"
)

func newHashObjectCmd(a *app) *cobra.Command {
	var write, stdin bool
	var kindName string

	cmd := &cobra.Command{
		Use:   "hash-object [-w] [-t <kind>] (--stdin | <file>)",
		Short: "Compute an object id and optionally store the object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := object.ParseKind(kindName)
			if err != nil {
				return fmt.Errorf("hash-object: -t: %w", err)
			}

			var payload []byte
			switch {
			case stdin && len(args) == 0:
				payload, err = io.ReadAll(cmd.InOrStdin())
			case !stdin && len(args) == 1:
				payload, err = os.ReadFile(a.path(args[0]))
			default:
				return fmt.Errorf("hash-object: give exactly one of --stdin or a file")
			}
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}

			h := object.HashObject(kind, payload)
			if write {
				r, err := a.openRepo()
				if err != nil {
					return err
				}
				if h, err = r.Objects.Write(kind, payload); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the object in the repository")
	cmd.Flags().BoolVar(&stdin, "stdin", false, "read the object from standard input")
	cmd.Flags().StringVarP(&kindName, "type", "t", "blob", "object kind: blob, tree or commit")

	return cmd
}
