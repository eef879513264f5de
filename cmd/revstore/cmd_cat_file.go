package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/odvcencio/revstore/pkg/object"
)

func newCatFileCmd(a *app) *cobra.Command {
	var pretty, showKind, showSize, exists bool

	cmd := &cobra.Command{
		Use:   "cat-file (-p | -t | -s | -e) <revision>",
		Short: "Print an object's content, kind or size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.openRepo()
			if err != nil {
				return err
			}
			h, err := a.resolve(r, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			if exists {
				if !r.Objects.Has(h) {
					return fmt.Errorf("cat-file: object %s does not exist", h)
				}
				return nil
			}

			obj, err := r.Objects.Read(h)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch {
			case showKind:
				fmt.Fprintln(out, obj.Kind)
			case showSize:
				fmt.Fprintln(out, obj.Size)
			case pretty:
				return printObject(out, obj)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the object's content")
	cmd.Flags().BoolVarP(&showKind, "type", "t", false, "show the object's kind")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "show the object's declared size")
	cmd.Flags().BoolVarP(&exists, "exists", "e", false, "exit with an error unless the object exists")
	cmd.MarkFlagsMutuallyExclusive("pretty", "type", "size", "exists")
	cmd.MarkFlagsOneRequired("pretty", "type", "size", "exists")

	return cmd
}

// printObject writes commits and blobs verbatim and lists tree entries one
// per line.
func printObject(w io.Writer, obj *object.Object) error {
	if obj.Kind != object.KindTree {
		_, err := w.Write(obj.Payload)
		return err
	}
	entries, err := object.DecodeTree(obj.Payload)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%06o %s %s\t%s\n", uint32(e.Mode), e.Kind(), e.Hash, e.Name); err != nil {
			return err
		}
	}
	return nil
}
