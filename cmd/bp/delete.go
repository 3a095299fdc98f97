package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reading by id",
		Args:  exactArgs("id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIntArg("id", args[0])
			if err != nil {
				return err
			}

			svc, err := a.open()
			if err != nil {
				return err
			}

			ok, err := svc.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return &notFoundError{id: id}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted reading with ID %d\n", id)
			return nil
		},
	}
}
