package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of bp",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bp version %s\n", bptrack.Version)
		},
	}
}
