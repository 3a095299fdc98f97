package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every reading",
		Long:  `Clear removes all readings from the data file. It asks for confirmation unless --yes is given.`,
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if svc.Len() == 0 {
				fmt.Fprintln(out, "No readings to delete.")
				return nil
			}

			if !yes {
				fmt.Fprintf(out, "Delete all %d readings? This cannot be undone. [y/N]: ", svc.Len())
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			n, err := svc.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Deleted all %d readings\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
