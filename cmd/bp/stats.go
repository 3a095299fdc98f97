package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack/pkg/core"
)

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show averages and ranges over all readings",
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open()
			if err != nil {
				return err
			}

			st := svc.Statistics(cmd.Context())
			out := cmd.OutOrStdout()

			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(st)
			}

			if st.Count == 0 {
				fmt.Fprintln(out, noReadingsMessage(cmd))
				return nil
			}
			printStats(out, st)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}

func printStats(w io.Writer, st core.Statistics) {
	fmt.Fprintln(w, "\nBlood Pressure Statistics:")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Total readings: %d\n", st.Count)
	fmt.Fprintln(w, "\nSystolic (top number):")
	fmt.Fprintf(w, "  Average: %.1f mmHg\n", st.AvgSystolic)
	fmt.Fprintf(w, "  Range: %d - %d mmHg\n", st.MinSystolic, st.MaxSystolic)
	fmt.Fprintln(w, "\nDiastolic (bottom number):")
	fmt.Fprintf(w, "  Average: %.1f mmHg\n", st.AvgDiastolic)
	fmt.Fprintf(w, "  Range: %d - %d mmHg\n", st.MinDiastolic, st.MaxDiastolic)
}
