package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack/pkg/core"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		pulse int
		notes string
		at    string
	)

	cmd := &cobra.Command{
		Use:   "add <systolic> <diastolic>",
		Short: "Add a new reading",
		Long: `Add validates and stores a reading. Pressures are in mmHg.
Without --at the reading is stamped with the current local time.`,
		Example: `  bp add 120 80
  bp add 135 88 --pulse 72 --notes "after coffee"
  bp add 118 76 --at 2024-01-15T08:30:00`,
		Args: exactArgs("systolic", "diastolic"),
		RunE: func(cmd *cobra.Command, args []string) error {
			sys, err := parseIntArg("systolic", args[0])
			if err != nil {
				return err
			}
			dia, err := parseIntArg("diastolic", args[1])
			if err != nil {
				return err
			}

			in := core.NewReading{Systolic: sys, Diastolic: dia, Notes: notes, Timestamp: at}
			if cmd.Flags().Changed("pulse") {
				in.Pulse = core.IntPtr(pulse)
			}

			svc, err := a.open()
			if err != nil {
				return err
			}

			r, err := svc.Add(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added reading: %s\n", core.FormatReading(r))
			return nil
		},
	}

	cmd.Flags().IntVarP(&pulse, "pulse", "p", 0, "Heart rate in bpm")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-text notes")
	cmd.Flags().StringVar(&at, "at", "", "ISO-8601 timestamp of the reading (default: now)")
	return cmd
}
