package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack/pkg/core"
)

// listedReading is a reading as printed by `list --json`.
type listedReading struct {
	core.Reading
	Category core.Category `json:"category"`
}

func newListCmd(a *app) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List readings, newest first",
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return &core.ValidationError{
					Field:   "limit",
					Message: fmt.Sprintf("Limit must be zero or positive, got %d", limit),
				}
			}

			svc, err := a.open()
			if err != nil {
				return err
			}

			readings := svc.List(cmd.Context(), limit)
			out := cmd.OutOrStdout()

			if asJSON {
				listed := make([]listedReading, len(readings))
				for i, r := range readings {
					listed[i] = listedReading{Reading: r, Category: r.Category()}
				}
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(listed)
			}

			if len(readings) == 0 {
				fmt.Fprintln(out, noReadingsMessage(cmd))
				return nil
			}

			fmt.Fprintf(out, "\nBlood Pressure Readings (%d total):\n", len(readings))
			fmt.Fprintln(out, strings.Repeat("-", 80))
			for _, r := range readings {
				fmt.Fprintln(out, core.FormatReading(r))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Show at most N readings (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
