package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack"
	"github.com/aretw0/bptrack/pkg/core"
)

// newInitCmd creates an empty store file, running git init first when
// versioning is on. An existing file is left untouched.
func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty data file",
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.DataFile
			out := cmd.OutOrStdout()

			repo, err := bptrack.Init(path,
				bptrack.WithLogger(a.logger),
				bptrack.WithVersioning(a.cfg.Versioning),
			)
			if err != nil {
				return err
			}

			_, err = os.Stat(path)
			switch {
			case err == nil:
				fmt.Fprintf(out, "Data file already exists: %s\n", path)
				return nil
			case !os.IsNotExist(err):
				return err
			}

			ctx := context.WithValue(cmd.Context(), core.ChangeReasonKey, "initialize readings")
			if err := repo.Save(ctx, nil); err != nil {
				return err
			}

			fmt.Fprintf(out, "✓ Initialized empty data file: %s\n", path)
			return nil
		},
	}
}
