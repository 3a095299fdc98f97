package main

import (
	"encoding/json"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack"
)

// status is the JSON document printed by `bp status`.
type status struct {
	Version    string `json:"version"`
	ConfigFile string `json:"config_file,omitempty"`
	Service    any    `json:"service"`
	Repository any    `json:"repository,omitempty"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print service and storage state as JSON",
		Args:  exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.open(bptrack.WithReadOnly(true))
			if err != nil {
				return err
			}

			st := status{
				Version:    bptrack.Version,
				ConfigFile: a.cfg.Source,
				Service:    svc.State(),
			}
			if repo, ok := svc.Repository().(introspection.Introspectable); ok {
				st.Repository = repo.State()
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(st)
		},
	}
}
