package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/openapi"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI contract for submitted payloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			contract, err := openapi.Load(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if a.cfg.Output == config.OutputJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(contract.Document())
			}
			_, err = w.Write(openapi.Raw())
			return err
		},
	}
}
