package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/validation"
)

func newSelfTestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the email pattern against its reference samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := validation.EmailSelfTest()

			failed := 0
			for _, result := range results {
				a.logger.Info("email pattern",
					zap.String("input", result.Input),
					zap.Bool("match", result.Got),
				)
				if !result.Passed() {
					failed++
				}
			}

			if err := writeOutput(cmd.OutOrStdout(), a.cfg.Output, results, func(w io.Writer) error {
				for _, result := range results {
					if _, err := fmt.Fprintf(w, "%s: %t\n", result.Input, result.Got); err != nil {
						return err
					}
				}
				return nil
			}); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d email samples disagree with the pattern", failed, len(results))
			}
			return nil
		},
	}
}
