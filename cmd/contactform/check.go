package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/validation"
)

func newCheckCommand(a *app) *cobra.Command {
	var values model.Values

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Submit the form once and report each field's verdict",
		Example: `  contactform check --name "Anna Lee" --email anna@example.com --message "Hello there, friend"
  contactform check --name A --email test@ --message short -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			form, err := a.newForm(ctx, frozenClock())
			if err != nil {
				return err
			}
			if err := form.SetValues(values); err != nil {
				return err
			}
			outcome, err := form.Submit(ctx)
			if err != nil {
				return err
			}

			if err := writeOutput(cmd.OutOrStdout(), a.cfg.Output, outcome, func(w io.Writer) error {
				return writeOutcomeText(w, outcome)
			}); err != nil {
				return err
			}
			if !outcome.Accepted {
				a.logger.Debug("check rejected", zap.Int("issues", len(outcome.Issues())))
				return errRejected
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "name field value")
	cmd.Flags().StringVar(&values.Email, "email", "", "email field value")
	cmd.Flags().StringVar(&values.Message, "message", "", "message field value")
	return cmd
}

func writeOutcomeText(w io.Writer, outcome validation.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, result := range outcome.Results {
		status := "ok"
		if !result.Verdict.Valid {
			status = "invalid: " + result.Verdict.Reason
		}
		fmt.Fprintf(tw, "%s\t%s\n", result.Field.Label(), status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if outcome.Accepted {
		_, err := fmt.Fprintln(w, "accepted")
		return err
	}
	_, err := fmt.Fprintln(w, "rejected")
	return err
}
