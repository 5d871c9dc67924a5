package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/internal/config"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "contactform",
		Short: "Validate and submit a name/email/message contact form",
		Long: `contactform validates a three-field contact form (name, email, message).

Valid submissions are logged as a structured "form data" line and the form is
cleared after the reset delay. The same rules run in an interactive terminal
session, in one-shot checks, and in HTML snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newPromptCommand(a),
		newCheckCommand(a),
		newRenderCommand(a),
		newSchemaCommand(a),
		newSelfTestCommand(a),
	)
	return root
}
