package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/renderers/tui"
)

func newPromptCommand(a *app) *cobra.Command {
	var repeat bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the contact form interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			form, err := a.newForm(ctx, nil)
			if err != nil {
				return err
			}

			options := []tui.Option{
				tui.WithRepeat(repeat),
				tui.WithBannerText(a.cfg.BannerText),
			}
			if driver := a.promptDriver(); driver != nil {
				options = append(options, tui.WithPromptDriver(driver))
			}
			session, err := tui.NewSession(form, options...)
			if err != nil {
				return err
			}

			if _, err := session.Run(ctx); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
					return nil
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repeat, "repeat", false, "offer to send another message after each submission")
	return cmd
}
