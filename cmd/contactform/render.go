package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var (
		values       model.Values
		blur         []string
		submit       bool
		outputFile   string
		rendererName string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Apply form events and write the resulting snapshot",
		Long: `render types the given values into a fresh form, fires blur on the listed
fields, optionally submits, and writes the snapshot. The reset delay never
elapses, so a successful submission renders with the banner shown.`,
		Example: `  contactform render --name A --blur name
  contactform render --name Anna --email anna@example.com --message "Hello there, friend" --submit -o form.html
  contactform render --renderer tui --email test@ --blur email`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			form, err := a.newForm(ctx, frozenClock())
			if err != nil {
				return err
			}

			for _, kind := range model.FieldKinds() {
				if !cmd.Flags().Changed(string(kind)) {
					continue
				}
				if _, err := form.Input(kind, values.Get(kind)); err != nil {
					return err
				}
			}
			for _, raw := range blur {
				kind, err := model.ParseFieldKind(raw)
				if err != nil {
					return err
				}
				if _, err := form.Blur(kind); err != nil {
					return err
				}
			}
			if submit {
				if _, err := form.Submit(ctx); err != nil {
					return err
				}
			}

			output, err := form.Render(ctx, rendererName, render.RenderOptions{
				Title:      a.cfg.Title,
				BannerText: a.cfg.BannerText,
			})
			if err != nil {
				return err
			}

			if outputFile == "" {
				_, err = cmd.OutOrStdout().Write(output)
				return err
			}
			if err := os.WriteFile(outputFile, output, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Form written to %s\n", outputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "type a value into the name field")
	cmd.Flags().StringVar(&values.Email, "email", "", "type a value into the email field")
	cmd.Flags().StringVar(&values.Message, "message", "", "type a value into the message field")
	cmd.Flags().StringSliceVar(&blur, "blur", nil, "fields to blur after typing (name, email, message)")
	cmd.Flags().BoolVar(&submit, "submit", false, "submit the form after the other events")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&rendererName, "renderer", "vanilla", "renderer to use (vanilla, tui)")
	return cmd
}
