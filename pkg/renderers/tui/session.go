package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
)

// Session walks a user through the form in a terminal. Each answer is fed to
// the form as input followed by blur, so a field is re-prompted with its
// reason until it validates. The form is then submitted.
type Session struct {
	form       *orchestrator.Orchestrator
	driver     PromptDriver
	theme      Theme
	bannerText string
	repeat     bool
}

// NewSession binds a session to form. Without WithPromptDriver it prompts
// through survey on the process terminal.
func NewSession(form *orchestrator.Orchestrator, options ...Option) (*Session, error) {
	if form == nil {
		return nil, ErrNoForm
	}
	s := &Session{
		form:       form,
		theme:      DefaultTheme(),
		bannerText: DefaultBannerText,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s, nil
}

// Run prompts until a submission is accepted, and keeps going while repeat is
// enabled and the user confirms. It returns every accepted payload.
func (s *Session) Run(ctx context.Context) ([]model.Payload, error) {
	var sent []model.Payload
	for {
		payload, err := s.collectAndSubmit(ctx)
		if err != nil {
			return sent, err
		}
		sent = append(sent, payload)

		if !s.repeat {
			return sent, nil
		}
		again, err := s.driver.Confirm(ctx, ConfirmConfig{
			Message: "Send another message?",
		})
		if err != nil {
			return sent, err
		}
		if !again {
			return sent, nil
		}
	}
}

func (s *Session) collectAndSubmit(ctx context.Context) (model.Payload, error) {
	pending := model.FieldKinds()
	for {
		for _, kind := range pending {
			if err := s.promptField(ctx, kind); err != nil {
				return model.Payload{}, err
			}
		}

		outcome, err := s.form.Submit(ctx)
		if err != nil {
			return model.Payload{}, err
		}
		if outcome.Accepted {
			if err := s.driver.Info(ctx, s.theme.InfoPrefix+s.bannerText); err != nil {
				return model.Payload{}, err
			}
			return *outcome.Payload, nil
		}

		// A field changed between blur and submit; ask again for the ones
		// that no longer pass.
		pending = pending[:0]
		for _, issue := range outcome.Issues() {
			pending = append(pending, issue.Field)
		}
	}
}

func (s *Session) promptField(ctx context.Context, kind model.FieldKind) error {
	current := ""
	for {
		value, err := s.ask(ctx, kind, current)
		if err != nil {
			return err
		}
		if _, err := s.form.Input(kind, value); err != nil {
			return err
		}
		verdict, err := s.form.Blur(kind)
		if err != nil {
			return err
		}
		if verdict.Valid {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s%s", s.theme.ErrorPrefix, verdict.Reason)); err != nil {
			return err
		}
		current = value
	}
}

func (s *Session) ask(ctx context.Context, kind model.FieldKind, current string) (string, error) {
	if kind.InputType() == "textarea" {
		return s.driver.TextArea(ctx, TextAreaConfig{
			Message: kind.Label() + ":",
			Default: current,
			Help:    "10 to 500 characters",
		})
	}
	return s.driver.Input(ctx, InputConfig{
		Message: kind.Label() + ":",
		Default: current,
	})
}
