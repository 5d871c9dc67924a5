package tui

// Theme captures optional message prefixes the session applies when printing.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme prefixes confirmations with a check mark and errors with a cross.
func DefaultTheme() Theme {
	return Theme{InfoPrefix: "✔ ", ErrorPrefix: "✘ "}
}

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithBannerText overrides the message printed on an accepted submission.
func WithBannerText(text string) Option {
	return func(s *Session) {
		if text != "" {
			s.bannerText = text
		}
	}
}

// WithRepeat asks to send another message after each accepted submission.
func WithRepeat(enabled bool) Option {
	return func(s *Session) {
		s.repeat = enabled
	}
}
