package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	rendertemplate "github.com/goliatone/go-contactform/pkg/render/template"
	"github.com/goliatone/go-contactform/pkg/render/template/gotemplate"
)

const (
	DefaultTitle       = "Contact Us"
	DefaultSubmitLabel = "Send Message"
	DefaultBannerText  = "Thank you! Your message has been sent successfully."
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme applies theme tokens as CSS custom properties and resolves the
// stylesheet through the theme's asset URLs.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithInlineStyles embeds the default stylesheet in a style element.
func WithInlineStyles(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineStyles = enabled
	}
}

// Renderer produces an HTML snapshot of the contact form using the element
// IDs and state classes the browser binding toggles.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	theme        themeView
	inlineStyles bool
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		theme:        buildThemeView(cfg.theme),
		inlineStyles: cfg.inlineStyles,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form markup for snapshot.
func (r *Renderer) Render(ctx context.Context, snapshot model.Snapshot, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form": r.buildView(snapshot, options),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type formView struct {
	Title       string               `json:"title"`
	SubmitLabel string               `json:"submit_label"`
	Action      string               `json:"action"`
	Method      string               `json:"method"`
	Phase       string               `json:"phase"`
	Classes     chromeClasses        `json:"classes"`
	Hidden      []render.HiddenField `json:"hidden"`
	FormErrors  []string             `json:"form_errors"`
	Fields      []fieldView          `json:"fields"`
	Banner      bannerView           `json:"banner"`
	Theme       themeView            `json:"theme"`
	InlineCSS   string               `json:"inline_css"`
}

type fieldView struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Multiline   bool   `json:"multiline"`
	Value       string `json:"value"`
	Validity    string `json:"validity"`
	Class       string `json:"class"`
	AriaInvalid string `json:"aria_invalid"`
	ErrorID     string `json:"error_id"`
	Error       string `json:"error"`
}

type bannerView struct {
	Class string `json:"class"`
	HTML  string `json:"html"`
}

func (r *Renderer) buildView(snapshot model.Snapshot, options render.RenderOptions) formView {
	errs := render.SnapshotErrors(snapshot, options)

	view := formView{
		Title:       firstNonEmpty(options.Title, DefaultTitle),
		SubmitLabel: firstNonEmpty(options.SubmitLabel, DefaultSubmitLabel),
		Action:      strings.TrimSpace(options.Action),
		Method:      strings.ToLower(strings.TrimSpace(options.Method)),
		Phase:       string(snapshot.Phase),
		Classes:     defaultChromeClasses(),
		Hidden:      render.SortedHiddenFields(options.Hidden),
		FormErrors:  errs.Form,
		Theme:       r.theme,
		Banner:      buildBanner(snapshot.BannerShown, options.BannerText),
	}
	if r.inlineStyles {
		view.InlineCSS = defaultStylesheet()
	}

	for _, kind := range model.FieldKinds() {
		field, ok := snapshot.Field(kind)
		if !ok {
			field = model.Field{Kind: kind, Validity: model.ValidityUnknown}
		}
		view.Fields = append(view.Fields, buildField(field, errs.For(kind)))
	}
	return view
}

func buildField(field model.Field, messages []string) fieldView {
	kind := field.Kind
	view := fieldView{
		Kind:        string(kind),
		ID:          string(kind),
		Label:       kind.Label(),
		Type:        kind.InputType(),
		Multiline:   kind.InputType() == "textarea",
		Value:       field.Value,
		Validity:    string(field.Validity),
		AriaInvalid: "false",
		ErrorID:     string(kind) + "Error",
	}

	switch {
	case len(messages) > 0:
		view.Class = string(ClassError)
		view.Validity = string(model.ValidityInvalid)
		view.AriaInvalid = "true"
		view.Error = strings.Join(messages, " ")
	case field.HasSuccess():
		view.Class = string(ClassSuccess)
	}
	return view
}

func buildBanner(shown bool, text string) bannerView {
	banner := bannerView{
		Class: string(ClassBanner),
		HTML:  sanitizeBannerMarkup(text),
	}
	if banner.HTML == "" {
		banner.HTML = DefaultBannerText
	}
	if shown {
		banner.Class += " " + string(ClassShow)
	}
	return banner
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
