package vanilla_test

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()

	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func renderString(t *testing.T, renderer *vanilla.Renderer, snapshot model.Snapshot, options render.RenderOptions) string {
	t.Helper()

	out, err := renderer.Render(context.Background(), snapshot, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, html)
		}
	}
}

func TestRenderer_EmptyForm(t *testing.T) {
	renderer := newRenderer(t)
	html := renderString(t, renderer, model.EmptySnapshot(), render.RenderOptions{})

	assertContains(t, html,
		`<form id="contactForm" class="contact-form" novalidate data-phase="idle">`,
		`<h2 class="contact-form-header">Contact Us</h2>`,
		`<input type="text" id="name" name="name" value="" aria-invalid="false" aria-describedby="nameError">`,
		`<input type="email" id="email" name="email" value="" aria-invalid="false" aria-describedby="emailError">`,
		`<textarea id="message" name="message" aria-invalid="false" aria-describedby="messageError"></textarea>`,
		`<span id="messageError" class="error-message"></span>`,
		`<div id="successMessage" class="success-message" role="status">`+vanilla.DefaultBannerText+`</div>`,
	)
	assertNotContains(t, html, `class="error"`, `class="success"`, "success-message show", "<style>")

	if got := renderer.ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", got)
	}
}

func TestRenderer_MarksFieldsWithExactlyOneState(t *testing.T) {
	snapshot := model.Snapshot{
		Fields: []model.Field{
			{Kind: model.FieldName, Value: "A", Validity: model.ValidityInvalid, Reason: "Name must be at least 2 characters"},
			{Kind: model.FieldEmail, Value: "a@b.co", Validity: model.ValidityValid},
			{Kind: model.FieldMessage, Value: "<script>x</script>", Validity: model.ValidityUnknown},
		},
		Phase: model.PhaseIdle,
	}

	html := renderString(t, newRenderer(t), snapshot, render.RenderOptions{})

	assertContains(t, html,
		`<input type="text" id="name" name="name" value="A" class="error" aria-invalid="true" aria-describedby="nameError">`,
		`<span id="nameError" class="error-message">Name must be at least 2 characters</span>`,
		`<input type="email" id="email" name="email" value="a@b.co" class="success" aria-invalid="false" aria-describedby="emailError">`,
		`<span id="emailError" class="error-message"></span>`,
		`&lt;script&gt;x&lt;/script&gt;`,
	)
	assertNotContains(t, html, `<script>`)
	if got := strings.Count(html, `class="error"`); got != 1 {
		t.Fatalf("expected one error marker, got %d", got)
	}
	if got := strings.Count(html, `class="success"`); got != 1 {
		t.Fatalf("expected one success marker, got %d", got)
	}
}

func TestRenderer_BannerShownAndSanitised(t *testing.T) {
	snapshot := model.EmptySnapshot()
	snapshot.BannerShown = true
	snapshot.Phase = model.PhaseAccepted

	html := renderString(t, newRenderer(t), snapshot, render.RenderOptions{
		BannerText: `Thanks <strong>friend</strong><script>alert(1)</script><img src=x onerror=alert(1)>`,
	})

	assertContains(t, html,
		`<div id="successMessage" class="success-message show" role="status">Thanks <strong>friend</strong></div>`,
		`data-phase="accepted"`,
	)
	assertNotContains(t, html, "alert(1)", "<img")
}

func TestRenderer_OptionsAndExternalErrors(t *testing.T) {
	snapshot := model.EmptySnapshot()
	snapshot.Fields[1] = model.Field{Kind: model.FieldEmail, Value: "a@b.co", Validity: model.ValidityValid}

	html := renderString(t, newRenderer(t), snapshot, render.RenderOptions{
		Title:       "Write to us",
		SubmitLabel: "Send",
		Action:      "/contact",
		Method:      "POST",
		Hidden:      render.CSRFToken("_csrf", "tok"),
		Errors: map[string][]string{
			"/body/email": {"Domain is not accepted"},
			"form":        {"Try again later"},
		},
	})

	assertContains(t, html,
		` action="/contact" method="post"`,
		`<h2 class="contact-form-header">Write to us</h2>`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<li>Try again later</li>`,
		`value="a@b.co" class="error" aria-invalid="true"`,
		`<span id="emailError" class="error-message">Domain is not accepted</span>`,
		`<button type="submit" class="submit-btn">Send</button>`,
	)
}

func TestRenderer_Theme(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithTheme(&theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		CSSVars: map[string]string{
			"--brand": "#123456",
			"danger":  "#aa0000",
			"--bad":   "red; background: url(x)",
		},
		AssetURL: func(key string) string {
			if key == "" {
				return ""
			}
			return "/themes/acme/" + key
		},
	}))

	html := renderString(t, renderer, model.EmptySnapshot(), render.RenderOptions{})
	assertContains(t, html,
		`<link rel="stylesheet" href="/themes/acme/`+vanilla.StylesheetAssetKey+`">`,
		`style="--brand: #123456; --danger: #aa0000"`,
		`data-theme="acme" data-theme-variant="dark"`,
	)
	assertNotContains(t, html, "url(x)")
}

func TestRenderer_InlineStyles(t *testing.T) {
	html := renderString(t, newRenderer(t, vanilla.WithInlineStyles(true)), model.EmptySnapshot(), render.RenderOptions{})
	assertContains(t, html, "<style>", ".success-message.show")
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(vanilla.AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("read stylesheet: %v", err)
	}
	for _, selector := range []string{"input.error", "input.success", ".success-message.show"} {
		if !strings.Contains(string(data), selector) {
			t.Fatalf("stylesheet missing %q", selector)
		}
	}
}

func TestRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, model.EmptySnapshot(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	custom := `<p>{{ form.title }}{% for field in form.fields %}|{{ field.id }}:{{ field.class }}{% endfor %}</p>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "form.tmpl"), []byte(custom), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	snapshot := model.EmptySnapshot()
	snapshot.Fields[0] = model.Field{Kind: model.FieldName, Value: "Anna", Validity: model.ValidityValid}

	html := renderString(t, newRenderer(t, vanilla.WithTemplatesDir(dir)), snapshot, render.RenderOptions{Title: "Hi"})
	if want := "<p>Hi|name:success|email:|message:</p>"; html != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, html)
	}
}

type stubTemplates struct {
	name string
	data any
}

func (s *stubTemplates) Render(name string, data any, out ...io.Writer) (string, error) {
	return s.RenderTemplate(name, data, out...)
}

func (s *stubTemplates) RenderTemplate(name string, data any, _ ...io.Writer) (string, error) {
	s.name = name
	s.data = data
	return "stub", nil
}

func (s *stubTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", nil
}

func (s *stubTemplates) RegisterFilter(string, func(any, any) (any, error)) error {
	return nil
}

func (s *stubTemplates) GlobalContext(any) error {
	return nil
}

func TestRenderer_CustomTemplateRenderer(t *testing.T) {
	stub := &stubTemplates{}
	html := renderString(t, newRenderer(t, vanilla.WithTemplateRenderer(stub)), model.EmptySnapshot(), render.RenderOptions{})

	if html != "stub" {
		t.Fatalf("expected stub output, got %q", html)
	}
	if stub.name != "templates/form.tmpl" {
		t.Fatalf("template name = %q", stub.name)
	}
	data, ok := stub.data.(map[string]any)
	if !ok || data["form"] == nil {
		t.Fatalf("expected form view in template data, got %#v", stub.data)
	}
}

func TestRenderer_TemplatesFS(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": {Data: []byte(`{{ form.banner.class }}`)},
	}
	snapshot := model.EmptySnapshot()
	snapshot.BannerShown = true

	html := renderString(t, newRenderer(t, vanilla.WithTemplatesFS(files)), snapshot, render.RenderOptions{})
	if want := "success-message show"; html != want {
		t.Fatalf("render mismatch\nwant: %q\n got: %q", want, html)
	}
}
