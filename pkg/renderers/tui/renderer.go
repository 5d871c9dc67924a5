package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/render"
)

// DefaultBannerText is printed when a submission is accepted.
const DefaultBannerText = "Thank you! Your message has been sent successfully."

// Renderer prints a plain text summary of a snapshot, one line per field.
type Renderer struct {
	theme Theme
}

// NewRenderer constructs the text renderer.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the output media type.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes the summary for snapshot.
func (r *Renderer) Render(ctx context.Context, snapshot model.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	errs := render.SnapshotErrors(snapshot, opts)

	var b strings.Builder
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Contact Us"
	}
	b.WriteString(title)
	b.WriteByte('\n')

	for _, message := range errs.Form {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, message)
	}
	for _, kind := range model.FieldKinds() {
		field, _ := snapshot.Field(kind)
		fmt.Fprintf(&b, "  %-8s %q", kind.Label()+":", field.Value)

		messages := errs.For(kind)
		switch {
		case len(messages) > 0:
			fmt.Fprintf(&b, " %s%s", r.theme.ErrorPrefix, strings.Join(messages, " "))
		case field.HasSuccess():
			fmt.Fprintf(&b, " %sok", r.theme.InfoPrefix)
		}
		b.WriteByte('\n')
	}
	if snapshot.BannerShown {
		fmt.Fprintf(&b, "%s%s\n", r.theme.InfoPrefix, bannerOrDefault(opts.BannerText))
	}
	return []byte(b.String()), nil
}

func bannerOrDefault(text string) string {
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		return trimmed
	}
	return DefaultBannerText
}
