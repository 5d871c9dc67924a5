package render

import (
	"context"

	"github.com/goliatone/go-contactform/pkg/model"
)

// Renderer turns a form snapshot into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot model.Snapshot, options RenderOptions) ([]byte, error)
}
